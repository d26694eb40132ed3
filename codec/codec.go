package codec

import (
	"fmt"

	"github.com/forgekit/forge/format"
)

// Compressor compresses a blob's serialized bytes before they are written into
// the archive's payload region.
type Compressor interface {
	// Compress compresses the input data and returns the compressed result.
	//
	// Memory management:
	//   - Returned slice is newly allocated and owned by the caller
	//   - Input slice is not modified
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses a Compressor, restoring a payload blob to its
// original serialized bytes.
type Decompressor interface {
	// Decompress decompresses the input data and returns the original result.
	//
	// Decompress returns a wrapped ErrCodec if data is corrupted or was not
	// produced by the matching Compressor.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression for one CompressionKind.
type Codec interface {
	Compressor
	Decompressor
}

// CreateCodec is a factory function that creates a Codec for the given
// CompressionKind. target is used only to build a descriptive error message.
func CreateCodec(kind format.CompressionKind, target string) (Codec, error) {
	switch kind {
	case format.CompressionNone:
		return NewNoOpCodec(), nil
	case format.CompressionSnap:
		return NewSnapCodec(), nil
	case format.CompressionBrotli:
		return NewBrotliCodec(), nil
	default:
		return nil, fmt.Errorf("invalid %s compression kind: %s", target, kind)
	}
}

var builtinCodecs = map[format.CompressionKind]Codec{
	format.CompressionNone:   NewNoOpCodec(),
	format.CompressionSnap:   NewSnapCodec(),
	format.CompressionBrotli: NewBrotliCodec(),
}

// GetCodec retrieves the shared Codec instance for a CompressionKind. The
// returned Codec is safe for concurrent use.
func GetCodec(kind format.CompressionKind) (Codec, error) {
	if c, ok := builtinCodecs[kind]; ok {
		return c, nil
	}

	return nil, fmt.Errorf("unsupported compression kind: %s", kind)
}
