package section

import (
	"encoding/binary"
	"fmt"

	"github.com/forgekit/forge/errs"
	"github.com/forgekit/forge/format"
)

// Header is the fixed-size envelope at the start of every archive: the magic
// and version bytes, followed by the compressed and uncompressed lengths of
// the manifest block that immediately follows the header on disk.
type Header struct {
	Version                 uint16
	ManifestCompressedLen   uint32
	ManifestUncompressedLen uint32
}

// NewHeader creates a Header for the current format version. The manifest
// length fields are filled in by the writer once the manifest is serialized.
func NewHeader() Header {
	return Header{Version: format.Version}
}

// Bytes serializes the header into format.HeaderSize bytes.
func (h Header) Bytes() []byte {
	b := make([]byte, format.HeaderSize)
	copy(b[0:4], format.Magic)
	binary.LittleEndian.PutUint16(b[4:6], h.Version)
	binary.LittleEndian.PutUint32(b[6:10], h.ManifestCompressedLen)
	binary.LittleEndian.PutUint32(b[10:14], h.ManifestUncompressedLen)

	return b
}

// ParseHeader parses a Header from the first format.HeaderSize bytes of data.
// It returns errs.ErrCorrupt if data is too short, and errs.ErrVersionMismatch
// if the magic bytes don't match or the version is newer than this reader
// supports.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < format.HeaderSize {
		return Header{}, fmt.Errorf("%w: header needs %d bytes, got %d", errs.ErrCorrupt, format.HeaderSize, len(data))
	}

	if string(data[0:4]) != format.Magic {
		return Header{}, fmt.Errorf("%w: bad magic %q", errs.ErrVersionMismatch, data[0:4])
	}

	h := Header{}
	h.Version = binary.LittleEndian.Uint16(data[4:6])
	if h.Version != format.Version {
		return Header{}, fmt.Errorf("%w: archive version %d, reader supports %d", errs.ErrVersionMismatch, h.Version, format.Version)
	}

	h.ManifestCompressedLen = binary.LittleEndian.Uint32(data[6:10])
	h.ManifestUncompressedLen = binary.LittleEndian.Uint32(data[10:14])

	return h, nil
}
