package codec

import (
	"fmt"

	"github.com/golang/snappy"

	"github.com/forgekit/forge/errs"
)

// SnapCodec backs format.CompressionSnap. Snappy favors decompression speed
// over ratio, making it pak.Writer's default blob codec and the fixed codec
// of every archive's manifest block.
type SnapCodec struct{}

var _ Codec = SnapCodec{}

// NewSnapCodec creates a Snappy codec.
func NewSnapCodec() SnapCodec {
	return SnapCodec{}
}

// Compress compresses data using Snappy block compression.
func (c SnapCodec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return data[:0:0], nil
	}

	return snappy.Encode(nil, data), nil
}

// Decompress decompresses Snappy-compressed data.
func (c SnapCodec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return data[:0:0], nil
	}

	out, err := snappy.Decode(nil, data)
	if err != nil {
		return nil, fmt.Errorf("%w: snap: decompress: %v", errs.ErrCodec, err)
	}

	return out, nil
}
