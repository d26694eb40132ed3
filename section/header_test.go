package section

import (
	"testing"

	"github.com/forgekit/forge/errs"
	"github.com/forgekit/forge/format"
	"github.com/stretchr/testify/require"
)

func TestHeader_RoundTrip(t *testing.T) {
	h := NewHeader()
	h.ManifestCompressedLen = 123
	h.ManifestUncompressedLen = 456

	data := h.Bytes()
	require.Len(t, data, format.HeaderSize)

	parsed, err := ParseHeader(data)
	require.NoError(t, err)
	require.Equal(t, h, parsed)
}

func TestParseHeader_Truncated(t *testing.T) {
	_, err := ParseHeader([]byte{1, 2, 3})
	require.ErrorIs(t, err, errs.ErrCorrupt)
}

func TestParseHeader_BadMagic(t *testing.T) {
	data := NewHeader().Bytes()
	data[0] = 'X'

	_, err := ParseHeader(data)
	require.ErrorIs(t, err, errs.ErrVersionMismatch)
}

func TestParseHeader_VersionMismatch(t *testing.T) {
	h := NewHeader()
	h.Version = format.Version + 1
	data := h.Bytes()

	_, err := ParseHeader(data)
	require.ErrorIs(t, err, errs.ErrVersionMismatch)
}
