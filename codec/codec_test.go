package codec

import (
	"testing"

	"github.com/forgekit/forge/format"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	payloads := [][]byte{
		nil,
		[]byte(""),
		[]byte("a"),
		[]byte("the quick brown fox jumps over the lazy dog, again and again and again"),
		make([]byte, 1<<16),
	}

	kinds := []format.CompressionKind{
		format.CompressionNone,
		format.CompressionSnap,
		format.CompressionBrotli,
	}

	for _, kind := range kinds {
		t.Run(kind.String(), func(t *testing.T) {
			c, err := GetCodec(kind)
			require.NoError(t, err)

			for _, data := range payloads {
				compressed, err := c.Compress(data)
				require.NoError(t, err)

				decompressed, err := c.Decompress(compressed)
				require.NoError(t, err)
				require.Equal(t, data, decompressed)
			}
		})
	}
}

func TestCreateCodec_InvalidKind(t *testing.T) {
	_, err := CreateCodec(format.CompressionKind(0xff), "blob")
	require.Error(t, err)
}

func TestGetCodec_InvalidKind(t *testing.T) {
	_, err := GetCodec(format.CompressionKind(0xff))
	require.Error(t, err)
}

func TestBrotliCodec_Ratio(t *testing.T) {
	c := NewBrotliCodec()
	data := bytesRepeat([]byte("forge-asset-pak-"), 4096)

	compressed, err := c.Compress(data)
	require.NoError(t, err)
	require.Less(t, len(compressed), len(data))

	out, err := c.Decompress(compressed)
	require.NoError(t, err)
	require.Equal(t, data, out)
}

func bytesRepeat(b []byte, n int) []byte {
	out := make([]byte, 0, len(b)*n)
	for i := 0; i < n; i++ {
		out = append(out, b...)
	}
	return out
}
