package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBitmapFont_RoundTrip(t *testing.T) {
	f := &BitmapFont{
		Definition: []byte("info face=\"Arial\" size=32\n"),
		Pages:      []BlobID{3, 7, 9},
	}

	parsed, err := DecodeBitmapFont(f.Encode())
	require.NoError(t, err)
	require.Equal(t, f, parsed)
}

func TestBitmapFont_NoPages(t *testing.T) {
	f := &BitmapFont{Definition: []byte("x")}

	parsed, err := DecodeBitmapFont(f.Encode())
	require.NoError(t, err)
	require.Equal(t, f.Definition, parsed.Definition)
	require.Empty(t, parsed.Pages)
}
