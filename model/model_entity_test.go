package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestModel_RoundTrip(t *testing.T) {
	m := &Model{
		Parts: []ModelPart{
			{Mesh: 1, Materials: []BlobID{2, 3}},
			{Mesh: 4, Materials: []BlobID{5}},
		},
	}

	parsed, err := DecodeModel(m.Encode())
	require.NoError(t, err)
	require.Equal(t, m, parsed)
}
