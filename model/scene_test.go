package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScene_RoundTrip(t *testing.T) {
	s := &Scene{
		Refs: []SceneRef{
			{
				Kind:      RefAsset,
				Transform: Transform{Translation: [3]float32{1, 2, 3}, Rotation: [4]float32{0, 0, 0, 1}},
				Mesh:      1,
				Materials: []BlobID{2, 3},
			},
			{
				Kind:      RefAnchor,
				Transform: Transform{Rotation: [4]float32{0, 0, 0, 1}},
				Name:      "spawn_point",
				Tags:      []string{"gameplay", "spawn"},
				Data:      map[string]string{"team": "red", "priority": "1"},
			},
		},
		Geometry: []SceneGeometry{
			{
				Vertices:  []float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
				Indices:   []uint32{0, 1, 2},
				Transform: Transform{Rotation: [4]float32{0, 0, 0, 1}},
				Tags:      []string{"navmesh"},
			},
		},
	}

	parsed, err := DecodeScene(s.Encode())
	require.NoError(t, err)
	require.Equal(t, s, parsed)
}

func TestScene_Empty(t *testing.T) {
	s := &Scene{}

	parsed, err := DecodeScene(s.Encode())
	require.NoError(t, err)
	require.Empty(t, parsed.Refs)
	require.Empty(t, parsed.Geometry)
}
