package bake

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultTangentGenerator_SingleTriangle(t *testing.T) {
	positions := []float32{
		0, 0, 0,
		1, 0, 0,
		0, 1, 0,
	}
	normals := []float32{
		0, 0, 1,
		0, 0, 1,
		0, 0, 1,
	}
	uvs := []float32{
		0, 0,
		1, 0,
		0, 1,
	}
	indices := []uint32{0, 1, 2}

	tangents, err := defaultTangentGenerator{}.Generate(positions, normals, uvs, indices)
	require.NoError(t, err)
	require.Len(t, tangents, 3*4)

	for i := 0; i < 3; i++ {
		x, y, z, w := tangents[i*4], tangents[i*4+1], tangents[i*4+2], tangents[i*4+3]
		length := x*x + y*y + z*z
		require.InDelta(t, 1, length, 1e-4)
		require.Contains(t, []float32{1, -1}, w)
	}
}

func TestDefaultTangentGenerator_MissingNormalsErrors(t *testing.T) {
	_, err := defaultTangentGenerator{}.Generate(
		[]float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
		nil,
		[]float32{0, 0, 1, 0, 0, 1},
		[]uint32{0, 1, 2},
	)
	require.Error(t, err)
}

func TestDefaultTangentGenerator_MissingUVsErrors(t *testing.T) {
	_, err := defaultTangentGenerator{}.Generate(
		[]float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
		[]float32{0, 0, 1, 0, 0, 1, 0, 0, 1},
		nil,
		[]uint32{0, 1, 2},
	)
	require.Error(t, err)
}
