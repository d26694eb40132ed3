package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMesh_RoundTrip_Minimal(t *testing.T) {
	m := &Mesh{
		Parts: []MeshPart{
			{
				MaterialSlot: 0,
				Vertices: VertexBuffer{
					VertexCount: 3,
					Positions:   []float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
				},
				Indices: []uint32{0, 1, 2},
			},
		},
	}

	parsed, err := DecodeMesh(m.Encode())
	require.NoError(t, err)
	require.Equal(t, m, parsed)
}

func TestMesh_RoundTrip_FullAttributes(t *testing.T) {
	m := &Mesh{
		Parts: []MeshPart{
			{
				MaterialSlot: 1,
				Vertices: VertexBuffer{
					VertexCount:  2,
					Positions:    []float32{0, 0, 0, 1, 1, 1},
					Normals:      []float32{0, 1, 0, 0, 1, 0},
					Tangents:     []float32{1, 0, 0, 1, 1, 0, 0, 1},
					UVs:          []float32{0, 0, 1, 1},
					JointIndices: []uint16{0, 1, 2, 3, 0, 0, 0, 0},
					JointWeights: []float32{0.5, 0.5, 0, 0, 1, 0, 0, 0},
				},
				Indices: []uint32{0, 1},
				LODs:    [][]uint32{{0, 1}},
				Shadow: &ShadowPart{
					Positions: []float32{0, 0, 0, 1, 1, 1},
					Indices:   []uint32{0, 1},
				},
			},
		},
		Skeleton: &Skeleton{
			Joints: []Joint{
				{Name: "root", ParentIndex: -1},
				{Name: "child", ParentIndex: 0},
			},
		},
	}

	parsed, err := DecodeMesh(m.Encode())
	require.NoError(t, err)
	require.Equal(t, m, parsed)
}

func TestMesh_LODTriangleCountsDecrease(t *testing.T) {
	lods := [][]uint32{
		{0, 1, 2, 3, 4, 5, 6, 7, 8}, // 3 triangles
		{0, 1, 2, 3, 4, 5},          // 2 triangles
		{0, 1, 2},                   // 1 triangle
	}

	prev := -1
	for _, lod := range lods {
		tris := len(lod) / 3
		if prev >= 0 {
			require.Less(t, tris, prev)
		}
		prev = tris
	}
}
