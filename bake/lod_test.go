package bake

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// a simple quad made of 4 triangles sharing a center vertex, small enough
// edges that a generous targetError never blocks collapse.
func quadFan() (positions []float32, indices []uint32) {
	positions = []float32{
		0, 0, 0, // 0 bottom-left
		1, 0, 0, // 1 bottom-right
		1, 1, 0, // 2 top-right
		0, 1, 0, // 3 top-left
		0.5, 0.5, 0, // 4 center
	}
	indices = []uint32{
		0, 1, 4,
		1, 2, 4,
		2, 3, 4,
		3, 0, 4,
	}
	return positions, indices
}

func TestGenerateLOD_ReducesTriangleCountWithGenerousError(t *testing.T) {
	positions, indices := quadFan()

	simplified := generateLOD(positions, indices, 1, 10, false)
	require.Less(t, len(simplified)/3, 4)
}

func TestGenerateLOD_AlreadyBelowTargetIsUnchanged(t *testing.T) {
	positions, indices := quadFan()

	simplified := generateLOD(positions, indices, 100, 10, false)
	require.Equal(t, indices, simplified)
}

func TestGenerateLOD_ZeroTargetErrorStopsImmediately(t *testing.T) {
	positions, indices := quadFan()

	simplified := generateLOD(positions, indices, 1, 0, false)
	require.Equal(t, len(indices), len(simplified))
}

func TestBoundaryVertices_SingleTriangleAllBoundary(t *testing.T) {
	tris := []triangle{{0, 1, 2}}
	boundary := boundaryVertices(tris)
	require.True(t, boundary[0])
	require.True(t, boundary[1])
	require.True(t, boundary[2])
}

func TestCollapseEdge_DropsDegenerateTriangles(t *testing.T) {
	tris := []triangle{{0, 1, 2}, {1, 3, 4}}
	collapsed := collapseEdge(tris, 1, 0)
	require.Equal(t, []triangle{{0, 3, 4}}, collapsed)
}
