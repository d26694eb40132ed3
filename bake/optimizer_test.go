package bake

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultMeshOptimizer_FirstUseReordering(t *testing.T) {
	// Vertex 2 is referenced before vertex 1 and vertex 0 is referenced
	// twice; first-use order should be 2, 0, 1.
	indices := []uint32{2, 0, 1, 0, 2, 1}

	newIndices, oldIndex := defaultMeshOptimizer{}.Optimize(3, indices, 1.05)

	require.Equal(t, []uint32{2, 0, 1}, oldIndex)
	require.Equal(t, []uint32{0, 1, 2, 1, 0, 2}, newIndices)
}

func TestDefaultMeshOptimizer_UnreferencedVertexDropped(t *testing.T) {
	indices := []uint32{0, 1, 2}

	newIndices, oldIndex := defaultMeshOptimizer{}.Optimize(4, indices, 1.05)

	require.Len(t, oldIndex, 3)
	require.Equal(t, []uint32{0, 1, 2}, newIndices)
}
