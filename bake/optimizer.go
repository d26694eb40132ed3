package bake

// MeshOptimizer reorders a mesh part's vertices and indices for better
// vertex-cache/overdraw behavior (spec §4.6 step 6). It is an
// external-collaborator contract so a full vertex-cache-simulating
// optimizer can be swapped in without touching the rest of the mesh bake
// stage.
type MeshOptimizer interface {
	// Optimize returns reindexed indices and oldIndex, the permutation
	// mapping each new vertex slot back to the source vertex it replaces
	// (attribute arrays are remapped through oldIndex in lockstep).
	Optimize(vertexCount int, indices []uint32, overdrawThreshold float64) (newIndices []uint32, oldIndex []uint32)
}

// defaultMeshOptimizer reorders vertices into first-use order: a vertex is
// assigned its new index the first time it's referenced while walking the
// index buffer. This already improves post-transform vertex cache locality
// for typical meshes (a common baseline before a full Forsyth/Tipsify
// simulation); overdrawThreshold is accepted for interface compatibility
// with a future cache-simulating optimizer but doesn't change behavior here.
type defaultMeshOptimizer struct{}

func (defaultMeshOptimizer) Optimize(vertexCount int, indices []uint32, overdrawThreshold float64) ([]uint32, []uint32) {
	_ = overdrawThreshold

	newIndexOf := make([]int32, vertexCount)
	for i := range newIndexOf {
		newIndexOf[i] = -1
	}

	oldIndex := make([]uint32, 0, vertexCount)
	newIndices := make([]uint32, len(indices))

	for i, idx := range indices {
		if newIndexOf[idx] == -1 {
			newIndexOf[idx] = int32(len(oldIndex))
			oldIndex = append(oldIndex, idx)
		}
		newIndices[i] = uint32(newIndexOf[idx])
	}

	return newIndices, oldIndex
}
