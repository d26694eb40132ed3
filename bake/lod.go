package bake

// generateLOD produces one simplified index buffer from positions/indices
// by greedily collapsing the shortest remaining edge into one of its
// endpoints until the triangle count reaches targetTriangles or the
// collapsed edge length exceeds targetError (spec §4.6 step 7). This
// approximates lod-target-error with edge length rather than a full
// quadric error metric (see DESIGN.md).
//
// When lockBorder is set, vertices on a boundary edge (used by only one
// triangle) are never collapsed away, pinning the mesh's silhouette.
func generateLOD(positions []float32, indices []uint32, targetTriangles int, targetError float64, lockBorder bool) []uint32 {
	tris := trianglesOf(indices)
	if len(tris) <= targetTriangles {
		return indices
	}

	locked := map[uint32]bool{}
	if lockBorder {
		locked = boundaryVertices(tris)
	}

	for len(tris) > targetTriangles {
		v0, v1, ok := shortestCollapsibleEdge(positions, tris, locked)
		if !ok {
			break
		}
		if float64(length3(sub3(vec3At(positions, v0), vec3At(positions, v1)))) > targetError {
			break
		}

		tris = collapseEdge(tris, v1, v0)
	}

	out := make([]uint32, 0, len(tris)*3)
	for _, t := range tris {
		out = append(out, t[0], t[1], t[2])
	}
	return out
}

type triangle [3]uint32

func trianglesOf(indices []uint32) []triangle {
	tris := make([]triangle, 0, len(indices)/3)
	for i := 0; i+2 < len(indices); i += 3 {
		tris = append(tris, triangle{indices[i], indices[i+1], indices[i+2]})
	}
	return tris
}

// boundaryVertices returns the set of vertices touching an edge used by
// exactly one triangle.
func boundaryVertices(tris []triangle) map[uint32]bool {
	type edge [2]uint32
	counts := map[edge]int{}
	normalize := func(a, b uint32) edge {
		if a > b {
			a, b = b, a
		}
		return edge{a, b}
	}

	for _, t := range tris {
		counts[normalize(t[0], t[1])]++
		counts[normalize(t[1], t[2])]++
		counts[normalize(t[2], t[0])]++
	}

	boundary := map[uint32]bool{}
	for e, n := range counts {
		if n == 1 {
			boundary[e[0]] = true
			boundary[e[1]] = true
		}
	}
	return boundary
}

// shortestCollapsibleEdge scans every edge in tris and returns the shortest
// one whose removed endpoint (v1) isn't locked.
func shortestCollapsibleEdge(positions []float32, tris []triangle, locked map[uint32]bool) (v0, v1 uint32, ok bool) {
	bestLen := float32(-1)

	consider := func(a, b uint32) {
		if locked[b] {
			a, b = b, a
			if locked[b] {
				return
			}
		}
		l := length3(sub3(vec3At(positions, a), vec3At(positions, b)))
		if bestLen < 0 || l < bestLen {
			bestLen = l
			v0, v1, ok = a, b, true
		}
	}

	for _, t := range tris {
		consider(t[0], t[1])
		consider(t[1], t[2])
		consider(t[2], t[0])
	}

	return v0, v1, ok
}

// collapseEdge merges vertex from into vertex into across every triangle,
// dropping any triangle that degenerates (repeats a vertex) as a result.
func collapseEdge(tris []triangle, from, into uint32) []triangle {
	out := make([]triangle, 0, len(tris))
	for _, t := range tris {
		for i, v := range t {
			if v == from {
				t[i] = into
			}
		}
		if t[0] == t[1] || t[1] == t[2] || t[2] == t[0] {
			continue
		}
		out = append(out, t)
	}
	return out
}
