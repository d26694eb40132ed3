package bake

import (
	"fmt"

	"github.com/forgekit/forge/errs"
)

// TangentGenerator synthesizes per-vertex tangents when a mesh source omits
// them but the bake description requests them (spec §4.6 step 5). It is an
// external-collaborator contract so a true MikkTSpace port can replace the
// default implementation without touching the rest of the mesh bake stage.
type TangentGenerator interface {
	// Generate returns a tangent per vertex (xyz direction + w handedness
	// sign), given the triangle's positions, normals and UVs.
	Generate(positions, normals, uvs []float32, indices []uint32) ([]float32, error)
}

// defaultTangentGenerator accumulates the per-triangle tangent/bitangent
// directions (Lengyel's method) at each vertex, then orthogonalizes against
// the vertex normal and derives a handedness sign — the same per-triangle
// accumulate-then-orthogonalize shape MikkTSpace itself uses, without its
// face-varying basis resolution.
type defaultTangentGenerator struct{}

func (defaultTangentGenerator) Generate(positions, normals, uvs []float32, indices []uint32) ([]float32, error) {
	vertexCount := len(positions) / 3
	if len(normals) != vertexCount*3 {
		return nil, fmt.Errorf("%w: tangent generation requires normals", errs.ErrPipeline)
	}
	if len(uvs) != vertexCount*2 {
		return nil, fmt.Errorf("%w: tangent generation requires UVs", errs.ErrPipeline)
	}

	tan1 := make([][3]float32, vertexCount)
	tan2 := make([][3]float32, vertexCount)

	for i := 0; i+2 < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]
		p0, p1, p2 := vec3At(positions, i0), vec3At(positions, i1), vec3At(positions, i2)
		uv0, uv1, uv2 := vec2At(uvs, i0), vec2At(uvs, i1), vec2At(uvs, i2)

		e1, e2 := sub3(p1, p0), sub3(p2, p0)
		du1, dv1 := uv1[0]-uv0[0], uv1[1]-uv0[1]
		du2, dv2 := uv2[0]-uv0[0], uv2[1]-uv0[1]

		denom := du1*dv2 - du2*dv1
		if denom == 0 {
			continue
		}
		r := 1 / denom

		sdir := scaleVec3(sub3(scaleVec3(e1, dv2), scaleVec3(e2, dv1)), r)
		tdir := scaleVec3(sub3(scaleVec3(e2, du1), scaleVec3(e1, du2)), r)

		for _, idx := range [3]uint32{i0, i1, i2} {
			tan1[idx] = add3(tan1[idx], sdir)
			tan2[idx] = add3(tan2[idx], tdir)
		}
	}

	out := make([]float32, vertexCount*4)
	for i := 0; i < vertexCount; i++ {
		n := vec3At(normals, uint32(i))
		t := tan1[i]

		ortho := normalize3(sub3(t, scaleVec3(n, dot3(n, t))))

		handedness := float32(1)
		if dot3(cross3(n, t), tan2[i]) < 0 {
			handedness = -1
		}

		out[i*4], out[i*4+1], out[i*4+2], out[i*4+3] = ortho[0], ortho[1], ortho[2], handedness
	}

	return out, nil
}
