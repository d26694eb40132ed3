package bake

import (
	"fmt"
	"math"
	"strings"

	"github.com/forgekit/forge/errs"
	"github.com/forgekit/forge/sourcecfg"
)

// mat3 is a row-major 3x3 matrix, used to compose a mesh transform's scale,
// flip, and rotation steps before applying translation/offset directly to
// position vectors (spec §4.6 step 4).
type mat3 [9]float32

func identity3() mat3 {
	return mat3{1, 0, 0, 0, 1, 0, 0, 0, 1}
}

func scale3(sx, sy, sz float32) mat3 {
	return mat3{sx, 0, 0, 0, sy, 0, 0, 0, sz}
}

func (m mat3) mul(o mat3) mat3 {
	var r mat3
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			var sum float32
			for k := 0; k < 3; k++ {
				sum += m[row*3+k] * o[k*3+col]
			}
			r[row*3+col] = sum
		}
	}
	return r
}

func (m mat3) apply(v [3]float32) [3]float32 {
	return [3]float32{
		m[0]*v[0] + m[1]*v[1] + m[2]*v[2],
		m[3]*v[0] + m[4]*v[1] + m[5]*v[2],
		m[6]*v[0] + m[7]*v[1] + m[8]*v[2],
	}
}

func (m mat3) determinant() float32 {
	return m[0]*(m[4]*m[8]-m[5]*m[7]) -
		m[1]*(m[3]*m[8]-m[5]*m[6]) +
		m[2]*(m[3]*m[7]-m[4]*m[6])
}

// quatToMat3 converts a quaternion (x, y, z, w) to a rotation matrix.
func quatToMat3(q [4]float32) mat3 {
	x, y, z, w := q[0], q[1], q[2], q[3]
	xx, yy, zz := x*x, y*y, z*z
	xy, xz, yz := x*y, x*z, y*z
	wx, wy, wz := w*x, w*y, w*z

	return mat3{
		1 - 2*(yy+zz), 2 * (xy - wz), 2 * (xz + wy),
		2 * (xy + wz), 1 - 2*(xx+zz), 2 * (yz - wx),
		2 * (xz - wy), 2 * (yz + wx), 1 - 2*(xx+yy),
	}
}

// eulerToMat3 builds a rotation matrix from three angles (radians) applied
// in the order named by axes (a permutation of "xyz").
func eulerToMat3(angles [3]float32, axes string) (mat3, error) {
	m := identity3()
	for i, axis := range axes {
		var r mat3
		switch axis {
		case 'x':
			r = rotateX(angles[i])
		case 'y':
			r = rotateY(angles[i])
		case 'z':
			r = rotateZ(angles[i])
		default:
			return mat3{}, fmt.Errorf("%w: euler order %q must be a permutation of xyz", errs.ErrConfig, axes)
		}
		m = r.mul(m)
	}
	return m, nil
}

func rotateX(a float32) mat3 {
	c, s := float32(math.Cos(float64(a))), float32(math.Sin(float64(a)))
	return mat3{1, 0, 0, 0, c, -s, 0, s, c}
}

func rotateY(a float32) mat3 {
	c, s := float32(math.Cos(float64(a))), float32(math.Sin(float64(a)))
	return mat3{c, 0, s, 0, 1, 0, -s, 0, c}
}

func rotateZ(a float32) mat3 {
	c, s := float32(math.Cos(float64(a))), float32(math.Sin(float64(a)))
	return mat3{c, -s, 0, s, c, 0, 0, 0, 1}
}

// compiledTransform is the fully resolved form of a mesh description's
// `[mesh.transform]` table, ready to apply to every vertex.
type compiledTransform struct {
	scale       [3]float32
	flip        [3]float32 // -1 or 1 per axis
	rotation    mat3
	translation [3]float32
	offset      [3]float32

	// flipDeterminant is scale*flip's determinant; its sign decides
	// whether triangle winding must flip (spec §4.6 step 4).
	flipDeterminant float32
}

// compileTransform resolves a TransformDoc into a compiledTransform. Scale
// defaults to {1,1,1}; rotation defaults to identity; offset defaults to
// {0,0,0} (spec §4.6 step 4).
func compileTransform(doc sourcecfg.TransformDoc) (compiledTransform, error) {
	scale := [3]float32{1, 1, 1}
	if len(doc.Scale) == 3 {
		scale = [3]float32{float32(doc.Scale[0]), float32(doc.Scale[1]), float32(doc.Scale[2])}
	} else if len(doc.Scale) != 0 {
		return compiledTransform{}, fmt.Errorf("%w: transform scale must have 3 components", errs.ErrConfig)
	}

	flip := [3]float32{1, 1, 1}
	if doc.FlipX {
		flip[0] = -1
	}
	if doc.FlipY {
		flip[1] = -1
	}
	if doc.FlipZ {
		flip[2] = -1
	}

	var rot mat3
	switch {
	case doc.Euler != "":
		if len(doc.Rotation) != 3 {
			return compiledTransform{}, fmt.Errorf("%w: euler rotation must have 3 components", errs.ErrConfig)
		}
		angles := [3]float32{float32(doc.Rotation[0]), float32(doc.Rotation[1]), float32(doc.Rotation[2])}
		m, err := eulerToMat3(angles, strings.ToLower(doc.Euler))
		if err != nil {
			return compiledTransform{}, err
		}
		rot = m
	case len(doc.Rotation) == 4:
		q := [4]float32{
			float32(doc.Rotation[0]), float32(doc.Rotation[1]),
			float32(doc.Rotation[2]), float32(doc.Rotation[3]),
		}
		rot = quatToMat3(q)
	case len(doc.Rotation) == 0:
		rot = identity3()
	default:
		return compiledTransform{}, fmt.Errorf("%w: rotation must be a 4-vector quaternion or a 3-vector with euler set", errs.ErrConfig)
	}

	offset := [3]float32{}
	if len(doc.Offset) == 3 {
		offset = [3]float32{float32(doc.Offset[0]), float32(doc.Offset[1]), float32(doc.Offset[2])}
	} else if len(doc.Offset) != 0 {
		return compiledTransform{}, fmt.Errorf("%w: transform offset must have 3 components", errs.ErrConfig)
	}

	translation := [3]float32{}
	if len(doc.Translation) == 3 {
		translation = [3]float32{float32(doc.Translation[0]), float32(doc.Translation[1]), float32(doc.Translation[2])}
	} else if len(doc.Translation) != 0 {
		return compiledTransform{}, fmt.Errorf("%w: transform translation must have 3 components", errs.ErrConfig)
	}

	sf := scale3(scale[0]*flip[0], scale[1]*flip[1], scale[2]*flip[2])

	return compiledTransform{
		scale:           scale,
		flip:            flip,
		rotation:        rot,
		translation:     translation,
		offset:          offset,
		flipDeterminant: sf.determinant(),
	}, nil
}

// windingFlips reports whether triangle winding must flip to compensate for
// a negative-determinant scale+flip (spec §4.6 step 4).
func (t compiledTransform) windingFlips() bool {
	return t.flipDeterminant < 0
}

// applyPosition applies scale -> flip -> rotation -> translation -> offset
// to a position vector (spec §4.6 step 4).
func (t compiledTransform) applyPosition(v [3]float32) [3]float32 {
	scaled := [3]float32{v[0] * t.scale[0] * t.flip[0], v[1] * t.scale[1] * t.flip[1], v[2] * t.scale[2] * t.flip[2]}
	rotated := t.rotation.apply(scaled)
	translated := [3]float32{rotated[0] + t.translation[0], rotated[1] + t.translation[1], rotated[2] + t.translation[2]}
	return [3]float32{translated[0] + t.offset[0], translated[1] + t.offset[1], translated[2] + t.offset[2]}
}

// applyDirection applies flip -> rotation to a normal/tangent direction
// vector (no translation or offset, since directions aren't positions).
func (t compiledTransform) applyDirection(v [3]float32) [3]float32 {
	flipped := [3]float32{v[0] * t.flip[0], v[1] * t.flip[1], v[2] * t.flip[2]}
	return t.rotation.apply(flipped)
}
