package bake

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/forgekit/forge/sourcecfg"
)

func TestCompileTransform_Defaults(t *testing.T) {
	tr, err := compileTransform(sourcecfg.TransformDoc{})
	require.NoError(t, err)

	v := tr.applyPosition([3]float32{1, 2, 3})
	require.Equal(t, [3]float32{1, 2, 3}, v)
	require.False(t, tr.windingFlips())
}

func TestCompileTransform_ScaleAndOffset(t *testing.T) {
	tr, err := compileTransform(sourcecfg.TransformDoc{
		Scale:  []float64{2, 2, 2},
		Offset: []float64{1, 0, 0},
	})
	require.NoError(t, err)

	v := tr.applyPosition([3]float32{1, 1, 1})
	require.InDeltaSlice(t, []float32{3, 2, 2}, v[:], 1e-6)
}

func TestCompileTransform_SingleAxisFlipWindingFlips(t *testing.T) {
	tr, err := compileTransform(sourcecfg.TransformDoc{FlipX: true})
	require.NoError(t, err)
	require.True(t, tr.windingFlips())
}

func TestCompileTransform_EulerRotationY90(t *testing.T) {
	tr, err := compileTransform(sourcecfg.TransformDoc{
		Euler:    "xyz",
		Rotation: []float64{0, math.Pi / 2, 0},
	})
	require.NoError(t, err)

	v := tr.applyDirection([3]float32{1, 0, 0})
	require.InDelta(t, 0, v[0], 1e-5)
	require.InDelta(t, 0, v[1], 1e-5)
	require.InDelta(t, -1, v[2], 1e-5)
}

func TestCompileTransform_BadScaleComponentCount(t *testing.T) {
	_, err := compileTransform(sourcecfg.TransformDoc{Scale: []float64{1, 2}})
	require.Error(t, err)
}

func TestCompileTransform_EulerRequiresThreeAngles(t *testing.T) {
	_, err := compileTransform(sourcecfg.TransformDoc{Euler: "xyz", Rotation: []float64{1, 2}})
	require.Error(t, err)
}

func TestCompileTransform_QuaternionIdentity(t *testing.T) {
	tr, err := compileTransform(sourcecfg.TransformDoc{Rotation: []float64{0, 0, 0, 1}})
	require.NoError(t, err)

	v := tr.applyDirection([3]float32{1, 2, 3})
	require.InDeltaSlice(t, []float32{1, 2, 3}, v[:], 1e-6)
}
