package sourcecfg

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/forgekit/forge/format"
)

func TestParseAsset_Bitmap(t *testing.T) {
	src := `
[bitmap]
src = "wall.png"
resize = 512
swizzle = "rgba"
color-space = "srgb"
mip-levels = true
`
	doc, err := ParseAsset([]byte(src))
	require.NoError(t, err)

	kind, ok := doc.Kind()
	require.True(t, ok)
	require.Equal(t, format.KindBitmap, kind)
	require.Equal(t, "wall.png", doc.Bitmap.Src)
	require.Equal(t, 512, doc.Bitmap.Resize)
	require.Equal(t, MipLevelsFull, doc.Bitmap.MipLevels.Kind)
}

func TestParseAsset_BitmapMipLevelsCount(t *testing.T) {
	doc, err := ParseAsset([]byte(`
[bitmap]
src = "wall.png"
mip-levels = 3
`))
	require.NoError(t, err)
	require.Equal(t, MipLevelsCount, doc.Bitmap.MipLevels.Kind)
	require.Equal(t, 3, doc.Bitmap.MipLevels.Count)
}

func TestParseAsset_MeshDefaults(t *testing.T) {
	doc, err := ParseAsset([]byte(`
[mesh]
src = "crate.gltf"
`))
	require.NoError(t, err)

	kind, ok := doc.Kind()
	require.True(t, ok)
	require.Equal(t, format.KindMesh, kind)
	require.True(t, doc.Mesh.OptimizeOrDefault())
	require.Equal(t, DefaultOverdrawThreshold, doc.Mesh.OverdrawThresholdOrDefault())
	require.Equal(t, DefaultMinLODTriangles, doc.Mesh.MinLODTrianglesOrDefault())
}

func TestParseAsset_MeshExplicitOptimizeFalse(t *testing.T) {
	doc, err := ParseAsset([]byte(`
[mesh]
src = "crate.gltf"
optimize = false
`))
	require.NoError(t, err)
	require.False(t, doc.Mesh.OptimizeOrDefault())
}

func TestParseAsset_MeshMaterialRemap(t *testing.T) {
	doc, err := ParseAsset([]byte(`
[mesh]
src = "crate.gltf"

[mesh.material-remap]
"0" = 2
"1" = 0
`))
	require.NoError(t, err)
	require.Equal(t, map[string]int{"0": 2, "1": 0}, doc.Mesh.MaterialRemap)
}

func TestParseAsset_MaterialPolymorphicValues(t *testing.T) {
	src := `
[material]
color = "#ff0000ff"
normal = "normal.png"
rough = 0.5
metal = { src = "metal.png", resize = 256 }
double-sided = true
`
	doc, err := ParseAsset([]byte(src))
	require.NoError(t, err)

	require.Equal(t, ValueHex, doc.Material.Color.Kind)
	require.Equal(t, "#ff0000ff", doc.Material.Color.Hex)

	require.Equal(t, ValuePath, doc.Material.Normal.Kind)
	require.Equal(t, "normal.png", doc.Material.Normal.Path)

	require.Equal(t, ValueScalar, doc.Material.Rough.Kind)
	require.Equal(t, []float64{0.5}, doc.Material.Rough.Scalar)

	require.Equal(t, ValueInline, doc.Material.Metal.Kind)
	require.Equal(t, "metal.png", doc.Material.Metal.Inline.Src)
	require.Equal(t, 256, doc.Material.Metal.Inline.Resize)

	require.True(t, doc.Material.DoubleSided)
}

func TestParseAsset_NoRootTable(t *testing.T) {
	doc, err := ParseAsset([]byte(""))
	require.NoError(t, err)

	_, ok := doc.Kind()
	require.False(t, ok)
}

func TestParseAsset_Scene(t *testing.T) {
	src := `
[[scene.ref]]
mesh = "crate.gltf"
materials = ["wood.mat"]
translation = [1, 2, 3]

[[scene.ref]]
name = "spawn"
tags = ["gameplay"]

[scene.ref.data]
team = "red"
`
	doc, err := ParseAsset([]byte(src))
	require.NoError(t, err)
	require.Len(t, doc.Scene.Refs, 2)
	require.False(t, doc.Scene.Refs[0].IsAnchor())
	require.True(t, doc.Scene.Refs[1].IsAnchor())
	require.Equal(t, "red", doc.Scene.Refs[1].Data["team"])
}
