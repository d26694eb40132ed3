package model

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/forgekit/forge/format"
)

func TestNewAssetKey_Canonicalizes(t *testing.T) {
	k1, err := NewAssetKey("textures/./wall.png")
	require.NoError(t, err)
	require.True(t, filepath.IsAbs(string(k1)))

	k2, err := NewAssetKey("textures/sub/../wall.png")
	require.NoError(t, err)
	require.Equal(t, k1, k2)
}

func TestSyntheticKey_Stable(t *testing.T) {
	k1 := SyntheticKey(format.KindMaterial, "mat.toml|color|tex.png")
	k2 := SyntheticKey(format.KindMaterial, "mat.toml|color|tex.png")
	require.Equal(t, k1, k2)
	require.Contains(t, string(k1), "material")
}

func TestSyntheticKey_DifferentSeedsDiffer(t *testing.T) {
	k1 := SyntheticKey(format.KindMaterial, "mat.toml|color|tex.png")
	k2 := SyntheticKey(format.KindMaterial, "mat.toml|normal|tex.png")
	require.NotEqual(t, k1, k2)
}
