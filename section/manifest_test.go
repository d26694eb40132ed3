package section

import (
	"testing"

	"github.com/forgekit/forge/format"
	"github.com/stretchr/testify/require"
)

func TestManifest_PutGet(t *testing.T) {
	m := NewManifest()
	m.Put(format.KindBitmap, "textures/wall.png", ManifestEntry{BlobID: 1, Metadata: []byte("meta-a")})
	m.Put(format.KindBitmap, "textures/floor.png", ManifestEntry{BlobID: 2})
	m.Put(format.KindMesh, "meshes/crate.glb", ManifestEntry{BlobID: 3})

	e, ok := m.Get(format.KindBitmap, "textures/wall.png")
	require.True(t, ok)
	require.Equal(t, uint32(1), e.BlobID)
	require.Equal(t, []byte("meta-a"), e.Metadata)

	_, ok = m.Get(format.KindBitmap, "missing.png")
	require.False(t, ok)

	require.Equal(t, 2, m.Len(format.KindBitmap))
	require.Equal(t, 1, m.Len(format.KindMesh))
	require.Equal(t, 0, m.Len(format.KindScene))
}

func TestManifest_RoundTrip(t *testing.T) {
	m := NewManifest()
	m.Put(format.KindBitmap, "b/two.png", ManifestEntry{BlobID: 2, Metadata: []byte{1, 2, 3}})
	m.Put(format.KindBitmap, "b/one.png", ManifestEntry{BlobID: 1})
	m.Put(format.KindScene, "scenes/main.scene", ManifestEntry{BlobID: 5, Metadata: []byte("scene-meta")})
	m.Sort()

	data := m.Bytes()
	parsed, err := ParseManifest(data)
	require.NoError(t, err)

	var keys []string
	for k := range parsed.Keys(format.KindBitmap) {
		keys = append(keys, k)
	}
	require.Equal(t, []string{"b/one.png", "b/two.png"}, keys)

	e, ok := parsed.Get(format.KindBitmap, "b/two.png")
	require.True(t, ok)
	require.Equal(t, uint32(2), e.BlobID)
	require.Equal(t, []byte{1, 2, 3}, e.Metadata)

	e, ok = parsed.Get(format.KindScene, "scenes/main.scene")
	require.True(t, ok)
	require.Equal(t, []byte("scene-meta"), e.Metadata)
}

func TestManifest_EmptyRoundTrip(t *testing.T) {
	m := NewManifest()
	data := m.Bytes()
	require.Empty(t, data)

	parsed, err := ParseManifest(data)
	require.NoError(t, err)
	require.Equal(t, 0, parsed.Len(format.KindBitmap))
}
