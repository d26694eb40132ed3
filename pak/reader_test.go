package pak

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/forgekit/forge/errs"
	"github.com/forgekit/forge/format"
	"github.com/forgekit/forge/model"
	"github.com/forgekit/forge/resolve"
	"github.com/forgekit/forge/sourcecfg"
)

func bakeArchive(t *testing.T, dir string, groups []string) (*Reader, []resolve.WorkItem) {
	t.Helper()

	content := &sourcecfg.Content{Groups: []sourcecfg.Group{{Assets: groups}}}
	items, err := resolve.Resolve(content, dir)
	require.NoError(t, err)

	w, err := NewWriter()
	require.NoError(t, err)

	outPath := filepath.Join(dir, "out.fpak")
	require.NoError(t, w.Write(context.Background(), items, outPath))

	r, err := Open(outPath)
	require.NoError(t, err)
	return r, items
}

func keyFor(t *testing.T, path string) model.AssetKey {
	t.Helper()
	key, err := model.NewAssetKey(path)
	require.NoError(t, err)
	return key
}

func TestReader_RoundTripsBitmap(t *testing.T) {
	dir := t.TempDir()
	writeChecker(t, filepath.Join(dir, "tex.png"), 4, 4)

	r, _ := bakeArchive(t, dir, []string{"tex.png"})

	key := keyFor(t, filepath.Join(dir, "tex.png"))
	require.True(t, r.Contains(format.KindBitmap, key))

	bmp, err := r.ReadBitmap(key)
	require.NoError(t, err)
	require.Equal(t, 4, bmp.Width)
	require.Equal(t, 4, bmp.Height)

	meta, err := r.BitmapMetadata(key)
	require.NoError(t, err)
	require.Equal(t, 4, meta.Width)
	require.Equal(t, 4, meta.Height)
}

func TestReader_RoundTripsMaterialAndModel(t *testing.T) {
	dir := t.TempDir()
	writeChecker(t, filepath.Join(dir, "tex.png"), 4, 4)
	writeFile(t, filepath.Join(dir, "mat.toml"), []byte(`
[material]
color = "tex.png"
`))
	writeFile(t, filepath.Join(dir, "crate.gltf"), buildTriangleGLTF())
	writeFile(t, filepath.Join(dir, "crate_model.toml"), []byte(`
[model]
mesh = "crate.gltf"
materials = ["mat.toml"]
`))

	r, _ := bakeArchive(t, dir, []string{"crate_model.toml"})

	modelKey := keyFor(t, filepath.Join(dir, "crate_model.toml"))
	mdl, err := r.ReadModel(modelKey)
	require.NoError(t, err)
	require.Len(t, mdl.Parts, 1)

	matKey := keyFor(t, filepath.Join(dir, "mat.toml"))
	mat, err := r.ReadMaterial(matKey)
	require.NoError(t, err)
	require.Equal(t, format.MaterialValueBitmap, mat.Slots[model.SlotColor].Kind)

	meshKey := keyFor(t, filepath.Join(dir, "crate.gltf"))
	mesh, err := r.ReadMesh(meshKey)
	require.NoError(t, err)
	require.NotNil(t, mesh)
}

func TestReader_UnknownKeyErrors(t *testing.T) {
	dir := t.TempDir()
	writeChecker(t, filepath.Join(dir, "tex.png"), 2, 2)

	r, _ := bakeArchive(t, dir, []string{"tex.png"})

	missing := keyFor(t, filepath.Join(dir, "ghost.png"))
	require.False(t, r.Contains(format.KindBitmap, missing))

	_, err := r.ReadBitmap(missing)
	require.ErrorIs(t, err, errs.ErrUnknownKey)
}

func TestReader_VersionMismatchErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.fpak")
	require.NoError(t, os.WriteFile(path, []byte("NOPE0000000000"), 0o644))

	_, err := Open(path)
	require.ErrorIs(t, err, errs.ErrVersionMismatch)
}

func TestReader_TruncatedArchiveIsCorrupt(t *testing.T) {
	dir := t.TempDir()
	writeChecker(t, filepath.Join(dir, "tex.png"), 2, 2)

	content := &sourcecfg.Content{Groups: []sourcecfg.Group{{Assets: []string{"tex.png"}}}}
	items, err := resolve.Resolve(content, dir)
	require.NoError(t, err)

	w, err := NewWriter()
	require.NoError(t, err)
	outPath := filepath.Join(dir, "out.fpak")
	require.NoError(t, w.Write(context.Background(), items, outPath))

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)

	truncPath := filepath.Join(dir, "trunc.fpak")
	require.NoError(t, os.WriteFile(truncPath, data[:len(data)/2], 0o644))

	_, err = Open(truncPath)
	require.ErrorIs(t, err, errs.ErrCorrupt)
}

func TestReader_KeysIteratesManifestOrder(t *testing.T) {
	dir := t.TempDir()
	writeChecker(t, filepath.Join(dir, "a.png"), 2, 2)
	writeChecker(t, filepath.Join(dir, "b.png"), 2, 2)

	r, _ := bakeArchive(t, dir, []string{"a.png", "b.png"})

	var keys []model.AssetKey
	for k := range r.Keys(format.KindBitmap) {
		keys = append(keys, k)
	}
	require.Len(t, keys, 2)
	require.Less(t, string(keys[0]), string(keys[1]))
}
