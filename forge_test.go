package forge

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/forgekit/forge/format"
	"github.com/forgekit/forge/model"
)

func writeChecker(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x+y)%2 == 0 {
				img.Set(x, y, color.NRGBA{255, 0, 0, 255})
			} else {
				img.Set(x, y, color.NRGBA{0, 255, 0, 255})
			}
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestBakeAndOpen_RoundTripsBitmap(t *testing.T) {
	dir := t.TempDir()
	writeChecker(t, filepath.Join(dir, "hero.png"), 4, 4)

	contentPath := filepath.Join(dir, "game.toml")
	require.NoError(t, os.WriteFile(contentPath, []byte(`
[content]
compression = "snap"

[[content.group]]
assets = ["hero.png"]
`), 0o644))

	outputPath := filepath.Join(dir, "game.fpak")
	require.NoError(t, Bake(context.Background(), contentPath, outputPath))

	reader, err := Open(outputPath)
	require.NoError(t, err)

	key, err := model.NewAssetKey(filepath.Join(dir, "hero.png"))
	require.NoError(t, err)
	require.True(t, reader.Contains(format.KindBitmap, key))

	bmp, err := reader.ReadBitmap(key)
	require.NoError(t, err)
	require.Equal(t, 4, bmp.Width)
	require.Equal(t, 4, bmp.Height)
}

func TestBake_InvalidContentDocumentFails(t *testing.T) {
	dir := t.TempDir()
	contentPath := filepath.Join(dir, "game.toml")
	require.NoError(t, os.WriteFile(contentPath, []byte("not valid toml [["), 0o644))

	err := Bake(context.Background(), contentPath, filepath.Join(dir, "out.fpak"))
	require.Error(t, err)
}

func TestBake_UnresolvableSourceFails(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mystery.xyz"), nil, 0o644))

	contentPath := filepath.Join(dir, "game.toml")
	require.NoError(t, os.WriteFile(contentPath, []byte(`
[content]

[[content.group]]
assets = ["mystery.xyz"]
`), 0o644))

	err := Bake(context.Background(), contentPath, filepath.Join(dir, "out.fpak"))
	require.Error(t, err)
}

func TestOpen_MissingFileFails(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.fpak"))
	require.Error(t, err)
}
