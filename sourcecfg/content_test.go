package sourcecfg

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/forgekit/forge/errs"
	"github.com/forgekit/forge/format"
)

func TestParseContent_Basic(t *testing.T) {
	src := `
[content]
compression = "snap"

[[content.group]]
assets = ["textures/*.png", "meshes/*.gltf"]

[[content.group]]
assets = ["ui/*.fnt"]
`
	doc, err := ParseContent([]byte(src))
	require.NoError(t, err)
	require.Equal(t, "snap", doc.Content.Compression)
	require.Len(t, doc.Content.Groups, 2)
	require.Equal(t, []string{"textures/*.png", "meshes/*.gltf"}, doc.Content.Groups[0].Assets)

	kind, err := doc.Content.CompressionKind()
	require.NoError(t, err)
	require.Equal(t, format.CompressionSnap, kind)
}

func TestParseContent_VersionMismatch(t *testing.T) {
	src := `
[content]
version = "999"
`
	_, err := ParseContent([]byte(src))
	require.ErrorIs(t, err, errs.ErrConfig)
}

func TestParseContent_BadCompression(t *testing.T) {
	doc, err := ParseContent([]byte(`[content]
compression = "gzip"
`))
	require.NoError(t, err)

	_, err = doc.Content.CompressionKind()
	require.ErrorIs(t, err, errs.ErrConfig)
}

func TestParseContent_MalformedTOML(t *testing.T) {
	_, err := ParseContent([]byte("this is not [ valid toml"))
	require.ErrorIs(t, err, errs.ErrConfig)
}
