package sourcecfg

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/forgekit/forge/errs"
	"github.com/forgekit/forge/format"
)

// AssetDoc is a per-asset document: exactly one of its fields is non-nil,
// naming the asset's kind by which root table was present (spec §4.3).
type AssetDoc struct {
	Bitmap     *BitmapDoc     `toml:"bitmap"`
	BitmapFont *BitmapFontDoc `toml:"bitmap-font"`
	Mesh       *MeshDoc       `toml:"mesh"`
	Animation  *AnimationDoc  `toml:"animation"`
	Material   *MaterialDoc   `toml:"material"`
	Model      *ModelDoc      `toml:"model"`
	Scene      *SceneDoc      `toml:"scene"`
}

// Kind returns the asset kind this document declares, and false if none of
// its root tables are present (resolve.Resolve rejects such a document with
// errs.ErrConfig).
func (d AssetDoc) Kind() (format.AssetKind, bool) {
	switch {
	case d.Bitmap != nil:
		return format.KindBitmap, true
	case d.BitmapFont != nil:
		return format.KindFont, true
	case d.Mesh != nil:
		return format.KindMesh, true
	case d.Animation != nil:
		return format.KindAnim, true
	case d.Material != nil:
		return format.KindMaterial, true
	case d.Model != nil:
		return format.KindModel, true
	case d.Scene != nil:
		return format.KindScene, true
	default:
		return 0, false
	}
}

// ParseAssetFile parses a per-asset document from path.
func ParseAssetFile(path string) (*AssetDoc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read asset file %q: %v", errs.ErrConfig, path, err)
	}

	return ParseAsset(data)
}

// ParseAsset parses a per-asset document from raw TOML bytes.
func ParseAsset(data []byte) (*AssetDoc, error) {
	var doc AssetDoc
	if _, err := toml.Decode(string(data), &doc); err != nil {
		return nil, fmt.Errorf("%w: decode asset document: %v", errs.ErrConfig, err)
	}

	return &doc, nil
}
