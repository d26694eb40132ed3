// Package format defines the small closed enumerations and on-disk constants
// shared by every layer of the archive format: asset kinds, codec kinds, the
// magic/version pair, and the fixed field widths of the container envelope.
package format

// AssetKind identifies which of the canonical entity tables a manifest entry or
// blob belongs to.
type AssetKind uint8

const (
	KindBitmap   AssetKind = 0x1
	KindFont     AssetKind = 0x2
	KindMesh     AssetKind = 0x3
	KindAnim     AssetKind = 0x4
	KindMaterial AssetKind = 0x5
	KindModel    AssetKind = 0x6
	KindScene    AssetKind = 0x7
)

// AllKinds lists every AssetKind in the fixed table order used when iterating a
// manifest deterministically.
var AllKinds = []AssetKind{
	KindBitmap, KindFont, KindMesh, KindAnim, KindMaterial, KindModel, KindScene,
}

func (k AssetKind) String() string {
	switch k {
	case KindBitmap:
		return "bitmap"
	case KindFont:
		return "bitmap-font"
	case KindMesh:
		return "mesh"
	case KindAnim:
		return "animation"
	case KindMaterial:
		return "material"
	case KindModel:
		return "model"
	case KindScene:
		return "scene"
	default:
		return "unknown"
	}
}

// CompressionKind identifies the codec a blob (or the manifest itself) was
// compressed with. It is stored per-blob in the blob table (§6.1).
type CompressionKind uint8

const (
	CompressionNone   CompressionKind = 0x1
	CompressionSnap   CompressionKind = 0x2
	CompressionBrotli CompressionKind = 0x3
)

func (c CompressionKind) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionSnap:
		return "snap"
	case CompressionBrotli:
		return "brotli"
	default:
		return "unknown"
	}
}

// ParseCompressionKind maps a content-document compression name to its
// CompressionKind. Used by sourcecfg when parsing the `compression` field.
func ParseCompressionKind(name string) (CompressionKind, bool) {
	switch name {
	case "", "none":
		return CompressionNone, true
	case "snap":
		return CompressionSnap, true
	case "brotli":
		return CompressionBrotli, true
	default:
		return 0, false
	}
}

// ColorSpace tags whether a Bitmap's pixel bytes are linear or sRGB-encoded.
// It is metadata only; it never transforms pixel bytes on its own (§4.5 step 3).
type ColorSpace uint8

const (
	ColorSpaceLinear ColorSpace = 0x1
	ColorSpaceSRGB   ColorSpace = 0x2
)

func (c ColorSpace) String() string {
	switch c {
	case ColorSpaceLinear:
		return "linear"
	case ColorSpaceSRGB:
		return "srgb"
	default:
		return "unknown"
	}
}

// KeyframeKind identifies the payload shape of one animation channel (§3.2).
type KeyframeKind uint8

const (
	KeyframeTranslation KeyframeKind = 0x1
	KeyframeRotation    KeyframeKind = 0x2
	KeyframeScale       KeyframeKind = 0x3
	KeyframeWeights     KeyframeKind = 0x4
)

// MaterialValueKind tags the shape of a resolved PBR slot value (§3.2, §4.3).
type MaterialValueKind uint8

const (
	MaterialValueNone     MaterialValueKind = 0x0
	MaterialValueConstant MaterialValueKind = 0x1
	MaterialValueBitmap   MaterialValueKind = 0x2
)

const (
	// Magic is the fixed 4-byte identifier at the start of every archive (§6.1).
	Magic = "FPAK"

	// Version is the current on-disk format version. A reader refuses to open
	// an archive whose version it does not recognize (§4.9, §7).
	Version uint16 = 1

	// HeaderSize is the size in bytes of the fixed envelope preceding the
	// manifest bytes: magic(4) + version(2) + manifest_compressed_len(4) +
	// manifest_uncompressed_len(4).
	HeaderSize = 4 + 2 + 4 + 4

	// BlobTableEntrySize is the size in bytes of one (offset, length, codec)
	// triple in the blob table: offset(8) + length(4) + codec(1).
	BlobTableEntrySize = 8 + 4 + 1
)
