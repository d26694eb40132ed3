package sourcecfg

import (
	"fmt"
	"strings"

	"github.com/forgekit/forge/errs"
)

// ValueKind tags which shape a polymorphic material field took in the
// source document (spec §4.3, §9).
type ValueKind uint8

const (
	ValueNone ValueKind = iota
	ValueHex
	ValuePath
	ValueInline
	ValueScalar
)

// Value is a polymorphic field: a hex RGBA literal, a path to a bitmap
// source, an inline bitmap table, or a scalar/small vector of floats. The
// parser disambiguates purely by shape: a string starting with '#' is hex,
// any other string is a path, a table is an inline bitmap document, and a
// number or array of numbers is a scalar (spec §4.3, §9).
type Value struct {
	Kind   ValueKind
	Hex    string
	Path   string
	Inline *BitmapDoc
	Scalar []float64
}

var _ interface {
	UnmarshalTOML(any) error
} = (*Value)(nil)

// UnmarshalTOML implements github.com/BurntSushi/toml's Unmarshaler
// interface; data is the already-decoded TOML value (string, table as
// map[string]any, int64/float64, or []any).
func (v *Value) UnmarshalTOML(data any) error {
	switch t := data.(type) {
	case string:
		if strings.HasPrefix(t, "#") {
			v.Kind = ValueHex
			v.Hex = t
		} else {
			v.Kind = ValuePath
			v.Path = t
		}

	case map[string]any:
		inline, err := decodeInlineBitmap(t)
		if err != nil {
			return err
		}
		v.Kind = ValueInline
		v.Inline = inline

	case int64:
		v.Kind = ValueScalar
		v.Scalar = []float64{float64(t)}

	case float64:
		v.Kind = ValueScalar
		v.Scalar = []float64{t}

	case []any:
		scalars := make([]float64, 0, len(t))
		for _, elem := range t {
			f, err := toFloat(elem)
			if err != nil {
				return fmt.Errorf("%w: material value array element: %v", errs.ErrConfig, err)
			}
			scalars = append(scalars, f)
		}
		v.Kind = ValueScalar
		v.Scalar = scalars

	default:
		return fmt.Errorf("%w: unsupported material value shape %T", errs.ErrConfig, data)
	}

	return nil
}

func toFloat(v any) (float64, error) {
	switch t := v.(type) {
	case int64:
		return float64(t), nil
	case float64:
		return t, nil
	default:
		return 0, fmt.Errorf("expected a number, got %T", v)
	}
}

// decodeInlineBitmap re-interprets a TOML table already decoded to
// map[string]any as a BitmapDoc, covering the fields an inline bitmap table
// may declare (spec §4.3's "inline bitmap table" shape).
func decodeInlineBitmap(m map[string]any) (*BitmapDoc, error) {
	doc := &BitmapDoc{}

	if src, ok := m["src"].(string); ok {
		doc.Src = src
	}
	if resize, ok := m["resize"].(int64); ok {
		doc.Resize = int(resize)
	}
	if swizzle, ok := m["swizzle"].(string); ok {
		doc.Swizzle = swizzle
	}
	if cs, ok := m["color-space"].(string); ok {
		doc.ColorSpace = cs
	}
	if mips, ok := m["mip-levels"]; ok {
		if err := doc.MipLevels.UnmarshalTOML(mips); err != nil {
			return nil, err
		}
	}

	return doc, nil
}
