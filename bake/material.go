package bake

import (
	"fmt"

	"github.com/forgekit/forge/errs"
	"github.com/forgekit/forge/format"
	"github.com/forgekit/forge/model"
	"github.com/forgekit/forge/sourcecfg"
)

// BlobLookup resolves a work item's Ref slot (e.g. "color", "metal") to the
// BlobID the referenced bitmap was already assigned when it baked, since
// dependency ordering guarantees a material's bitmap refs bake first (spec
// §4.4, §4.7).
type BlobLookup func(slot string) (model.BlobID, bool)

var slotFields = map[model.MaterialSlot]func(*sourcecfg.MaterialDoc) sourcecfg.Value{
	model.SlotColor:        func(d *sourcecfg.MaterialDoc) sourcecfg.Value { return d.Color },
	model.SlotNormal:       func(d *sourcecfg.MaterialDoc) sourcecfg.Value { return d.Normal },
	model.SlotMetal:        func(d *sourcecfg.MaterialDoc) sourcecfg.Value { return d.Metal },
	model.SlotRough:        func(d *sourcecfg.MaterialDoc) sourcecfg.Value { return d.Rough },
	model.SlotDisplacement: func(d *sourcecfg.MaterialDoc) sourcecfg.Value { return d.Displacement },
	model.SlotEmissive:     func(d *sourcecfg.MaterialDoc) sourcecfg.Value { return d.Emissive },
}

// Material bakes a material document into its canonical form per spec
// §4.7/§9: each PBR slot's polymorphic Value is resolved to either a
// constant or a bitmap BlobID reference, using lookup to map a slot's bitmap
// ref (resolved by the dependency graph) to its already-assigned BlobID.
func Material(doc *sourcecfg.MaterialDoc, lookup BlobLookup) (*model.Material, error) {
	slots := make(map[model.MaterialSlot]model.MaterialValue, len(slotFields))

	for _, slot := range model.AllMaterialSlots {
		value := slotFields[slot](doc)
		resolved, err := resolveMaterialValue(slot, value, lookup)
		if err != nil {
			return nil, err
		}
		if resolved.Kind != format.MaterialValueNone {
			slots[slot] = resolved
		}
	}

	return &model.Material{Slots: slots, DoubleSided: doc.DoubleSided}, nil
}

func resolveMaterialValue(slot model.MaterialSlot, v sourcecfg.Value, lookup BlobLookup) (model.MaterialValue, error) {
	switch v.Kind {
	case sourcecfg.ValueNone:
		return model.MaterialValue{Kind: format.MaterialValueNone}, nil

	case sourcecfg.ValueHex:
		constant, err := parseHexColor(v.Hex)
		if err != nil {
			return model.MaterialValue{}, fmt.Errorf("%w: material slot %q: %v", errs.ErrConfig, slot, err)
		}
		return model.MaterialValue{Kind: format.MaterialValueConstant, Constant: constant}, nil

	case sourcecfg.ValueScalar:
		return model.MaterialValue{Kind: format.MaterialValueConstant, Constant: toFloat32s(v.Scalar)}, nil

	case sourcecfg.ValuePath, sourcecfg.ValueInline:
		blob, ok := lookup(slot.String())
		if !ok {
			return model.MaterialValue{}, fmt.Errorf("%w: material slot %q: bitmap reference not resolved", errs.ErrPipeline, slot)
		}
		return model.MaterialValue{Kind: format.MaterialValueBitmap, Bitmap: blob}, nil

	default:
		return model.MaterialValue{}, fmt.Errorf("%w: material slot %q has unrecognized value kind", errs.ErrConfig, slot)
	}
}

// parseHexColor parses a "#RGB", "#RGBA", "#RRGGBB" or "#RRGGBBAA" literal
// into a 3- or 4-component float constant in [0,1] (spec §4.3, §9).
func parseHexColor(hex string) ([]float32, error) {
	if len(hex) == 0 || hex[0] != '#' {
		return nil, fmt.Errorf("hex color %q must start with '#'", hex)
	}
	body := hex[1:]

	var expand string
	switch len(body) {
	case 3, 4:
		expand = ""
		for _, c := range body {
			expand += string(c) + string(c)
		}
		body = expand
	case 6, 8:
		// already full width
	default:
		return nil, fmt.Errorf("hex color %q must have 3, 4, 6 or 8 hex digits", hex)
	}

	components := len(body) / 2
	out := make([]float32, components)
	for i := 0; i < components; i++ {
		var b int
		if _, err := fmt.Sscanf(body[i*2:i*2+2], "%02x", &b); err != nil {
			return nil, fmt.Errorf("hex color %q has invalid digit: %v", hex, err)
		}
		out[i] = float32(b) / 255.0
	}

	return out, nil
}

func toFloat32s(in []float64) []float32 {
	out := make([]float32, len(in))
	for i, v := range in {
		out[i] = float32(v)
	}
	return out
}
