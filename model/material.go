package model

import "github.com/forgekit/forge/format"

// MaterialSlot identifies one of the fixed PBR parameter slots (spec §3.2).
type MaterialSlot uint8

const (
	SlotColor        MaterialSlot = 0
	SlotNormal       MaterialSlot = 1
	SlotMetal        MaterialSlot = 2
	SlotRough        MaterialSlot = 3
	SlotDisplacement MaterialSlot = 4
	SlotEmissive     MaterialSlot = 5
)

// AllMaterialSlots lists every slot in fixed order, used when iterating a
// Material's Slots map deterministically.
var AllMaterialSlots = []MaterialSlot{
	SlotColor, SlotNormal, SlotMetal, SlotRough, SlotDisplacement, SlotEmissive,
}

func (s MaterialSlot) String() string {
	switch s {
	case SlotColor:
		return "color"
	case SlotNormal:
		return "normal"
	case SlotMetal:
		return "metal"
	case SlotRough:
		return "rough"
	case SlotDisplacement:
		return "displacement"
	case SlotEmissive:
		return "emissive"
	default:
		return "unknown"
	}
}

// MaterialValue is the resolved value of one material slot: none, a constant
// scalar/vector, or a reference to a baked Bitmap (spec §3.2).
type MaterialValue struct {
	Kind     format.MaterialValueKind
	Constant []float32 // 1-4 components, meaningful when Kind == MaterialValueConstant
	Bitmap   BlobID    // meaningful when Kind == MaterialValueBitmap
}

// Material is the canonical baked form of a PBR material (spec §3.2).
type Material struct {
	Slots       map[MaterialSlot]MaterialValue
	DoubleSided bool
}
