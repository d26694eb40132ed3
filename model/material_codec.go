package model

import "github.com/forgekit/forge/format"

// Encode serializes a Material to its canonical byte form: slots in
// AllMaterialSlots order (absent slots are skipped, tagged by a presence
// bitmask), then the double-sided flag.
func (m *Material) Encode() []byte {
	e := newEncoder()

	var present uint8
	for i, slot := range AllMaterialSlots {
		if _, ok := m.Slots[slot]; ok {
			present |= 1 << uint(i)
		}
	}
	e.u8(present)

	for _, slot := range AllMaterialSlots {
		v, ok := m.Slots[slot]
		if !ok {
			continue
		}
		e.u8(uint8(v.Kind))
		e.f32s(v.Constant)
		e.u32(uint32(v.Bitmap))
	}

	if m.DoubleSided {
		e.u8(1)
	} else {
		e.u8(0)
	}

	return e.Bytes()
}

// DecodeMaterial parses a Material from bytes produced by Encode.
func DecodeMaterial(data []byte) (*Material, error) {
	d := newDecoder(data)

	present, err := d.u8()
	if err != nil {
		return nil, err
	}

	slots := make(map[MaterialSlot]MaterialValue)
	for i, slot := range AllMaterialSlots {
		if present&(1<<uint(i)) == 0 {
			continue
		}

		kind, err := d.u8()
		if err != nil {
			return nil, err
		}
		constant, err := d.f32s()
		if err != nil {
			return nil, err
		}
		bitmapID, err := d.u32()
		if err != nil {
			return nil, err
		}

		slots[slot] = MaterialValue{
			Kind:     format.MaterialValueKind(kind),
			Constant: constant,
			Bitmap:   BlobID(bitmapID),
		}
	}

	doubleSided, err := d.u8()
	if err != nil {
		return nil, err
	}

	return &Material{Slots: slots, DoubleSided: doubleSided == 1}, nil
}
