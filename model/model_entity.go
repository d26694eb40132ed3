package model

// ModelPart pairs one mesh blob with the ordered list of material blobs its
// parts are mapped to, by part index (spec §3.2, §4.7).
type ModelPart struct {
	Mesh      BlobID
	Materials []BlobID
}

// Model is an ordered list of (mesh, materials) convenience groupings (spec
// §3.2).
type Model struct {
	Parts []ModelPart
}

// Encode serializes a Model to its canonical byte form.
func (m *Model) Encode() []byte {
	e := newEncoder()
	e.u32(uint32(len(m.Parts)))
	for _, p := range m.Parts {
		e.u32(uint32(p.Mesh))

		ids := make([]uint32, len(p.Materials))
		for i, id := range p.Materials {
			ids[i] = uint32(id)
		}
		e.u32s(ids)
	}

	return e.Bytes()
}

// DecodeModel parses a Model from bytes produced by Encode.
func DecodeModel(data []byte) (*Model, error) {
	d := newDecoder(data)

	count, err := d.u32()
	if err != nil {
		return nil, err
	}

	parts := make([]ModelPart, count)
	for i := range parts {
		meshID, err := d.u32()
		if err != nil {
			return nil, err
		}
		matIDs, err := d.u32s()
		if err != nil {
			return nil, err
		}

		materials := make([]BlobID, len(matIDs))
		for j, id := range matIDs {
			materials[j] = BlobID(id)
		}

		parts[i] = ModelPart{Mesh: BlobID(meshID), Materials: materials}
	}

	return &Model{Parts: parts}, nil
}
