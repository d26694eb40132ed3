package model

// BitmapFont is the canonical baked form of an AngelCode bitmap font: the
// raw definition bytes verbatim, plus an ordered list of BlobIDs for its
// page Bitmaps (spec §3.2).
type BitmapFont struct {
	Definition []byte
	Pages      []BlobID
}

// Encode serializes a BitmapFont to its canonical byte form.
func (f *BitmapFont) Encode() []byte {
	e := newEncoder()
	e.bytes(f.Definition)

	ids := make([]uint32, len(f.Pages))
	for i, id := range f.Pages {
		ids[i] = uint32(id)
	}
	e.u32s(ids)

	return e.Bytes()
}

// DecodeBitmapFont parses a BitmapFont from bytes produced by Encode.
func DecodeBitmapFont(data []byte) (*BitmapFont, error) {
	d := newDecoder(data)

	def, err := d.bytes()
	if err != nil {
		return nil, err
	}
	ids, err := d.u32s()
	if err != nil {
		return nil, err
	}

	pages := make([]BlobID, len(ids))
	for i, id := range ids {
		pages[i] = BlobID(id)
	}

	return &BitmapFont{Definition: def, Pages: pages}, nil
}
