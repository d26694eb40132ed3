package model

import "github.com/forgekit/forge/format"

// Encode serializes a Bitmap to its canonical byte form: channels, color
// space, width, height, mip count, then the length-prefixed pixel buffer.
func (b *Bitmap) Encode() []byte {
	e := newEncoder()
	e.u8(uint8(b.Channels))
	e.u8(uint8(b.ColorSpace))
	e.u32(uint32(b.Width))
	e.u32(uint32(b.Height))
	e.u32(uint32(b.MipCount))
	e.bytes(b.Pixels)

	return e.Bytes()
}

// DecodeBitmap parses a Bitmap from bytes produced by Encode.
func DecodeBitmap(data []byte) (*Bitmap, error) {
	d := newDecoder(data)

	channels, err := d.u8()
	if err != nil {
		return nil, err
	}
	colorSpace, err := d.u8()
	if err != nil {
		return nil, err
	}
	width, err := d.u32()
	if err != nil {
		return nil, err
	}
	height, err := d.u32()
	if err != nil {
		return nil, err
	}
	mipCount, err := d.u32()
	if err != nil {
		return nil, err
	}
	pixels, err := d.bytes()
	if err != nil {
		return nil, err
	}

	return &Bitmap{
		Width:      int(width),
		Height:     int(height),
		Channels:   int(channels),
		ColorSpace: format.ColorSpace(colorSpace),
		MipCount:   int(mipCount),
		Pixels:     pixels,
	}, nil
}

// BitmapMetadata is the light, pre-decompression metadata stored in a
// Bitmap's manifest entry so callers can pre-allocate before reading the
// full blob (spec §4.2, §4.9).
type BitmapMetadata struct {
	Width    int
	Height   int
	Channels int
	MipCount int
}

// EncodeMetadata serializes the manifest-entry metadata for a Bitmap.
func (b *Bitmap) EncodeMetadata() []byte {
	e := newEncoder()
	e.u32(uint32(b.Width))
	e.u32(uint32(b.Height))
	e.u8(uint8(b.Channels))
	e.u32(uint32(b.MipCount))

	return e.Bytes()
}

// DecodeBitmapMetadata parses a BitmapMetadata from a manifest entry's
// metadata bytes.
func DecodeBitmapMetadata(data []byte) (BitmapMetadata, error) {
	d := newDecoder(data)

	width, err := d.u32()
	if err != nil {
		return BitmapMetadata{}, err
	}
	height, err := d.u32()
	if err != nil {
		return BitmapMetadata{}, err
	}
	channels, err := d.u8()
	if err != nil {
		return BitmapMetadata{}, err
	}
	mipCount, err := d.u32()
	if err != nil {
		return BitmapMetadata{}, err
	}

	return BitmapMetadata{
		Width:    int(width),
		Height:   int(height),
		Channels: int(channels),
		MipCount: int(mipCount),
	}, nil
}
