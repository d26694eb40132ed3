package model

import "github.com/forgekit/forge/format"

// Bitmap is the canonical baked form of an image: tightly-packed mip levels
// in decreasing size, in a single contiguous pixel buffer (spec §3.2).
type Bitmap struct {
	Width      int
	Height     int
	Channels   int
	ColorSpace format.ColorSpace
	MipCount   int
	Pixels     []byte
}

// MipDimensions returns the width and height of mip level i (0 = full size),
// following max(1, floor(dim/2^i)) per level (spec §3.3, §9).
func (b *Bitmap) MipDimensions(i int) (width, height int) {
	width = b.Width >> i
	if width < 1 {
		width = 1
	}
	height = b.Height >> i
	if height < 1 {
		height = 1
	}

	return width, height
}

// ExpectedPixelLen returns the total byte length the pixel buffer must have
// given Width, Height, Channels and MipCount: the sum over mip levels of
// width_i * height_i * channels (spec §3.3).
func (b *Bitmap) ExpectedPixelLen() int {
	total := 0
	for i := 0; i < b.MipCount; i++ {
		w, h := b.MipDimensions(i)
		total += w * h * b.Channels
	}

	return total
}
