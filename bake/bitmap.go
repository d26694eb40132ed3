package bake

import (
	"fmt"
	"image"
	stddraw "image/draw"
	"math"
	"strings"

	"golang.org/x/image/draw"

	"github.com/forgekit/forge/errs"
	"github.com/forgekit/forge/format"
	"github.com/forgekit/forge/model"
	"github.com/forgekit/forge/sourcecfg"
)

// Bitmap bakes a decoded source image into its canonical form per spec §4.5:
// resize, swizzle, color-space tagging, and mip chain generation, in that
// order.
func Bitmap(src image.Image, doc *sourcecfg.BitmapDoc) (*model.Bitmap, error) {
	resized := resizeImage(src, doc.Resize)

	swizzleStr := doc.Swizzle
	if swizzleStr == "" {
		swizzleStr = "rgba"
	}
	channels, err := parseSwizzle(swizzleStr)
	if err != nil {
		return nil, err
	}
	alphaIndex := strings.IndexByte(swizzleStr, 'a')

	colorSpace, err := parseColorSpace(doc.ColorSpace)
	if err != nil {
		return nil, err
	}

	width := resized.Bounds().Dx()
	height := resized.Bounds().Dy()
	level0 := swizzlePixels(resized, channels)

	mipCount := mipCountFor(doc.MipLevels, width, height)
	pixels := buildMipChain(level0, width, height, len(channels), mipCount, colorSpace == format.ColorSpaceSRGB, alphaIndex)

	return &model.Bitmap{
		Width:      width,
		Height:     height,
		Channels:   len(channels),
		ColorSpace: colorSpace,
		MipCount:   mipCount,
		Pixels:     pixels,
	}, nil
}

// resizeImage applies spec §4.5 step 1: a uniform scale so the longest side
// is at most maxDim, area-average for downscale, Catmull-Rom for upscale.
// maxDim <= 0 means no resize.
func resizeImage(src image.Image, maxDim int) image.Image {
	if maxDim <= 0 {
		return src
	}

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	longest := w
	if h > longest {
		longest = h
	}
	if longest <= maxDim {
		return src
	}

	scale := float64(maxDim) / float64(longest)
	dw := int(math.Round(float64(w) * scale))
	dh := int(math.Round(float64(h) * scale))
	if dw < 1 {
		dw = 1
	}
	if dh < 1 {
		dh = 1
	}

	if scale >= 1 {
		dst := image.NewNRGBA(image.Rect(0, 0, dw, dh))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
		return dst
	}

	return boxDownscale(src, dw, dh)
}

// boxDownscale is a hand-rolled area-average resampler: x/image/draw has no
// dedicated area-average scaler, and the spec requires area-average on
// downscale specifically (§4.5 step 1).
func boxDownscale(src image.Image, dw, dh int) image.Image {
	b := src.Bounds()
	sw, sh := b.Dx(), b.Dy()
	dst := image.NewNRGBA64(image.Rect(0, 0, dw, dh))

	for y := 0; y < dh; y++ {
		sy0 := y * sh / dh
		sy1 := (y + 1) * sh / dh
		if sy1 <= sy0 {
			sy1 = sy0 + 1
		}
		for x := 0; x < dw; x++ {
			sx0 := x * sw / dw
			sx1 := (x + 1) * sw / dw
			if sx1 <= sx0 {
				sx1 = sx0 + 1
			}

			var r, g, bl, a, n uint64
			for sy := sy0; sy < sy1 && sy < sh; sy++ {
				for sx := sx0; sx < sx1 && sx < sw; sx++ {
					cr, cg, cb, ca := src.At(b.Min.X+sx, b.Min.Y+sy).RGBA()
					r += uint64(cr)
					g += uint64(cg)
					bl += uint64(cb)
					a += uint64(ca)
					n++
				}
			}
			if n == 0 {
				n = 1
			}

			idx := dst.PixOffset(x, y)
			putNRGBA64(dst.Pix[idx:idx+8], uint16(r/n), uint16(g/n), uint16(bl/n), uint16(a/n))
		}
	}

	return dst
}

func putNRGBA64(pix []byte, r, g, b, a uint16) {
	pix[0], pix[1] = byte(r>>8), byte(r)
	pix[2], pix[3] = byte(g>>8), byte(g)
	pix[4], pix[5] = byte(b>>8), byte(b)
	pix[6], pix[7] = byte(a>>8), byte(a)
}

// parseSwizzle validates and maps a swizzle string (spec §4.5 step 2,
// `[rgba]{1,4}`) to source channel indices (R=0, G=1, B=2, A=3).
func parseSwizzle(s string) ([]int, error) {
	if len(s) < 1 || len(s) > 4 {
		return nil, fmt.Errorf("%w: swizzle %q must have 1-4 channels", errs.ErrPipeline, s)
	}

	channels := make([]int, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case 'r':
			channels[i] = 0
		case 'g':
			channels[i] = 1
		case 'b':
			channels[i] = 2
		case 'a':
			channels[i] = 3
		default:
			return nil, fmt.Errorf("%w: swizzle %q has unrecognized channel %q", errs.ErrPipeline, s, string(s[i]))
		}
	}

	return channels, nil
}

// swizzlePixels converts img to 8-bit NRGBA and remaps its channels per
// spec §4.5 step 2; the output channel count equals len(channels).
func swizzlePixels(img image.Image, channels []int) []byte {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	nrgba, ok := img.(*image.NRGBA)
	if !ok {
		converted := image.NewNRGBA(b)
		stddraw.Draw(converted, b, img, b.Min, stddraw.Src)
		nrgba = converted
	}

	out := make([]byte, 0, w*h*len(channels))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			px := nrgba.NRGBAAt(b.Min.X+x, b.Min.Y+y)
			src := [4]byte{px.R, px.G, px.B, px.A}
			for _, c := range channels {
				out = append(out, src[c])
			}
		}
	}

	return out
}

func parseColorSpace(s string) (format.ColorSpace, error) {
	switch s {
	case "", "linear":
		return format.ColorSpaceLinear, nil
	case "srgb":
		return format.ColorSpaceSRGB, nil
	default:
		return 0, fmt.Errorf("%w: unknown color-space %q", errs.ErrConfig, s)
	}
}

// mipCountFor implements spec §4.5 step 4's mip-levels dispatch.
func mipCountFor(ml sourcecfg.MipLevels, w, h int) int {
	full := fullChainLen(w, h)

	switch ml.Kind {
	case sourcecfg.MipLevelsFull:
		return full
	case sourcecfg.MipLevelsCount:
		n := ml.Count
		if n < 1 {
			n = 1
		}
		if n > full {
			n = full
		}
		return n
	default:
		return 1
	}
}

func fullChainLen(w, h int) int {
	n := 1
	for w > 1 || h > 1 {
		if w > 1 {
			w >>= 1
		}
		if h > 1 {
			h >>= 1
		}
		n++
	}
	return n
}

// buildMipChain concatenates level0 with mipCount-1 successive 2x box-filter
// downscales, gamma-aware when gammaAware is set (spec §4.5 step 4): pixels
// are linearized before averaging and re-encoded after, except the alpha
// channel (alphaIndex, or -1 if there is none).
func buildMipChain(level0 []byte, w, h, channels, mipCount int, gammaAware bool, alphaIndex int) []byte {
	out := make([]byte, 0, len(level0)*2)
	out = append(out, level0...)

	prev, pw, ph := level0, w, h
	for i := 1; i < mipCount; i++ {
		nw := pw >> 1
		if nw < 1 {
			nw = 1
		}
		nh := ph >> 1
		if nh < 1 {
			nh = 1
		}

		next := downscaleMip(prev, pw, ph, nw, nh, channels, gammaAware, alphaIndex)
		out = append(out, next...)

		prev, pw, ph = next, nw, nh
	}

	return out
}

func downscaleMip(src []byte, sw, sh, dw, dh, channels int, gammaAware bool, alphaIndex int) []byte {
	out := make([]byte, dw*dh*channels)

	for y := 0; y < dh; y++ {
		ys := sampleCoords(y, sh, dh)
		for x := 0; x < dw; x++ {
			xs := sampleCoords(x, sw, dw)

			for c := 0; c < channels; c++ {
				gamma := gammaAware && c != alphaIndex
				out[(y*dw+x)*channels+c] = averageTexel(src, sw, channels, c, xs, ys, gamma)
			}
		}
	}

	return out
}

// sampleCoords returns the 1 or 2 source coordinates along one axis that
// contribute to destination index d, for a 2x downscale of a possibly-odd
// source dimension.
func sampleCoords(d, srcDim, dstDim int) []int {
	s0 := d * 2
	if s0 >= srcDim {
		s0 = srcDim - 1
	}
	s1 := s0 + 1
	if s1 >= srcDim {
		return []int{s0}
	}
	return []int{s0, s1}
}

func averageTexel(src []byte, sw, channels, c int, xs, ys []int, gamma bool) byte {
	var sum float64
	for _, sy := range ys {
		for _, sx := range xs {
			idx := (sy*sw+sx)*channels + c
			v := float64(src[idx]) / 255.0
			if gamma {
				v = math.Pow(v, 2.2)
			}
			sum += v
		}
	}

	avg := sum / float64(len(xs)*len(ys))
	if gamma {
		avg = math.Pow(avg, 1.0/2.2)
	}

	result := avg*255.0 + 0.5
	switch {
	case result > 255:
		result = 255
	case result < 0:
		result = 0
	}

	return byte(result)
}
