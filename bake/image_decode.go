package bake

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG decoding with image.Decode
	_ "image/png"  // register PNG decoding with image.Decode
	"io"

	"golang.org/x/image/bmp"

	"github.com/forgekit/forge/errs"
)

// DecodeImage decodes a source bitmap file's bytes using the registered
// image codecs (PNG, JPEG via stdlib; BMP via golang.org/x/image/bmp).
func DecodeImage(r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: read source image: %v", errs.ErrSourceDecode, err)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err == nil {
		return img, nil
	}

	// image.Decode only tries codecs registered via blank import; bmp isn't
	// one of image/png or image/jpeg's formats, so probe it explicitly.
	if img, bmpErr := bmp.Decode(bytes.NewReader(data)); bmpErr == nil {
		return img, nil
	}

	return nil, fmt.Errorf("%w: decode source image (format %q): %v", errs.ErrSourceDecode, format, err)
}
