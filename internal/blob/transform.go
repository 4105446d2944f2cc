package blob

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	_ "image/gif"
	_ "image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// Upload normalization bounds. Larger images are scaled down to fit,
// preserving aspect ratio; smaller images keep their dimensions.
const (
	maxWidth  = 1200
	maxHeight = 800

	jpegQuality = 80
)

// Normalize bounds an uploaded image to maxWidth x maxHeight and
// re-encodes it as jpeg. On failure the original bytes come back with the
// error so callers can decide to store them unchanged.
func Normalize(data []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return data, fmt.Errorf("decode image: %w", err)
	}

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w > maxWidth || h > maxHeight {
		scale := float64(maxWidth) / float64(w)
		if s := float64(maxHeight) / float64(h); s < scale {
			scale = s
		}
		dw, dh := int(float64(w)*scale), int(float64(h)*scale)
		if dw < 1 {
			dw = 1
		}
		if dh < 1 {
			dh = 1
		}
		dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
		src = dst
	}

	var out bytes.Buffer
	if err := jpeg.Encode(&out, src, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return data, fmt.Errorf("encode jpeg: %w", err)
	}
	return out.Bytes(), nil
}
