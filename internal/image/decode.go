package image

import (
	"bytes"
	"fmt"
	goimage "image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	_ "image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// decodeRaster decodes PNG, GIF, JPEG or WebP bytes into an image.Image.
func decodeRaster(data []byte) (goimage.Image, error) {
	img, _, err := goimage.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("image: decode: %w", err)
	}
	return img, nil
}

// scaleToWidth downscales img to maxWidth pixels, preserving aspect ratio,
// following the teacher's scaleImageIfNeeded (internal/image/terminal.go).
// Images already within maxWidth pass through unchanged.
func scaleToWidth(img goimage.Image, maxWidth int) goimage.Image {
	if maxWidth <= 0 {
		return img
	}
	bounds := img.Bounds()
	width := bounds.Dx()
	if width <= maxWidth {
		return img
	}
	height := bounds.Dy()
	newWidth := maxWidth
	newHeight := (height * maxWidth) / width
	if newHeight < 1 {
		newHeight = 1
	}
	dst := goimage.NewRGBA(goimage.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

func encodePNG(img goimage.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("image: encode png: %w", err)
	}
	return buf.Bytes(), nil
}
