package service

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
)

const (
	ocrMinWidth = 1600
	ocrMaxWidth = 3000
)

// PrepareForOCR normalises a scanned page for Tesseract: upscale small scans,
// cap huge ones, grayscale, then contrast and sharpen. The result is PNG encoded.
func PrepareForOCR(img image.Image) ([]byte, error) {
	width := img.Bounds().Dx()

	switch {
	case width == 0:
		return nil, fmt.Errorf("empty image")
	case width < ocrMinWidth:
		img = imaging.Resize(img, ocrMinWidth, 0, imaging.Lanczos)
	case width > ocrMaxWidth:
		img = imaging.Resize(img, ocrMaxWidth, 0, imaging.Lanczos)
	}

	img = imaging.Grayscale(img)
	img = imaging.AdjustContrast(img, 40)
	img = imaging.Sharpen(img, 2.5)
	img = imaging.AdjustGamma(img, 1.1)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode processed image: %w", err)
	}
	return buf.Bytes(), nil
}
