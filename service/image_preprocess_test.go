package service

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrepareForOCRUpscales(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 400, 200))
	for x := 0; x < 400; x++ {
		src.Set(x, 100, color.Black)
	}

	out, err := PrepareForOCR(src)
	require.NoError(t, err)

	decoded, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, ocrMinWidth, decoded.Bounds().Dx())
	assert.Equal(t, 800, decoded.Bounds().Dy())
}

func TestPrepareForOCREmptyImage(t *testing.T) {
	_, err := PrepareForOCR(image.NewRGBA(image.Rect(0, 0, 0, 0)))
	assert.Error(t, err)
}
