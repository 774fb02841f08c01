package utils

import (
	"fmt"
	"image"
	"strings"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/oned"
	"github.com/makiuchi-d/gozxing/qrcode"
)

// OTMS prints the tour system number as a Code128 barcode; older approvals use
// Code39 and some scans carry a QR code instead.
var barcodeReaders = []struct {
	name   string
	reader func() gozxing.Reader
}{
	{"code128", oned.NewCode128Reader},
	{"code39", oned.NewCode39Reader},
	{"qr", qrcode.NewQRCodeReader},
}

// DecodeBarcode returns the text of the first barcode found in img.
func DecodeBarcode(img image.Image) (string, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", fmt.Errorf("failed to create binary bitmap: %w", err)
	}

	hints := map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_TRY_HARDER: true,
	}

	var lastErr error
	for _, br := range barcodeReaders {
		result, err := br.reader().Decode(bmp, hints)
		if err != nil {
			lastErr = err
			continue
		}
		if text := strings.TrimSpace(result.GetText()); text != "" {
			return text, nil
		}
	}

	return "", fmt.Errorf("no barcode found: %w", lastErr)
}

// SystemNoFromBarcode keeps only barcode payloads that look like an OTMS system number.
func SystemNoFromBarcode(text string) string {
	return longDigitRunRegex.FindString(text)
}
