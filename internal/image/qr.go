package imagepkg

import (
	"bytes"
	"image/png"

	qrcode "github.com/skip2/go-qrcode"
)

// Bounds for share QR codes.
const (
	DefaultQRSize = 256
	minQRSize     = 64
	maxQRSize     = 1024
)

// GenerateQRPNG returns PNG bytes of a QR code for the given text.
// Out-of-range sizes fall back to the nearest bound.
func GenerateQRPNG(text string, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultQRSize
	}
	size = clamp(size, minQRSize, maxQRSize)
	pngBytes, err := qrcode.Encode(text, qrcode.Medium, size)
	if err != nil {
		return nil, err
	}
	// validate png decode
	if _, err := png.DecodeConfig(bytes.NewReader(pngBytes)); err != nil {
		return nil, err
	}
	return pngBytes, nil
}
