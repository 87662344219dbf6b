package service

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

const baseDir = "statics"

// QRPayload is the string students scan. The token alone identifies the
// session; the base url lets phone cameras open the scan page directly.
func QRPayload(baseUrl, token string) string {
	return fmt.Sprintf("%s/api/v1/attendance/scan?token=%s", baseUrl, token)
}

// GenerateQRPNG renders the session token as a PNG, medium error
// correction, sized for a projector slide.
func GenerateQRPNG(baseUrl, token string, size int) ([]byte, error) {
	if size <= 0 {
		size = 512
	}
	png, err := qrcode.Encode(QRPayload(baseUrl, token), qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encoding qr: %w", err)
	}
	return png, nil
}
