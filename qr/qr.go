package qr

import qrcode "github.com/skip2/go-qrcode"

// Render encodes url into a 256x256 PNG with medium error correction.
func Render(url string) ([]byte, error) {
	return qrcode.Encode(url, qrcode.Medium, 256)
}
