// file: services/qrcode_service.go
package services

import (
	"errors"
	"net/url"
	"strings"

	"github.com/skip2/go-qrcode"
)

// QRCodeEncoder matches qrcode.Encode so tests can swap it out.
type QRCodeEncoder func(content string, level qrcode.RecoveryLevel, size int) ([]byte, error)

// GenerateQRCode renders content as a square PNG of size pixels.
func GenerateQRCode(content string, size int, encoder QRCodeEncoder) ([]byte, error) {
	if size <= 0 {
		return nil, errors.New("invalid size: must be positive")
	}
	if strings.TrimSpace(content) == "" {
		return nil, errors.New("invalid content: must not be empty")
	}
	png, err := encoder(content, qrcode.Medium, size)
	if err != nil {
		return nil, err
	}
	return png, nil
}

// CheckInLink is the deep link the mobile app opens to check in to an event.
func CheckInLink(base, eventID string) string {
	return strings.TrimRight(base, "/") + "/" + url.PathEscape(eventID) + "/check-in"
}
