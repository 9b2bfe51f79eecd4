// Package attachment prepares message file payloads before they are sent
// through the gateway.
package attachment

import (
	"errors"
	"fmt"

	"github.com/gabriel-vasile/mimetype"
)

// MaxFileSize is the platform's cap on message attachments.
const MaxFileSize = 5 << 20

var allowedPrefixes = []string{"image/", "text/", "application/pdf"}

// Attachment errors.
var (
	ErrTooLarge        = errors.New("attachment exceeds the size limit")
	ErrUnsupportedType = errors.New("attachment type is not allowed")
)

// File is a validated attachment ready to be placed on a message.
type File struct {
	Name string
	Data []byte
	MIME string
}

// Prepare validates the raw bytes and sniffs their real content type; the
// file name's extension is never trusted.
func Prepare(name string, data []byte) (File, error) {
	if len(data) > MaxFileSize {
		return File{}, fmt.Errorf("%w: %d bytes", ErrTooLarge, len(data))
	}

	mime := mimetype.Detect(data)
	if !allowed(mime.String()) {
		return File{}, fmt.Errorf("%w: %s", ErrUnsupportedType, mime.String())
	}

	return File{Name: name, Data: data, MIME: mime.String()}, nil
}

func allowed(mime string) bool {
	for _, prefix := range allowedPrefixes {
		if len(mime) >= len(prefix) && mime[:len(prefix)] == prefix {
			return true
		}
	}
	return false
}
