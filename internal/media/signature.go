package media

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image/png"
	"strings"
)

// ErrInvalidSignature is returned when the signature capture is not a PNG image.
var ErrInvalidSignature = errors.New("signature must be a PNG image")

const dataURLPrefix = "data:image/png;base64,"

// DecodeSignature accepts the drawing canvas output, either raw PNG bytes or
// a base64 PNG data URL, and returns the PNG bytes.
func DecodeSignature(raw []byte) ([]byte, error) {
	data := raw
	if s := strings.TrimSpace(string(raw)); strings.HasPrefix(s, "data:") {
		if !strings.HasPrefix(s, dataURLPrefix) {
			return nil, ErrInvalidSignature
		}
		decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(s, dataURLPrefix))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
		}
		data = decoded
	}
	if _, err := png.DecodeConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	return data, nil
}
