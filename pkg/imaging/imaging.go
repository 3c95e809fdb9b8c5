package imaging

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
)

// Load reads an image file and fails fast on anything unusable: a missing
// file, an empty file, or bytes that do not look like a supported image.
func Load(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("read image: %s is empty", path)
	}
	if _, err := MediaType(data); err != nil {
		return nil, err
	}
	return data, nil
}

// MediaType sniffs the media type from magic bytes. Only formats the
// multimodal endpoints accept are allowed.
func MediaType(data []byte) (string, error) {
	mt := http.DetectContentType(data)
	switch mt {
	case "image/png", "image/jpeg", "image/gif", "image/webp":
		return mt, nil
	default:
		return "", fmt.Errorf("unsupported media type %s", mt)
	}
}

// DataURL encodes image bytes as a base64 data URL for APIs that take
// images by URL.
func DataURL(data []byte) (string, error) {
	mt, err := MediaType(data)
	if err != nil {
		return "", err
	}
	return "data:" + mt + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
