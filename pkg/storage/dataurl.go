package storage

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// ParseDataURL decodes a "data:<mediatype>;base64,<payload>" string as
// produced by FileReader.readAsDataURL in browsers.
func ParseDataURL(dataURL string) (contentType string, data []byte, err error) {
	if !strings.HasPrefix(dataURL, "data:") {
		return "", nil, fmt.Errorf("not a data URL")
	}

	meta, payload, found := strings.Cut(dataURL[len("data:"):], ",")
	if !found {
		return "", nil, fmt.Errorf("malformed data URL: missing payload")
	}

	if !strings.HasSuffix(meta, ";base64") {
		return "", nil, fmt.Errorf("unsupported data URL encoding: %q", meta)
	}
	contentType = strings.TrimSuffix(meta, ";base64")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode data URL payload: %w", err)
	}

	return contentType, data, nil
}

// ExtensionForContentType maps the image content types the quiz form
// produces to object name extensions.
func ExtensionForContentType(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}
