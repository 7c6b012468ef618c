package storage

import (
	"bytes"
	"encoding/base64"
	"testing"
)

func TestParseDataURL(t *testing.T) {
	payload := []byte{0x89, 'P', 'N', 'G'}
	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(payload)

	contentType, data, err := ParseDataURL(dataURL)
	if err != nil {
		t.Fatalf("ParseDataURL() error: %v", err)
	}
	if contentType != "image/png" {
		t.Errorf("contentType = %q, want image/png", contentType)
	}
	if !bytes.Equal(data, payload) {
		t.Errorf("data = %v, want %v", data, payload)
	}
}

func TestParseDataURL_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"plain url", "https://example.com/image.png"},
		{"missing payload", "data:image/png;base64"},
		{"not base64 encoded", "data:image/png,rawbytes"},
		{"bad base64", "data:image/png;base64,!!!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := ParseDataURL(tt.input); err == nil {
				t.Errorf("ParseDataURL(%q) succeeded, want error", tt.input)
			}
		})
	}
}

func TestExtensionForContentType(t *testing.T) {
	if got := ExtensionForContentType("image/jpeg"); got != ".jpg" {
		t.Errorf("jpeg extension = %q, want .jpg", got)
	}
	if got := ExtensionForContentType("application/pdf"); got != "" {
		t.Errorf("unknown type extension = %q, want empty", got)
	}
}
