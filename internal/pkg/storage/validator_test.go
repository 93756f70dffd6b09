package storage

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"strings"
	"testing"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func TestValidateFile(t *testing.T) {
	t.Parallel()

	const limit = 64

	tests := []struct {
		name     string
		data     []byte
		declared string
		wantErr  error
		wantMime string
	}{
		{name: "jpeg accepted", data: []byte("jpeg-bytes"), declared: "image/jpeg", wantMime: "image/jpeg"},
		{name: "jpg alias folded", data: []byte("jpeg-bytes"), declared: "image/jpg", wantMime: "image/jpeg"},
		{name: "gif accepted", data: []byte("gif"), declared: "image/gif", wantMime: "image/gif"},
		{name: "webp with params", data: []byte("webp"), declared: "image/webp; q=1", wantMime: "image/webp"},
		{name: "exactly at limit", data: bytes.Repeat([]byte{1}, limit), declared: "image/png", wantMime: "image/png"},
		{name: "one byte over limit", data: bytes.Repeat([]byte{1}, limit+1), declared: "image/png", wantErr: ErrFileTooLarge},
		{name: "text rejected", data: []byte("hi"), declared: "text/plain", wantErr: ErrInvalidMimeType},
		{name: "svg rejected", data: []byte("<svg/>"), declared: "image/svg+xml", wantErr: ErrInvalidMimeType},
		{name: "empty", data: nil, declared: "image/png", wantErr: ErrEmptyFile},
		{name: "octet-stream text sniffed and rejected", data: []byte("plain words"), declared: "application/octet-stream", wantErr: ErrInvalidMimeType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := ValidateFile(bytes.NewReader(tt.data), tt.declared, limit)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if f.MimeType != tt.wantMime {
				t.Fatalf("mime = %q, want %q", f.MimeType, tt.wantMime)
			}
			if f.Size() != int64(len(tt.data)) {
				t.Fatalf("size = %d, want %d", f.Size(), len(tt.data))
			}
		})
	}
}

func TestValidateFileSniffsUndeclaredType(t *testing.T) {
	t.Parallel()

	data := pngBytes(t)
	f, err := ValidateFile(bytes.NewReader(data), "", DefaultMaxFileSize)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.MimeType != "image/png" {
		t.Fatalf("mime = %q, want image/png", f.MimeType)
	}
}

func TestValidateFileRejectsBadTypeWithoutReading(t *testing.T) {
	t.Parallel()

	r := strings.NewReader("content")
	if _, err := ValidateFile(r, "application/pdf", DefaultMaxFileSize); !errors.Is(err, ErrInvalidMimeType) {
		t.Fatalf("expected ErrInvalidMimeType, got %v", err)
	}
	if r.Len() != len("content") {
		t.Fatal("reader should not be consumed when the declared type is rejected")
	}
}
