package storage

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var (
	ErrFileTooLarge    = errors.New("file exceeds maximum size")
	ErrInvalidMimeType = errors.New("file type not allowed")
	ErrEmptyFile       = errors.New("file is empty")
)

// AllowedMimeTypes lists the image types accepted at intake
var AllowedMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// DefaultMaxFileSize in bytes (5MB)
const DefaultMaxFileSize int64 = 5 * 1024 * 1024

// ValidatedFile is an accepted upload held in memory until it is stored
type ValidatedFile struct {
	Data     []byte
	MimeType string
}

// Size returns the byte count of the accepted file
func (f *ValidatedFile) Size() int64 {
	return int64(len(f.Data))
}

// ValidateFile checks the declared MIME type against AllowedMimeTypes and reads at
// most maxSize+1 bytes to detect oversized files. When the client did not declare a
// usable type the content is sniffed instead.
func ValidateFile(reader io.Reader, declaredType string, maxSize int64) (*ValidatedFile, error) {
	mimeType := NormalizeMimeType(declaredType)
	sniff := mimeType == "" || mimeType == "application/octet-stream"

	if !sniff && !AllowedMimeTypes[mimeType] {
		return nil, fmt.Errorf("%w: %s", ErrInvalidMimeType, mimeType)
	}

	data, err := io.ReadAll(io.LimitReader(reader, maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	if len(data) == 0 {
		return nil, ErrEmptyFile
	}
	if int64(len(data)) > maxSize {
		return nil, ErrFileTooLarge
	}

	if sniff {
		mimeType = NormalizeMimeType(mimetype.Detect(data).String())
		if !AllowedMimeTypes[mimeType] {
			return nil, fmt.Errorf("%w: detected %s", ErrInvalidMimeType, mimeType)
		}
	}

	return &ValidatedFile{Data: data, MimeType: mimeType}, nil
}

// NormalizeMimeType strips parameters, lower-cases, and folds image/jpg into image/jpeg.
func NormalizeMimeType(contentType string) string {
	contentType = strings.TrimSpace(contentType)
	if contentType == "" {
		return ""
	}
	if mt, _, err := mime.ParseMediaType(contentType); err == nil {
		contentType = mt
	} else if idx := strings.Index(contentType, ";"); idx != -1 {
		contentType = contentType[:idx]
	}
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	if contentType == "image/jpg" || contentType == "image/pjpeg" {
		return "image/jpeg"
	}
	return contentType
}
