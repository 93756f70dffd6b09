package upload

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/storefront/imgupload/internal/pkg/logger"
	"github.com/storefront/imgupload/internal/pkg/storage"
)

// ImageProcessor generates derivatives of a stored original
type ImageProcessor interface {
	Thumbnail(ctx context.Context, src, dst, mimeType string) error
	Optimize(ctx context.Context, path, mimeType string) error
}

// Service handles intake and derivative generation
type Service struct {
	layout      *storage.Layout
	processor   ImageProcessor
	maxFileSize int64

	now    func() time.Time
	random func() int64
}

// NewService creates upload service
func NewService(layout *storage.Layout, processor ImageProcessor, maxFileSize int64) *Service {
	if maxFileSize <= 0 {
		maxFileSize = storage.DefaultMaxFileSize
	}
	return &Service{
		layout:      layout,
		processor:   processor,
		maxFileSize: maxFileSize,
		now:         time.Now,
		random:      func() int64 { return rand.Int64N(1_000_000_000) },
	}
}

// MaxFileSize returns the per-file limit enforced at intake
func (s *Service) MaxFileSize() int64 {
	return s.maxFileSize
}

// Store validates one incoming file and writes it to the uploads directory.
// Rejected files are never written.
func (s *Service) Store(ctx context.Context, field, originalName, declaredType string, reader io.Reader) (*UploadedImage, error) {
	file, err := storage.ValidateFile(reader, declaredType, s.maxFileSize)
	if err != nil {
		return nil, fmt.Errorf("validation failed for %q: %w", originalName, err)
	}

	now := s.now()
	filename := GenerateFilename(field, originalName, now, s.random())

	if err := s.layout.Originals.Put(ctx, filename, bytes.NewReader(file.Data)); err != nil {
		return nil, fmt.Errorf("failed to store file: %w", err)
	}

	logger.FromContext(ctx).Info().
		Str("filename", filename).
		Str("original_name", originalName).
		Str("mime_type", file.MimeType).
		Str("size", humanize.IBytes(uint64(file.Size()))).
		Msg("Image stored")

	return &UploadedImage{
		Filename:     filename,
		OriginalName: originalName,
		Size:         file.Size(),
		MimeType:     file.MimeType,
		StoragePath:  s.layout.OriginalPath(filename),
		PublicPath:   s.layout.PublicPath(filename),
		UploadedAt:   now,
	}, nil
}

// Derive generates the requested derivatives for a stored image, thumbnail first.
// A failure is reported as-is; the original stays on disk.
func (s *Service) Derive(ctx context.Context, img *UploadedImage, opts Options) error {
	if opts.Thumbnail {
		dst := s.layout.ThumbnailPath(img.Filename)
		if err := s.processor.Thumbnail(ctx, img.StoragePath, dst, img.MimeType); err != nil {
			return fmt.Errorf("thumbnail for %s: %w", img.Filename, err)
		}
		img.ThumbnailPath = s.layout.PublicThumbnailPath(img.Filename)
	}

	if opts.Optimize {
		if err := s.processor.Optimize(ctx, img.StoragePath, img.MimeType); err != nil {
			return fmt.Errorf("optimize %s: %w", img.Filename, err)
		}
	}

	if opts.Thumbnail || opts.Optimize {
		logger.FromContext(ctx).Debug().
			Str("filename", img.Filename).
			Bool("thumbnail", opts.Thumbnail).
			Bool("optimize", opts.Optimize).
			Msg("Derivatives generated")
	}

	return nil
}

// Discard removes originals stored by a request that was rejected afterwards.
// Failures are logged; the request is already failing.
func (s *Service) Discard(ctx context.Context, images []*UploadedImage) {
	for _, img := range images {
		if err := s.layout.Originals.Delete(ctx, img.Filename); err != nil {
			logger.FromContext(ctx).Error().Err(err).Str("filename", img.Filename).Msg("Failed to discard rejected upload")
			continue
		}
		logger.FromContext(ctx).Debug().Str("filename", img.Filename).Msg("Rejected upload discarded")
	}
}

// GenerateFilename builds <field>-<unix millis>-<random><original extension>.
func GenerateFilename(field, originalName string, now time.Time, random int64) string {
	return fmt.Sprintf("%s-%d-%d%s", field, now.UnixMilli(), random, filepath.Ext(originalName))
}
