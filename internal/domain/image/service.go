package image

import (
	"context"
	"fmt"
	"strings"

	"github.com/storefront/imgupload/internal/pkg/imaging"
	"github.com/storefront/imgupload/internal/pkg/logger"
	"github.com/storefront/imgupload/internal/pkg/storage"
)

// Service reads the catalog and deletes images together with their thumbnails
type Service struct {
	layout *storage.Layout
}

// NewService creates image service
func NewService(layout *storage.Layout) *Service {
	return &Service{layout: layout}
}

// List enumerates the originals in directory order. Thumbnails live in a
// subdirectory (or elsewhere) and are never listed.
func (s *Service) List(ctx context.Context) ([]*Summary, error) {
	files, err := s.layout.Originals.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}

	items := make([]*Summary, 0, len(files))
	for _, f := range files {
		// An optimize in flight leaves a temporary sibling for a moment
		if strings.HasSuffix(f.Key, imaging.OptimizedSuffix) {
			continue
		}
		items = append(items, &Summary{
			Filename:  f.Key,
			Path:      f.URL,
			Size:      f.Size,
			CreatedAt: f.CreatedAt,
		})
	}

	return items, nil
}

// Delete removes the original named filename and, if present, its thumbnail.
// filename is joined onto the upload directory as given; callers are trusted not to
// pass names that escape it.
func (s *Service) Delete(ctx context.Context, filename string) error {
	exists, err := s.layout.Originals.Exists(ctx, filename)
	if err != nil {
		return fmt.Errorf("failed to check %s: %w", filename, err)
	}
	if !exists {
		return ErrImageNotFound
	}

	if err := s.layout.Originals.Delete(ctx, filename); err != nil {
		return err
	}

	// Thumbnail absence is not an error; Delete already ignores missing files.
	if err := s.layout.Thumbnails.Delete(ctx, filename); err != nil {
		return fmt.Errorf("failed to delete thumbnail: %w", err)
	}

	logger.FromContext(ctx).Info().Str("filename", filename).Msg("Image deleted")
	return nil
}
