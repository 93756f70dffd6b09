package storage

import "fmt"

// Public URL prefixes the static file routes are mounted under.
const (
	OriginalsURL  = "/uploads"
	ThumbnailsURL = "/uploads/thumbnails"
)

// Layout is the on-disk arrangement of uploads: originals in one directory and
// thumbnails in another, linked only by sharing the same filename.
type Layout struct {
	Originals  *LocalStorage
	Thumbnails *LocalStorage
}

// NewLayout creates both directories if needed.
func NewLayout(uploadDir, thumbnailDir string) (*Layout, error) {
	originals, err := NewLocalStorage(uploadDir, OriginalsURL)
	if err != nil {
		return nil, fmt.Errorf("uploads directory: %w", err)
	}

	thumbnails, err := NewLocalStorage(thumbnailDir, ThumbnailsURL)
	if err != nil {
		return nil, fmt.Errorf("thumbnails directory: %w", err)
	}

	return &Layout{Originals: originals, Thumbnails: thumbnails}, nil
}

// OriginalPath returns where the original named filename lives.
func (l *Layout) OriginalPath(filename string) string {
	return l.Originals.Path(filename)
}

// ThumbnailPath derives the thumbnail location from the original's filename.
// Renaming either side silently breaks the link.
func (l *Layout) ThumbnailPath(filename string) string {
	return l.Thumbnails.Path(filename)
}

// PublicPath returns the relative URL of an original.
func (l *Layout) PublicPath(filename string) string {
	return l.Originals.GetURL(filename)
}

// PublicThumbnailPath returns the relative URL of a thumbnail.
func (l *Layout) PublicThumbnailPath(filename string) string {
	return l.Thumbnails.GetURL(filename)
}
