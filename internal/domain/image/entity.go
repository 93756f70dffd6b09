package image

import "time"

// Summary is one catalog entry
type Summary struct {
	Filename  string
	Path      string
	Size      int64
	CreatedAt time.Time
}
