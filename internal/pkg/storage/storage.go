package storage

import "time"

// FileInfo describes one stored file
type FileInfo struct {
	Key       string
	Size      int64
	URL       string
	CreatedAt time.Time
}
