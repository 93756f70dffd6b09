//go:build linux

package storage

import (
	"io/fs"
	"syscall"
	"time"
)

// createdAt uses the inode change time; Linux stat(2) exposes no birth time.
func createdAt(info fs.FileInfo) time.Time {
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		return time.Unix(st.Ctim.Unix())
	}
	return info.ModTime()
}
