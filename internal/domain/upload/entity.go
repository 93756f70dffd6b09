package upload

import "time"

// UploadedImage is an original accepted at intake. Its metadata is captured before
// any derivative runs, so Size is the pre-optimization byte count.
type UploadedImage struct {
	Filename     string // generated, unique
	OriginalName string // as sent by the client
	Size         int64
	MimeType     string
	StoragePath  string // on-disk location, never exposed
	PublicPath   string
	UploadedAt   time.Time

	// Set only when a thumbnail was generated
	ThumbnailPath string
}

// HasThumbnail returns true if a thumbnail was generated for this upload
func (u *UploadedImage) HasThumbnail() bool {
	return u.ThumbnailPath != ""
}

// Capabilities declares what an upload endpoint accepts. The single-file endpoint
// can optimize; the batch endpoint cannot.
type Capabilities struct {
	Field     string // multipart field carrying the files
	MaxFiles  int
	Thumbnail bool
	Optimize  bool
}

// SingleCapabilities describes POST /api/upload
func SingleCapabilities() Capabilities {
	return Capabilities{Field: "image", MaxFiles: 1, Thumbnail: true, Optimize: true}
}

// BatchCapabilities describes POST /api/upload-multiple
func BatchCapabilities(maxFiles int) Capabilities {
	return Capabilities{Field: "images", MaxFiles: maxFiles, Thumbnail: true}
}

// Options selects which derivatives to generate for a request
type Options struct {
	Thumbnail bool
	Optimize  bool
}

// Form flags are enabled only by the literal string "true".
const (
	FlagGenerateThumbnail = "generateThumbnail"
	FlagOptimize          = "optimize"
)

// OptionsFromForm resolves requested flags against what the endpoint allows.
// Flags the endpoint lacks are ignored.
func OptionsFromForm(caps Capabilities, values map[string]string) Options {
	return Options{
		Thumbnail: caps.Thumbnail && values[FlagGenerateThumbnail] == "true",
		Optimize:  caps.Optimize && values[FlagOptimize] == "true",
	}
}
