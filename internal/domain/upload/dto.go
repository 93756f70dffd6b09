package upload

import "time"

// UploadResponse represents an upload in API responses
type UploadResponse struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName"`
	Size         int64  `json:"size"`
	MimeType     string `json:"mimetype"`
	Path         string `json:"path"`
	UploadDate   string `json:"uploadDate"`
	Thumbnail    string `json:"thumbnail,omitempty"`
}

// UploadResponseFromEntity converts entity to response
func UploadResponseFromEntity(u *UploadedImage) *UploadResponse {
	return &UploadResponse{
		Filename:     u.Filename,
		OriginalName: u.OriginalName,
		Size:         u.Size,
		MimeType:     u.MimeType,
		Path:         u.PublicPath,
		UploadDate:   u.UploadedAt.UTC().Format(time.RFC3339Nano),
		Thumbnail:    u.ThumbnailPath,
	}
}
