package image

import "time"

// SummaryResponse represents a catalog entry in API responses
type SummaryResponse struct {
	Filename   string `json:"filename"`
	Path       string `json:"path"`
	Size       int64  `json:"size"`
	UploadDate string `json:"uploadDate"`
}

// SummaryResponseFromEntity converts entity to response
func SummaryResponseFromEntity(s *Summary) *SummaryResponse {
	return &SummaryResponse{
		Filename:   s.Filename,
		Path:       s.Path,
		Size:       s.Size,
		UploadDate: s.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}
