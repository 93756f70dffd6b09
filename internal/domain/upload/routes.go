package upload

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts the upload endpoints on an /api router
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/upload", h.Upload)
	r.Post("/upload-multiple", h.UploadMultiple)
}
