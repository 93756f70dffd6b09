package image

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts the catalog endpoints on an /api router
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/images", h.List)
	r.Delete("/images/{filename}", h.Delete)
}
