package image

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/storefront/imgupload/internal/pkg/errorhandler"
	"github.com/storefront/imgupload/internal/pkg/response"
)

// Handler handles catalog HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates image handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List handles GET /api/images
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	images, err := h.service.List(r.Context())
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "LIST_FAILED", response.MsgListFailed, err)
		return
	}

	items := make([]*SummaryResponse, len(images))
	for i, img := range images {
		items[i] = SummaryResponseFromEntity(img)
	}

	response.List(w, len(items), items)
}

// Delete handles DELETE /api/images/{filename}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")

	if err := h.service.Delete(r.Context(), filename); err != nil {
		switch {
		case errors.Is(err, ErrImageNotFound):
			errorhandler.HandleError(r.Context(), w, http.StatusNotFound, "NOT_FOUND", response.MsgNotFound, err)
		default:
			errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "DELETE_FAILED", response.MsgDeleteFailed, err)
		}
		return
	}

	response.Message(w, response.MsgDeleted, nil)
}
