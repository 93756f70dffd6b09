package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/dustin/go-humanize"

	"github.com/storefront/imgupload/internal/pkg/errorhandler"
	"github.com/storefront/imgupload/internal/pkg/response"
	"github.com/storefront/imgupload/internal/pkg/storage"
)

const (
	maxFieldSize  = 1024    // non-file form values
	formSlackSize = 1 << 20 // multipart framing and form fields
)

// Handler handles upload HTTP requests
type Handler struct {
	service *Service
	single  Capabilities
	batch   Capabilities
}

// NewHandler creates upload handler
func NewHandler(service *Service, maxBatchFiles int) *Handler {
	return &Handler{
		service: service,
		single:  SingleCapabilities(),
		batch:   BatchCapabilities(maxBatchFiles),
	}
}

// Upload handles POST /api/upload
// Multipart form: image + optional generateThumbnail, optimize
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	images, err := h.process(w, r, h.single)
	if err != nil {
		h.writeError(r.Context(), w, err, h.single, response.MsgUploadFailed)
		return
	}

	response.Message(w, response.MsgUploaded, UploadResponseFromEntity(images[0]))
}

// UploadMultiple handles POST /api/upload-multiple
// Multipart form: images (repeated) + optional generateThumbnail
func (h *Handler) UploadMultiple(w http.ResponseWriter, r *http.Request) {
	images, err := h.process(w, r, h.batch)
	if err != nil {
		h.writeError(r.Context(), w, err, h.batch, response.MsgBatchUploadFailed)
		return
	}

	items := make([]*UploadResponse, len(images))
	for i, img := range images {
		items[i] = UploadResponseFromEntity(img)
	}

	response.Message(w, fmt.Sprintf(response.MsgUploadedBatchFmt, len(items)), items)
}

// process runs intake for every file part, then the requested derivatives.
// Form flags may arrive before or after the files, so derivatives wait for the whole body.
func (h *Handler) process(w http.ResponseWriter, r *http.Request, caps Capabilities) ([]*UploadedImage, error) {
	ctx := r.Context()
	// MaxBytesReader asks the server to close the connection only when it sees the
	// server's own writer, not a middleware wrapper.
	r.Body = http.MaxBytesReader(unwrapWriter(w), r.Body, int64(caps.MaxFiles)*h.service.MaxFileSize()+formSlackSize)

	images, values, err := h.intake(ctx, r, caps)
	if err != nil {
		// A rejected request keeps nothing it already stored
		h.service.Discard(ctx, images)
		return nil, err
	}
	if len(images) == 0 {
		return nil, ErrNoFile
	}

	opts := OptionsFromForm(caps, values)
	for _, img := range images {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := h.service.Derive(ctx, img, opts); err != nil {
			return nil, err
		}
	}

	return images, nil
}

// intake stores every accepted file part and collects the form values. On error it
// still returns the images stored so far.
func (h *Handler) intake(ctx context.Context, r *http.Request, caps Capabilities) ([]*UploadedImage, map[string]string, error) {
	mr, err := r.MultipartReader()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrBadForm, err)
	}

	var images []*UploadedImage
	values := make(map[string]string)

	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return images, nil, classifyReadError(err)
		}

		img, err := h.handlePart(ctx, part, caps, len(images), values)
		part.Close()
		if err != nil {
			return images, nil, err
		}
		if img != nil {
			images = append(images, img)
		}
	}

	return images, values, nil
}

func (h *Handler) handlePart(ctx context.Context, part *multipart.Part, caps Capabilities, stored int, values map[string]string) (*UploadedImage, error) {
	// A file input left empty still sends a part with an empty filename.
	if part.FileName() == "" {
		value, err := io.ReadAll(io.LimitReader(part, maxFieldSize))
		if err != nil {
			return nil, classifyReadError(err)
		}
		if _, seen := values[part.FormName()]; !seen {
			values[part.FormName()] = string(value)
		}
		return nil, nil
	}

	if part.FormName() != caps.Field {
		return nil, nil
	}

	if stored >= caps.MaxFiles {
		return nil, ErrTooManyFiles
	}

	img, err := h.service.Store(ctx, caps.Field, part.FileName(), part.Header.Get("Content-Type"), part)
	if err != nil {
		return nil, classifyStoreError(err)
	}
	return img, nil
}

// classifyReadError maps an exceeded request body limit onto the size error and any
// other multipart framing failure onto ErrBadForm.
func classifyReadError(err error) error {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return fmt.Errorf("%w: %v", storage.ErrFileTooLarge, err)
	}
	return fmt.Errorf("%w: %v", ErrBadForm, err)
}

// classifyStoreError keeps intake errors as they are unless the body limit tripped
// while the file was being read.
func classifyStoreError(err error) error {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return fmt.Errorf("%w: %v", storage.ErrFileTooLarge, err)
	}
	return err
}

// unwrapWriter returns the innermost writer behind middleware wrappers
func unwrapWriter(w http.ResponseWriter) http.ResponseWriter {
	for {
		u, ok := w.(interface{ Unwrap() http.ResponseWriter })
		if !ok {
			return w
		}
		w = u.Unwrap()
	}
}

// sizeLabel renders a byte limit the way the storefront copy states it
func sizeLabel(n int64) string {
	if n >= 1<<20 && n%(1<<20) == 0 {
		return fmt.Sprintf("%dMB", n>>20)
	}
	return humanize.IBytes(uint64(n))
}

func tooManyFilesMessage(caps Capabilities) string {
	return fmt.Sprintf(response.MsgTooManyFilesFmt, caps.MaxFiles)
}

func fileTooLargeMessage(limit int64) string {
	return fmt.Sprintf(response.MsgFileTooLargeFmt, sizeLabel(limit))
}

func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, err error, caps Capabilities, failMessage string) {
	switch {
	case errors.Is(err, ErrNoFile):
		errorhandler.HandleError(ctx, w, http.StatusBadRequest, "NO_FILE", response.MsgNoFile, err)
	case errors.Is(err, storage.ErrInvalidMimeType):
		errorhandler.HandleError(ctx, w, http.StatusBadRequest, "INVALID_FILE_TYPE", response.MsgInvalidType, err)
	case errors.Is(err, storage.ErrFileTooLarge):
		errorhandler.HandleError(ctx, w, http.StatusBadRequest, "FILE_TOO_LARGE", fileTooLargeMessage(h.service.MaxFileSize()), err)
	case errors.Is(err, storage.ErrEmptyFile):
		errorhandler.HandleError(ctx, w, http.StatusBadRequest, "EMPTY_FILE", response.MsgEmptyFile, err)
	case errors.Is(err, ErrTooManyFiles):
		errorhandler.HandleError(ctx, w, http.StatusBadRequest, "TOO_MANY_FILES", tooManyFilesMessage(caps), err)
	case errors.Is(err, ErrBadForm):
		errorhandler.HandleError(ctx, w, http.StatusBadRequest, "BAD_REQUEST", response.MsgBadForm, err)
	default:
		errorhandler.HandleError(ctx, w, http.StatusInternalServerError, "UPLOAD_FAILED", failMessage, err)
	}
}
