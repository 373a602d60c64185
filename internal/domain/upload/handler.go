package upload

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/minstagram/minstagram-api/internal/middleware"
	"github.com/minstagram/minstagram-api/internal/pkg/response"
)

// Handler handles photo upload HTTP requests
type Handler struct {
	service *Service
	maxSize int64
	logger  zerolog.Logger
}

// NewHandler creates upload handler
func NewHandler(service *Service, maxSize int64, logger zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		maxSize: maxSize,
		logger:  logger.With().Str("handler", "upload").Logger(),
	}
}

// Upload handles POST /photos (multipart form: photo, description)
// @Summary Upload a photo with an optional caption
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	// Leave headroom above the file limit for the other form parts
	r.Body = http.MaxBytesReader(w, r.Body, h.maxSize+1<<20)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		response.BadRequest(w, "INVALID_FORM", "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		response.BadRequest(w, "FILE_REQUIRED", "Photo file is required")
		return
	}
	defer file.Close()

	// Client may pre-announce an upload ID so it can poll progress
	// while the request is still streaming.
	uploadID := r.Header.Get("X-Upload-ID")
	if uploadID == "" {
		uploadID = uuid.New().String()
	}

	contentType := header.Header.Get("Content-Type")
	description := r.FormValue("description")

	p, err := h.service.Upload(r.Context(), userID, uploadID, file, header.Size, contentType, description)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Created(w, UploadResponse{UploadID: uploadID, Photo: p})
}

// Progress handles GET /uploads/{id}/progress
// @Summary Report bytes transferred for an upload
func (h *Handler) Progress(w http.ResponseWriter, r *http.Request) {
	uploadID := chi.URLParam(r, "id")

	resp, err := h.service.Progress(uploadID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.OK(w, resp)
}

func (h *Handler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidFileType):
		response.BadRequest(w, "INVALID_FILE_TYPE", "Only JPEG, PNG, GIF and WebP images are supported")
	case errors.Is(err, ErrFileTooLarge):
		response.BadRequest(w, "FILE_TOO_LARGE", "File exceeds the maximum upload size")
	case errors.Is(err, ErrUploadNotFound):
		response.NotFound(w, "UPLOAD_NOT_FOUND", "Upload not found")
	case errors.Is(err, ErrUploadFailed):
		response.Error(w, http.StatusBadGateway, "UPLOAD_FAILED", "Upload failed, please try again")
	default:
		h.logger.Error().Err(err).Msg("upload request failed")
		response.InternalError(w)
	}
}
