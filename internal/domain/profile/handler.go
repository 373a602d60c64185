package profile

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/minstagram/minstagram-api/internal/middleware"
	"github.com/minstagram/minstagram-api/internal/pkg/response"
	"github.com/minstagram/minstagram-api/internal/pkg/validator"
)

const maxAvatarBytes = 5 << 20

// Handler handles profile HTTP requests
type Handler struct {
	service   *Service
	validator *validator.Validator
	logger    zerolog.Logger
}

// NewHandler creates profile handler
func NewHandler(service *Service, validator *validator.Validator, logger zerolog.Logger) *Handler {
	return &Handler{
		service:   service,
		validator: validator,
		logger:    logger.With().Str("handler", "profile").Logger(),
	}
}

// Get handles GET /profile
// @Summary Return the user's profile
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	resp, err := h.service.Get(r.Context(), userID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.OK(w, resp)
}

// Update handles PATCH /profile
// @Summary Update the display name
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "INVALID_BODY", "Invalid request body")
		return
	}

	if fields := h.validator.Validate(req); fields != nil {
		response.ValidationError(w, fields)
		return
	}

	resp, err := h.service.UpdateDisplayName(r.Context(), userID, req.DisplayName)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.OK(w, resp)
}

// UpdateAvatar handles POST /profile/avatar (multipart form: avatar)
// @Summary Upload a new avatar
func (h *Handler) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxAvatarBytes)
	if err := r.ParseMultipartForm(maxAvatarBytes); err != nil {
		response.BadRequest(w, "INVALID_FORM", "Invalid multipart form")
		return
	}

	file, _, err := r.FormFile("avatar")
	if err != nil {
		response.BadRequest(w, "FILE_REQUIRED", "Avatar file is required")
		return
	}
	defer file.Close()

	resp, err := h.service.UpdateAvatar(r.Context(), userID, file)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.OK(w, resp)
}

// ChangePassword handles PUT /profile/password
// @Summary Change password after verifying the current one
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "INVALID_BODY", "Invalid request body")
		return
	}

	if fields := h.validator.Validate(req); fields != nil {
		response.ValidationError(w, fields)
		return
	}

	if err := h.service.ChangePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		h.handleError(w, err)
		return
	}

	response.NoContent(w)
}

func (h *Handler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrUserNotFound):
		response.NotFound(w, "USER_NOT_FOUND", "User not found")
	case errors.Is(err, ErrWrongPassword):
		response.Unauthorized(w, "WRONG_PASSWORD", "Current password is incorrect")
	case errors.Is(err, ErrInvalidImage):
		response.BadRequest(w, "INVALID_IMAGE", "File is not a supported image")
	default:
		h.logger.Error().Err(err).Msg("profile request failed")
		response.InternalError(w)
	}
}
