package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/minstagram/minstagram-api/internal/middleware"
	"github.com/minstagram/minstagram-api/internal/pkg/response"
	"github.com/minstagram/minstagram-api/internal/pkg/validator"
)

// Handler handles authentication HTTP requests
type Handler struct {
	service   *Service
	validator *validator.Validator
	logger    zerolog.Logger
}

// NewHandler creates auth handler
func NewHandler(service *Service, validator *validator.Validator, logger zerolog.Logger) *Handler {
	return &Handler{
		service:   service,
		validator: validator,
		logger:    logger.With().Str("handler", "auth").Logger(),
	}
}

// Register handles POST /auth/register
// @Summary Register a new account
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "INVALID_BODY", "Invalid request body")
		return
	}

	if fields := h.validator.Validate(req); fields != nil {
		response.ValidationError(w, fields)
		return
	}

	resp, err := h.service.Register(r.Context(), &req)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Created(w, resp)
}

// Login handles POST /auth/login
// @Summary Login with email and password
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "INVALID_BODY", "Invalid request body")
		return
	}

	if fields := h.validator.Validate(req); fields != nil {
		response.ValidationError(w, fields)
		return
	}

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.OK(w, resp)
}

// Refresh handles POST /auth/refresh
// @Summary Exchange a refresh token for a new token pair
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "INVALID_BODY", "Invalid request body")
		return
	}

	resp, err := h.service.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.OK(w, resp)
}

// Logout handles POST /auth/logout
// @Summary Invalidate a refresh token
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "INVALID_BODY", "Invalid request body")
		return
	}

	if err := h.service.Logout(r.Context(), req.RefreshToken); err != nil {
		h.handleError(w, err)
		return
	}

	response.NoContent(w)
}

// Me handles GET /auth/me
// @Summary Return the authenticated user
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	resp, err := h.service.GetCurrentUser(r.Context(), userID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.OK(w, resp)
}

// handleError maps service errors to HTTP responses
func (h *Handler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrEmailAlreadyExists):
		response.Conflict(w, "EMAIL_IN_USE", "This email is already registered, please login instead.")
	case errors.Is(err, ErrInvalidCredentials):
		response.Unauthorized(w, "INVALID_CREDENTIALS", "Check your password and email address and try again.")
	case errors.Is(err, ErrInvalidRefreshToken):
		response.Unauthorized(w, "INVALID_REFRESH_TOKEN", "Refresh token is invalid or expired")
	case errors.Is(err, ErrRefreshTokenRequired):
		response.BadRequest(w, "REFRESH_TOKEN_REQUIRED", "Refresh token is required")
	case errors.Is(err, ErrUserNotFound):
		response.NotFound(w, "USER_NOT_FOUND", "User not found")
	default:
		h.logger.Error().Err(err).Msg("auth request failed")
		response.InternalError(w)
	}
}
