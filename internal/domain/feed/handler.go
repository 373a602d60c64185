package feed

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/minstagram/minstagram-api/internal/domain/user"
	"github.com/minstagram/minstagram-api/internal/middleware"
	"github.com/minstagram/minstagram-api/internal/pkg/response"
)

// Handler handles feed and gallery HTTP requests
type Handler struct {
	views    *Views
	userRepo user.Repository
	logger   zerolog.Logger
}

// NewHandler creates feed handler
func NewHandler(views *Views, userRepo user.Repository, logger zerolog.Logger) *Handler {
	return &Handler{
		views:    views,
		userRepo: userRepo,
		logger:   logger.With().Str("handler", "feed").Logger(),
	}
}

// Feed handles GET /feed
// @Summary Load the chronological feed
func (h *Handler) Feed(w http.ResponseWriter, r *http.Request) {
	h.activate(w, r, ScopeFeed)
}

// Gallery handles GET /gallery
// @Summary Load the user's own uploads
func (h *Handler) Gallery(w http.ResponseWriter, r *http.Request) {
	h.activate(w, r, ScopeGallery)
}

func (h *Handler) activate(w http.ResponseWriter, r *http.Request, scope Scope) {
	identity, err := h.identity(r)
	if err != nil {
		h.handleError(w, err)
		return
	}

	s, err := h.views.Activate(r.Context(), identity, scope)
	if err != nil {
		h.handleError(w, err)
		return
	}

	resp, err := newListResponse(s)
	if err != nil {
		h.handleError(w, err)
		return
	}
	response.OK(w, resp)
}

// Like handles POST /feed/photos/{id}/like
// @Summary Like a photo in the active feed view
func (h *Handler) Like(w http.ResponseWriter, r *http.Request) {
	photoID, ok := h.photoID(w, r)
	if !ok {
		return
	}

	s, err := h.views.Get(h.viewerIdentity(r), ScopeFeed)
	if err != nil {
		h.handleError(w, err)
		return
	}

	count, err := s.Like(r.Context(), photoID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.OK(w, LikeResponse{PhotoID: photoID, LikeCount: count})
}

// Comment handles POST /feed/photos/{id}/comments
// @Summary Comment on a photo in the active feed view
func (h *Handler) Comment(w http.ResponseWriter, r *http.Request) {
	photoID, ok := h.photoID(w, r)
	if !ok {
		return
	}

	var req CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "INVALID_BODY", "Invalid request body")
		return
	}

	s, err := h.views.Get(h.viewerIdentity(r), ScopeFeed)
	if err != nil {
		h.handleError(w, err)
		return
	}

	comment, err := s.AddComment(r.Context(), photoID, req.Text)
	if err != nil {
		h.handleError(w, err)
		return
	}
	if comment == nil {
		// Blank text is dropped without an error
		response.NoContent(w)
		return
	}

	response.Created(w, comment)
}

// ExpandFeed handles POST /feed/photos/{id}/expand
// @Summary Toggle a comment thread in the feed
func (h *Handler) ExpandFeed(w http.ResponseWriter, r *http.Request) {
	h.expand(w, r, ScopeFeed)
}

// ExpandGallery handles POST /gallery/photos/{id}/expand
// @Summary Toggle a comment thread in the gallery
func (h *Handler) ExpandGallery(w http.ResponseWriter, r *http.Request) {
	h.expand(w, r, ScopeGallery)
}

func (h *Handler) expand(w http.ResponseWriter, r *http.Request, scope Scope) {
	photoID, ok := h.photoID(w, r)
	if !ok {
		return
	}

	s, err := h.views.Get(h.viewerIdentity(r), scope)
	if err != nil {
		h.handleError(w, err)
		return
	}

	expanded, err := s.ToggleExpand(photoID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.OK(w, ExpandResponse{PhotoID: photoID, Expanded: expanded})
}

// Report handles POST /feed/photos/{id}/report. Reports are recorded in
// the logs only; there is no review pipeline behind this yet.
// @Summary Report a photo
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	photoID, ok := h.photoID(w, r)
	if !ok {
		return
	}

	userID := middleware.GetUserID(r.Context())
	h.logger.Info().
		Str("photo_id", photoID.String()).
		Str("reporter_id", userID.String()).
		Msg("photo reported")

	response.OK(w, ReportResponse{PhotoID: photoID, Reported: true})
}

// identity snapshots the acting user for a new view.
func (h *Handler) identity(r *http.Request) (Identity, error) {
	userID := middleware.GetUserID(r.Context())
	u, err := h.userRepo.GetByID(r.Context(), userID)
	if err != nil || u == nil {
		return Identity{}, ErrFetchFailed
	}
	return Identity{UserID: u.ID, DisplayName: u.DisplayName}, nil
}

// viewerIdentity keys into the registry; only the user ID matters for
// looking up an existing view.
func (h *Handler) viewerIdentity(r *http.Request) Identity {
	return Identity{UserID: middleware.GetUserID(r.Context())}
}

func (h *Handler) photoID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "INVALID_PHOTO_ID", "Invalid photo id")
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrViewNotLoaded):
		response.Conflict(w, "VIEW_NOT_LOADED", "Load the feed before interacting with it")
	case errors.Is(err, ErrPhotoNotInView):
		response.NotFound(w, "PHOTO_NOT_IN_VIEW", "Photo is not part of the loaded view")
	case errors.Is(err, ErrFetchFailed):
		response.Error(w, http.StatusBadGateway, "FETCH_FAILED", "Could not load photos, please try again")
	case errors.Is(err, ErrLikeFailed):
		response.Error(w, http.StatusBadGateway, "LIKE_FAILED", "Could not record the like, please try again")
	case errors.Is(err, ErrCommentFailed):
		response.Error(w, http.StatusBadGateway, "COMMENT_FAILED", "Could not add the comment, please try again")
	default:
		h.logger.Error().Err(err).Msg("feed request failed")
		response.InternalError(w)
	}
}
