package feed

import (
	"github.com/google/uuid"

	"github.com/minstagram/minstagram-api/internal/domain/photo"
)

// PhotoView is a photo as rendered inside a view, with its thread state.
type PhotoView struct {
	*photo.Photo
	Expanded bool `json:"expanded"`
}

// ListResponse for GET /feed and GET /gallery
type ListResponse struct {
	Photos []PhotoView `json:"photos"`
}

// CommentRequest for POST /feed/photos/{id}/comments
type CommentRequest struct {
	Text string `json:"text"`
}

// LikeResponse for POST /feed/photos/{id}/like
type LikeResponse struct {
	PhotoID   uuid.UUID `json:"photo_id"`
	LikeCount int       `json:"like_count"`
}

// ExpandResponse for POST /{feed,gallery}/photos/{id}/expand
type ExpandResponse struct {
	PhotoID  uuid.UUID `json:"photo_id"`
	Expanded bool      `json:"expanded"`
}

// ReportResponse for POST /feed/photos/{id}/report
type ReportResponse struct {
	PhotoID  uuid.UUID `json:"photo_id"`
	Reported bool      `json:"reported"`
}

// newListResponse renders a synchronizer's working set.
func newListResponse(s *Synchronizer) (*ListResponse, error) {
	photos, err := s.Photos()
	if err != nil {
		return nil, err
	}
	views := make([]PhotoView, len(photos))
	for i, p := range photos {
		views[i] = PhotoView{Photo: p, Expanded: s.IsExpanded(p.ID)}
	}
	return &ListResponse{Photos: views}, nil
}
