package upload

import (
	"github.com/minstagram/minstagram-api/internal/domain/photo"
	"github.com/minstagram/minstagram-api/internal/pkg/storage"
)

// UploadResponse returned after a successful upload
type UploadResponse struct {
	UploadID string       `json:"upload_id"`
	Photo    *photo.Photo `json:"photo"`
}

// ProgressResponse for GET /uploads/{id}/progress
type ProgressResponse struct {
	UploadID string           `json:"upload_id"`
	Done     bool             `json:"done"`
	Progress storage.Progress `json:"progress"`
}
