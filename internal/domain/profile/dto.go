package profile

import (
	"time"

	"github.com/google/uuid"
)

// UpdateRequest for PATCH /profile
type UpdateRequest struct {
	DisplayName string `json:"display_name" validate:"required,min=1,max=100"`
}

// ChangePasswordRequest for PUT /profile/password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=128"`
}

// Response represents a profile in API responses
type Response struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	AvatarURL   string    `json:"avatar_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
