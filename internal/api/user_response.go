package api

import (
	"time"

	"mapper/internal/model"
)

// swagger:model api.UserResponse
type UserResponse struct {
	ID            string    `json:"id" example:"0b5f3c2e-6a43-4d5e-9a57-1c7d1f0e2b11"`
	Name          string    `json:"name" example:"Alice"`
	Email         string    `json:"email" example:"alice@example.com"`
	EmailVerified bool      `json:"emailVerified" example:"false"`
	Image         *string   `json:"image"`
	Points        int       `json:"points" example:"3"`
	Role          string    `json:"role" example:"user"`
	CreatedAt     time.Time `json:"createdAt" example:"2025-05-01T15:04:05Z"`
	UpdatedAt     time.Time `json:"updatedAt" example:"2025-05-01T15:04:05Z"`
}

func NewUserResponse(u model.User) UserResponse {
	return UserResponse{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		EmailVerified: u.EmailVerified,
		Image:         u.Image,
		Points:        u.Points,
		Role:          u.Role,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}
