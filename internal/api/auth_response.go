package api

import "mapper/internal/model"

// swagger:model api.AuthResponse
type AuthResponse struct {
	Token string       `json:"token" example:"eyJhbGciOiJIUzI1NiIs..."`
	User  UserResponse `json:"user"`
}

// swagger:model api.SessionResponse
type SessionResponse struct {
	Session model.Session `json:"session"`
	User    UserResponse  `json:"user"`
}

// swagger:model api.SuccessResponse
type SuccessResponse struct {
	Success bool `json:"success" example:"true"`
}
