package api

// swagger:model api.SignInRequest
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email" example:"user-story-1@example.com"`
	Password string `json:"password" validate:"required" example:"testpassword123"`
}
