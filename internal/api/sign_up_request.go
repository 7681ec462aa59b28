package api

// swagger:model api.SignUpRequest
type SignUpRequest struct {
	Email    string `json:"email" validate:"required,email" example:"user-story-1@example.com"`
	Password string `json:"password" validate:"required,min=8,max=128" example:"testpassword123"`
	Name     string `json:"name" validate:"required,max=255" example:"Alice"`
}
