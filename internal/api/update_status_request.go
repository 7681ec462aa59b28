package api

// swagger:model api.UpdateStatusRequest
type UpdateStatusRequest struct {
	StatusID *int `json:"statusId" example:"2"`
}
