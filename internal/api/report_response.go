package api

import "mapper/internal/model"

// swagger:model api.DeleteReportResponse
type DeleteReportResponse struct {
	Success bool `json:"success" example:"true"`
	IssueID int  `json:"issueId" example:"1"`
}

// swagger:model api.UpdateStatusResponse
type UpdateStatusResponse struct {
	Success bool               `json:"success" example:"true"`
	Issue   model.StatusChange `json:"issue"`
}
