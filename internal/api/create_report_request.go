package api

import "mapper/internal/model"

// CreateReportRequest 經緯度以字串傳入，保留原始精度
// swagger:model api.CreateReportRequest
type CreateReportRequest struct {
	Latitude            string  `json:"latitude" validate:"required,latitude" example:"59.93863"`
	Longitude           string  `json:"longitude" validate:"required,longitude" example:"30.31413"`
	TypeID              *int    `json:"typeId" validate:"required" example:"1"`
	ShortDescription    string  `json:"shortDescription" validate:"required,max=200" example:"Short"`
	DetailedDescription *string `json:"detailedDescription" validate:"omitempty,max=1000"`
	Address             string  `json:"address" validate:"required,max=255" example:"Addr 1"`
}

// NewIssue 轉為服務層輸入；必須在驗證通過後呼叫
func (r CreateReportRequest) NewIssue() model.NewIssue {
	return model.NewIssue{
		Latitude:            r.Latitude,
		Longitude:           r.Longitude,
		TypeID:              *r.TypeID,
		ShortDescription:    r.ShortDescription,
		DetailedDescription: r.DetailedDescription,
		Address:             r.Address,
	}
}
