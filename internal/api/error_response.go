package api

// ErrorResponse 全域錯誤響應模型
// swagger:model api.ErrorResponse
type ErrorResponse struct {
	// message 錯誤描述
	Message string `json:"message" example:"Issue with ID 1 not found."`
	// fields 驗證失敗的欄位名稱，僅 422 時出現
	Fields []string `json:"fields,omitempty"`
}
