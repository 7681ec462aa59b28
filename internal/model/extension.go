package model

import "time"

// Photo、Comment、AdminAction 目前只有資料表，沒有 API 讀寫

type Photo struct {
	ID         int        `db:"photo_id" json:"photoId"`
	IssueID    int        `db:"issue_id" json:"issueId"`
	FilePath   string     `db:"file_path" json:"filePath"`
	UploadedAt *time.Time `db:"uploaded_at" json:"uploadedAt"`
}

type Comment struct {
	ID        int        `db:"comment_id" json:"commentId"`
	IssueID   int        `db:"issue_id" json:"issueId"`
	AdminID   string     `db:"admin_id" json:"adminId"`
	Content   string     `db:"content" json:"content"`
	CreatedAt *time.Time `db:"created_at" json:"createdAt"`
}

type AdminAction struct {
	ID         int        `db:"action_id" json:"actionId"`
	IssueID    int        `db:"issue_id" json:"issueId"`
	AdminID    string     `db:"admin_id" json:"adminId"`
	ActionType string     `db:"action_type" json:"actionType"`
	OldValue   *string    `db:"old_value" json:"oldValue"`
	NewValue   *string    `db:"new_value" json:"newValue"`
	ActionDate *time.Time `db:"action_date" json:"actionDate"`
}
