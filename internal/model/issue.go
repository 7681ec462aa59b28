package model

import "time"

// DefaultIssueStatusID 為新建問題的初始狀態（種子資料 "Pending"）
const DefaultIssueStatusID = 1

type Issue struct {
	ID                     int        `db:"issue_id" json:"issueId"`
	UserID                 string     `db:"user_id" json:"userId"`
	TypeID                 int        `db:"type_id" json:"typeId"`
	StatusID               int        `db:"status_id" json:"statusId"`
	ShortDescription       string     `db:"short_description" json:"shortDescription"`
	DetailedDescription    *string    `db:"detailed_description" json:"detailedDescription"`
	Address                string     `db:"address" json:"address"`
	Latitude               *string    `db:"latitude" json:"latitude"`
	Longitude              *string    `db:"longitude" json:"longitude"`
	CreatedAt              *time.Time `db:"created_at" json:"createdAt"`
	ExpectedResolutionDate *time.Time `db:"expected_resolution_date" json:"expectedResolutionDate"`
}

// IssueSummary 為列表用的問題資料，外鍵欄位以 LEFT JOIN 帶出名稱
type IssueSummary struct {
	ID                     int        `json:"issueId"`
	ShortDescription       string     `json:"shortDescription"`
	DetailedDescription    *string    `json:"detailedDescription"`
	Address                string     `json:"address"`
	Latitude               *string    `json:"latitude"`
	Longitude              *string    `json:"longitude"`
	CreatedAt              *time.Time `json:"createdAt"`
	ExpectedResolutionDate *time.Time `json:"expectedResolutionDate"`
	StatusID               int        `json:"statusId"`
	StatusName             *string    `json:"statusName"`
	TypeName               *string    `json:"typeName"`
	UserName               *string    `json:"userName"`
	UserPoints             *int       `json:"userPoints"`
}

// NewIssue 為建立問題時由使用者提供的欄位
type NewIssue struct {
	Latitude            string
	Longitude           string
	TypeID              int
	ShortDescription    string
	DetailedDescription *string
	Address             string
}

type IssueType struct {
	ID   int    `db:"type_id" json:"typeId"`
	Name string `db:"name" json:"name"`
}

type IssueStatus struct {
	ID   int    `db:"status_id" json:"statusId"`
	Name string `db:"name" json:"name"`
}

type StatusChange struct {
	IssueID  int `json:"issueId"`
	StatusID int `json:"statusId"`
}
