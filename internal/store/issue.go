package store

import (
	"context"
	"fmt"
	"time"

	"mapper/internal/database"
	"mapper/internal/model"

	"github.com/jackc/pgx/v5"
)

// 經緯度以 NUMERIC 儲存，進出資料庫一律以字串表示以保留精度
const issueColumns = `issue_id, user_id, type_id, status_id, short_description, detailed_description,
	address, latitude::text, longitude::text, created_at, expected_resolution_date`

func scanIssue(row pgx.Row) (*model.Issue, error) {
	i := &model.Issue{}
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.TypeID,
		&i.StatusID,
		&i.ShortDescription,
		&i.DetailedDescription,
		&i.Address,
		&i.Latitude,
		&i.Longitude,
		&i.CreatedAt,
		&i.ExpectedResolutionDate,
	)
	return i, err
}

func CreateIssue(ctx context.Context, q database.Querier, userID string, in model.NewIssue, statusID int, createdAt time.Time) (*model.Issue, error) {
	i, err := scanIssue(q.QueryRow(ctx,
		`INSERT INTO issues (user_id, type_id, status_id, short_description, detailed_description,
		                     address, latitude, longitude, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7::text::numeric, $8::text::numeric, $9)
		 RETURNING `+issueColumns,
		userID,
		in.TypeID,
		statusID,
		in.ShortDescription,
		in.DetailedDescription,
		in.Address,
		in.Latitude,
		in.Longitude,
		createdAt,
	))
	if err != nil {
		return nil, fmt.Errorf("CreateIssue: %w", err)
	}
	return i, nil
}

func GetIssueByID(ctx context.Context, q database.Querier, id int) (*model.Issue, error) {
	i, err := scanIssue(q.QueryRow(ctx,
		`SELECT `+issueColumns+` FROM issues WHERE issue_id = $1`,
		id,
	))
	if err != nil {
		return nil, fmt.Errorf("GetIssueByID: %w", err)
	}
	return i, nil
}

// ListIssues 回傳所有問題，依 issue_id 遞增排序
func ListIssues(ctx context.Context, q database.Querier) ([]model.IssueSummary, error) {
	rows, err := q.Query(ctx,
		`SELECT i.issue_id, i.short_description, i.detailed_description, i.address,
		        i.latitude::text, i.longitude::text, i.created_at, i.expected_resolution_date,
		        i.status_id, s.name, t.name, u.name, u.points
		 FROM issues i
		 LEFT JOIN issue_statuses s ON s.status_id = i.status_id
		 LEFT JOIN issue_types t ON t.type_id = i.type_id
		 LEFT JOIN users u ON u.id = i.user_id
		 ORDER BY i.issue_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("ListIssues: %w", err)
	}
	defer rows.Close()

	list := []model.IssueSummary{}
	for rows.Next() {
		var s model.IssueSummary
		if err := rows.Scan(
			&s.ID,
			&s.ShortDescription,
			&s.DetailedDescription,
			&s.Address,
			&s.Latitude,
			&s.Longitude,
			&s.CreatedAt,
			&s.ExpectedResolutionDate,
			&s.StatusID,
			&s.StatusName,
			&s.TypeName,
			&s.UserName,
			&s.UserPoints,
		); err != nil {
			return nil, fmt.Errorf("ListIssues scan: %w", err)
		}
		list = append(list, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListIssues rows: %w", err)
	}
	return list, nil
}

// UpdateIssueStatus 直接覆寫 status_id，不檢查狀態是否存在；問題不存在時回傳 pgx.ErrNoRows
func UpdateIssueStatus(ctx context.Context, q database.Querier, id, statusID int) (*model.StatusChange, error) {
	row := q.QueryRow(ctx,
		`UPDATE issues SET status_id = $2 WHERE issue_id = $1
		 RETURNING issue_id, status_id`,
		id,
		statusID,
	)
	c := &model.StatusChange{}
	if err := row.Scan(&c.IssueID, &c.StatusID); err != nil {
		return nil, fmt.Errorf("UpdateIssueStatus: %w", err)
	}
	return c, nil
}

// DeleteIssue 只刪除 issues 資料列；問題不存在時回傳 pgx.ErrNoRows
func DeleteIssue(ctx context.Context, q database.Querier, id int) (int, error) {
	var deleted int
	if err := q.QueryRow(ctx,
		`DELETE FROM issues WHERE issue_id = $1 RETURNING issue_id`,
		id,
	).Scan(&deleted); err != nil {
		return 0, fmt.Errorf("DeleteIssue: %w", err)
	}
	return deleted, nil
}
