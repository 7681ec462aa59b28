package store

import (
	"context"
	"fmt"

	"mapper/internal/database"
	"mapper/internal/model"
)

func IssueTypeExists(ctx context.Context, q database.Querier, typeID int) (bool, error) {
	var exists bool
	if err := q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM issue_types WHERE type_id = $1)`,
		typeID,
	).Scan(&exists); err != nil {
		return false, fmt.Errorf("IssueTypeExists: %w", err)
	}
	return exists, nil
}

func ListIssueTypes(ctx context.Context, q database.Querier) ([]model.IssueType, error) {
	rows, err := q.Query(ctx, `SELECT type_id, name FROM issue_types ORDER BY type_id`)
	if err != nil {
		return nil, fmt.Errorf("ListIssueTypes: %w", err)
	}
	defer rows.Close()

	types := []model.IssueType{}
	for rows.Next() {
		var it model.IssueType
		if err := rows.Scan(&it.ID, &it.Name); err != nil {
			return nil, fmt.Errorf("ListIssueTypes scan: %w", err)
		}
		types = append(types, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListIssueTypes rows: %w", err)
	}
	return types, nil
}
