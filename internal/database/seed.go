package database

import (
	"context"
	"fmt"
)

// 與 000002_seed_lookups 相同的種子資料；以 name 唯一鍵 upsert，可重複執行
var (
	seedIssueTypes    = []string{"Problem"}
	seedIssueStatuses = []string{"Pending", "Under Review"}
)

// SeedLookups 確保查找表中存在種子資料
func SeedLookups(ctx context.Context, q Querier) error {
	for _, name := range seedIssueTypes {
		if _, err := q.Exec(ctx,
			`INSERT INTO issue_types (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`,
			name,
		); err != nil {
			return fmt.Errorf("SeedLookups issue_types: %w", err)
		}
	}
	for _, name := range seedIssueStatuses {
		if _, err := q.Exec(ctx,
			`INSERT INTO issue_statuses (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`,
			name,
		); err != nil {
			return fmt.Errorf("SeedLookups issue_statuses: %w", err)
		}
	}
	return nil
}
