package database

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

// upsertTable 模擬 ON CONFLICT (name) DO NOTHING 的結果
type upsertTable map[string]map[string]int

func (u upsertTable) exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	table := "issue_types"
	if strings.Contains(sql, "issue_statuses") {
		table = "issue_statuses"
	}
	if u[table] == nil {
		u[table] = map[string]int{}
	}
	name := args[0].(string)
	if _, ok := u[table][name]; ok {
		return pgconn.NewCommandTag("INSERT 0 0"), nil
	}
	u[table][name] = len(u[table]) + 1
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func TestSeedLookupsIdempotent(t *testing.T) {
	rows := upsertTable{}
	db := &FakeDB{ExecFn: rows.exec}

	require.NoError(t, SeedLookups(context.Background(), db))
	require.NoError(t, SeedLookups(context.Background(), db))

	require.Equal(t, map[string]int{"Problem": 1}, rows["issue_types"])
	require.Equal(t, map[string]int{"Pending": 1, "Under Review": 2}, rows["issue_statuses"])
}

func TestSeedLookupsErrors(t *testing.T) {
	db := &FakeDB{ExecFn: func(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
		return pgconn.CommandTag{}, errors.New("x")
	}}
	err := SeedLookups(context.Background(), db)
	require.ErrorContains(t, err, "issue_types")

	calls := 0
	db.ExecFn = func(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
		calls++
		if strings.Contains(sql, "issue_statuses") {
			return pgconn.CommandTag{}, errors.New("y")
		}
		return pgconn.CommandTag{}, nil
	}
	err = SeedLookups(context.Background(), db)
	require.ErrorContains(t, err, "issue_statuses")
	require.Equal(t, 2, calls)
}
