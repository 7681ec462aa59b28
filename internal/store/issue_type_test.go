package store

import (
	"context"
	"errors"
	"testing"

	"mapper/internal/database"
	"mapper/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
)

func TestIssueTypeStore(t *testing.T) {
	ctx := context.Background()

	t.Run("exists", func(t *testing.T) {
		db := &database.FakeDB{QueryRowFn: func(_ context.Context, _ string, args ...any) pgx.Row {
			return &database.FakeRow{Values: []any{args[0] == 1}}
		}}
		ok, err := IssueTypeExists(ctx, db, 1)
		require.NoError(t, err)
		require.True(t, ok)
		ok, err = IssueTypeExists(ctx, db, 99)
		require.NoError(t, err)
		require.False(t, ok)

		db.QueryRowFn = func(context.Context, string, ...any) pgx.Row { return &database.FakeRow{Err: errors.New("x")} }
		_, err = IssueTypeExists(ctx, db, 1)
		require.ErrorContains(t, err, "IssueTypeExists")
	})

	t.Run("list", func(t *testing.T) {
		db := &database.FakeDB{QueryFn: func(context.Context, string, ...any) (pgx.Rows, error) {
			return &database.FakeRows{Data: [][]any{{1, "Problem"}, {2, "Pothole"}}}, nil
		}}
		types, err := ListIssueTypes(ctx, db)
		require.NoError(t, err)
		require.Equal(t, []model.IssueType{{ID: 1, Name: "Problem"}, {ID: 2, Name: "Pothole"}}, types)

		db.QueryFn = func(context.Context, string, ...any) (pgx.Rows, error) { return nil, errors.New("q") }
		_, err = ListIssueTypes(ctx, db)
		require.ErrorContains(t, err, "ListIssueTypes")

		db.QueryFn = func(context.Context, string, ...any) (pgx.Rows, error) {
			return &database.FakeRows{Data: [][]any{{1, "x"}}, ScanErr: errors.New("s")}, nil
		}
		_, err = ListIssueTypes(ctx, db)
		require.ErrorContains(t, err, "scan")

		db.QueryFn = func(context.Context, string, ...any) (pgx.Rows, error) {
			return &database.FakeRows{Error: errors.New("r")}, nil
		}
		_, err = ListIssueTypes(ctx, db)
		require.ErrorContains(t, err, "rows")
	})
}
