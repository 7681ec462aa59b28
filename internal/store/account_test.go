package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"mapper/internal/database"
	"mapper/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
)

func TestAccountStore(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()
	hash := "hash"

	t.Run("create", func(t *testing.T) {
		db := &database.FakeDB{QueryRowFn: func(_ context.Context, sql string, args ...any) pgx.Row {
			require.Contains(t, sql, "INSERT INTO accounts")
			require.Equal(t, model.CredentialProvider, args[2])
			require.Equal(t, &hash, args[4])
			return &database.FakeRow{Values: []any{now, now}}
		}}
		a := &model.Account{ID: "a1", AccountID: "u1", ProviderID: model.CredentialProvider, UserID: "u1", Password: &hash}
		require.NoError(t, CreateAccount(ctx, db, a))
		require.Equal(t, now, a.CreatedAt)

		db.QueryRowFn = func(context.Context, string, ...any) pgx.Row { return &database.FakeRow{Err: errors.New("x")} }
		require.ErrorContains(t, CreateAccount(ctx, db, a), "CreateAccount")
	})

	t.Run("get credential", func(t *testing.T) {
		db := &database.FakeDB{QueryRowFn: func(_ context.Context, sql string, args ...any) pgx.Row {
			require.Equal(t, []any{"u1", model.CredentialProvider}, args)
			return &database.FakeRow{Values: []any{"a1", "u1", model.CredentialProvider, "u1", &hash, now, now}}
		}}
		a, err := GetCredentialAccount(ctx, db, "u1")
		require.NoError(t, err)
		require.Equal(t, "hash", *a.Password)

		db.QueryRowFn = func(context.Context, string, ...any) pgx.Row { return &database.FakeRow{Err: pgx.ErrNoRows} }
		_, err = GetCredentialAccount(ctx, db, "u1")
		require.ErrorIs(t, err, pgx.ErrNoRows)
	})
}
