package store

import (
	"context"
	"fmt"

	"mapper/internal/database"
	"mapper/internal/model"
)

func CreateAccount(ctx context.Context, q database.Querier, a *model.Account) error {
	row := q.QueryRow(ctx,
		`INSERT INTO accounts (id, account_id, provider_id, user_id, password)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at, updated_at`,
		a.ID,
		a.AccountID,
		a.ProviderID,
		a.UserID,
		a.Password,
	)
	if err := row.Scan(&a.CreatedAt, &a.UpdatedAt); err != nil {
		return fmt.Errorf("CreateAccount: %w", err)
	}
	return nil
}

// GetCredentialAccount 取得使用者的 email/password 帳號
func GetCredentialAccount(ctx context.Context, q database.Querier, userID string) (*model.Account, error) {
	row := q.QueryRow(ctx,
		`SELECT id, account_id, provider_id, user_id, password, created_at, updated_at
		 FROM accounts WHERE user_id = $1 AND provider_id = $2`,
		userID,
		model.CredentialProvider,
	)
	a := &model.Account{}
	if err := row.Scan(
		&a.ID,
		&a.AccountID,
		&a.ProviderID,
		&a.UserID,
		&a.Password,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("GetCredentialAccount: %w", err)
	}
	return a, nil
}
