package store

import (
	"context"
	"fmt"

	"mapper/internal/database"
	"mapper/internal/model"

	"github.com/jackc/pgx/v5"
)

const userColumns = `id, name, email, email_verified, image, points, role, created_at, updated_at`

func scanUser(row pgx.Row) (*model.User, error) {
	u := &model.User{}
	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.EmailVerified,
		&u.Image,
		&u.Points,
		&u.Role,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}

func GetUserByID(ctx context.Context, q database.Querier, userID string) (*model.User, error) {
	u, err := scanUser(q.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`,
		userID,
	))
	if err != nil {
		return nil, fmt.Errorf("GetUserByID: %w", err)
	}
	return u, nil
}

func GetUserByEmail(ctx context.Context, q database.Querier, email string) (*model.User, error) {
	u, err := scanUser(q.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`,
		email,
	))
	if err != nil {
		return nil, fmt.Errorf("GetUserByEmail: %w", err)
	}
	return u, nil
}

func CreateUser(ctx context.Context, q database.Querier, u *model.User) (*model.User, error) {
	row := q.QueryRow(ctx,
		`INSERT INTO users (id, name, email, email_verified, image, role)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING points, created_at, updated_at`,
		u.ID,
		u.Name,
		u.Email,
		u.EmailVerified,
		u.Image,
		u.Role,
	)
	if err := row.Scan(&u.Points, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, fmt.Errorf("CreateUser: %w", err)
	}
	return u, nil
}

// IncrementUserPoints 將使用者積分加 1；使用者不存在時回傳 pgx.ErrNoRows
func IncrementUserPoints(ctx context.Context, q database.Querier, userID string) error {
	tag, err := q.Exec(ctx,
		`UPDATE users SET points = points + 1, updated_at = now() WHERE id = $1`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("IncrementUserPoints: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("IncrementUserPoints: %w", pgx.ErrNoRows)
	}
	return nil
}
