package store

import (
	"context"
	"fmt"
	"time"

	"mapper/internal/database"
	"mapper/internal/model"
)

func CreateSession(ctx context.Context, q database.Querier, s *model.Session) error {
	row := q.QueryRow(ctx,
		`INSERT INTO sessions (id, token, expires_at, ip_address, user_agent, user_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at, updated_at`,
		s.ID,
		s.Token,
		s.ExpiresAt,
		s.IPAddress,
		s.UserAgent,
		s.UserID,
	)
	if err := row.Scan(&s.CreatedAt, &s.UpdatedAt); err != nil {
		return fmt.Errorf("CreateSession: %w", err)
	}
	return nil
}

func GetSessionByID(ctx context.Context, q database.Querier, id string) (*model.Session, error) {
	row := q.QueryRow(ctx,
		`SELECT id, token, expires_at, ip_address, user_agent, user_id, created_at, updated_at
		 FROM sessions WHERE id = $1`,
		id,
	)
	s := &model.Session{}
	if err := row.Scan(
		&s.ID,
		&s.Token,
		&s.ExpiresAt,
		&s.IPAddress,
		&s.UserAgent,
		&s.UserID,
		&s.CreatedAt,
		&s.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("GetSessionByID: %w", err)
	}
	return s, nil
}

func DeleteSession(ctx context.Context, q database.Querier, id string) error {
	if _, err := q.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("DeleteSession: %w", err)
	}
	return nil
}

// DeleteExpiredSessions 刪除 expires_at 早於 now 的 session，回傳刪除筆數
func DeleteExpiredSessions(ctx context.Context, q database.Querier, now time.Time) (int64, error) {
	tag, err := q.Exec(ctx, `DELETE FROM sessions WHERE expires_at < $1`, now)
	if err != nil {
		return 0, fmt.Errorf("DeleteExpiredSessions: %w", err)
	}
	return tag.RowsAffected(), nil
}
