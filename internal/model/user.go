package model

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID            string    `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	Email         string    `db:"email" json:"email"`
	EmailVerified bool      `db:"email_verified" json:"emailVerified"`
	Image         *string   `db:"image" json:"image"`
	Points        int       `db:"points" json:"points"`
	Role          string    `db:"role" json:"role"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `db:"updated_at" json:"updatedAt"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Account 儲存登入憑證；email/password 登入時 ProviderID 為 "credential"
type Account struct {
	ID         string    `db:"id"`
	AccountID  string    `db:"account_id"`
	ProviderID string    `db:"provider_id"`
	UserID     string    `db:"user_id"`
	Password   *string   `db:"password"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

const CredentialProvider = "credential"
