package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"mapper/internal/apperror"
	"mapper/internal/database"
	"mapper/internal/model"
	"mapper/internal/store"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	newID                 = uuid.NewString
	createUser            = store.CreateUser
	getUserByID           = store.GetUserByID
	getUserByEmail        = store.GetUserByEmail
	createAccount         = store.CreateAccount
	getCredentialAccount  = store.GetCredentialAccount
	createSession         = store.CreateSession
	getSessionByID        = store.GetSessionByID
	deleteSession         = store.DeleteSession
	deleteExpiredSessions = store.DeleteExpiredSessions
)

const msgInvalidCredentials = "Invalid email or password."

// Identity 提供 email/password 註冊登入與 session 驗證
type Identity struct {
	DB         database.DB
	Secret     []byte
	SessionTTL time.Duration
}

// ClientMeta 為建立 session 時記錄的用戶端資訊
type ClientMeta struct {
	IPAddress string
	UserAgent string
}

type AuthResult struct {
	Token   string
	Session model.Session
	User    model.User
}

func NewIdentity(db database.DB, secret string, ttl time.Duration) *Identity {
	return &Identity{DB: db, Secret: []byte(secret), SessionTTL: ttl}
}

// SignUp 在同一交易中建立使用者與 credential 帳號，成功後直接登入
func (id *Identity) SignUp(ctx context.Context, email, password, name string, meta ClientMeta) (*AuthResult, error) {
	email = normalizeEmail(email)
	hash, err := HashPassword(password)
	if err != nil {
		return nil, apperror.Internal(msgInternal, err)
	}

	tx, err := id.DB.Begin(ctx)
	if err != nil {
		return nil, apperror.Internal(msgInternal, err)
	}
	defer tx.Rollback(ctx)

	user, err := createUser(ctx, tx, &model.User{
		ID:    newID(),
		Name:  name,
		Email: email,
		Role:  model.RoleUser,
	})
	if err != nil {
		if pgCode(err) == pgUniqueViolation {
			return nil, apperror.Conflict("User already exists.")
		}
		return nil, apperror.Internal(msgInternal, err)
	}
	if err := createAccount(ctx, tx, &model.Account{
		ID:         newID(),
		AccountID:  user.ID,
		ProviderID: model.CredentialProvider,
		UserID:     user.ID,
		Password:   &hash,
	}); err != nil {
		return nil, apperror.Internal(msgInternal, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, apperror.Internal(msgInternal, err)
	}

	return id.startSession(ctx, *user, meta)
}

// SignIn 驗證帳密並建立新的 session
func (id *Identity) SignIn(ctx context.Context, email, password string, meta ClientMeta) (*AuthResult, error) {
	user, err := getUserByEmail(ctx, id.DB, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.Unauthorized(msgInvalidCredentials)
		}
		return nil, apperror.Internal(msgInternal, err)
	}
	account, err := getCredentialAccount(ctx, id.DB, user.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.Unauthorized(msgInvalidCredentials)
		}
		return nil, apperror.Internal(msgInternal, err)
	}
	if account.Password == nil || ComparePassword(*account.Password, password) != nil {
		return nil, apperror.Unauthorized(msgInvalidCredentials)
	}
	return id.startSession(ctx, *user, meta)
}

func (id *Identity) startSession(ctx context.Context, user model.User, meta ClientMeta) (*AuthResult, error) {
	s := model.Session{
		ID:        newID(),
		ExpiresAt: timeNow().Add(id.SessionTTL),
		UserID:    user.ID,
		IPAddress: optional(meta.IPAddress),
		UserAgent: optional(meta.UserAgent),
	}
	token, err := IssueSessionToken(id.Secret, s, user)
	if err != nil {
		return nil, apperror.Internal(msgInternal, err)
	}
	s.Token = token
	if err := createSession(ctx, id.DB, &s); err != nil {
		return nil, apperror.Internal(msgInternal, err)
	}
	return &AuthResult{Token: token, Session: s, User: user}, nil
}

// GetSession 驗證 token 並回傳 session 與最新的使用者資料
func (id *Identity) GetSession(ctx context.Context, token string) (*model.SessionWithUser, error) {
	if token == "" {
		return nil, apperror.Unauthorized("Unauthorized")
	}
	claims, err := VerifySessionToken(id.Secret, token)
	if err != nil {
		return nil, apperror.Unauthorized("Unauthorized")
	}

	s, err := getSessionByID(ctx, id.DB, claims.SessionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.Unauthorized("Unauthorized")
		}
		return nil, apperror.Internal(msgInternal, err)
	}
	if s.Token != token || s.Expired(timeNow()) {
		return nil, apperror.Unauthorized("Unauthorized")
	}

	user, err := getUserByID(ctx, id.DB, s.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.Unauthorized("Unauthorized")
		}
		return nil, apperror.Internal(msgInternal, err)
	}
	return &model.SessionWithUser{Session: *s, User: *user}, nil
}

func (id *Identity) SignOut(ctx context.Context, sessionID string) error {
	if err := deleteSession(ctx, id.DB, sessionID); err != nil {
		return apperror.Internal(msgInternal, err)
	}
	return nil
}

// SweepExpiredSessions 刪除所有已過期的 session
func (id *Identity) SweepExpiredSessions(ctx context.Context) (int64, error) {
	return deleteExpiredSessions(ctx, id.DB, timeNow())
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
