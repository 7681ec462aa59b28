package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"mapper/internal/apperror"
	"mapper/internal/database"
	"mapper/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
)

func fixedIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newTestIdentity(tx *database.FakeTx) *Identity {
	db := &database.FakeDB{BeginFn: func(context.Context) (pgx.Tx, error) { return tx, nil }}
	return NewIdentity(db, "secret", time.Hour)
}

func TestSignUp(t *testing.T) {
	ctx := context.Background()
	meta := ClientMeta{IPAddress: "10.0.0.1", UserAgent: "test"}

	t.Run("success", func(t *testing.T) {
		t.Cleanup(restore)
		tx := &database.FakeTx{}
		id := newTestIdentity(tx)
		newID = fixedIDs()

		var gotUser *model.User
		var gotAccount *model.Account
		var gotSession *model.Session
		createUser = func(_ context.Context, q database.Querier, u *model.User) (*model.User, error) {
			require.Same(t, tx, q)
			gotUser = u
			return u, nil
		}
		createAccount = func(_ context.Context, q database.Querier, a *model.Account) error {
			require.Same(t, tx, q)
			gotAccount = a
			return nil
		}
		createSession = func(_ context.Context, q database.Querier, s *model.Session) error {
			require.NotSame(t, tx, q)
			gotSession = s
			return nil
		}

		res, err := id.SignUp(ctx, " User-Story-1@Example.com ", "testpassword123", "Story", meta)
		require.NoError(t, err)
		require.True(t, tx.Committed)

		require.Equal(t, "user-story-1@example.com", gotUser.Email)
		require.Equal(t, model.RoleUser, gotUser.Role)
		require.Equal(t, "id-1", gotUser.ID)
		require.Equal(t, model.CredentialProvider, gotAccount.ProviderID)
		require.Equal(t, "id-1", gotAccount.UserID)
		require.NoError(t, ComparePassword(*gotAccount.Password, "testpassword123"))

		require.Equal(t, gotSession.Token, res.Token)
		require.Equal(t, "id-1", gotSession.UserID)
		require.Equal(t, "10.0.0.1", *gotSession.IPAddress)
		require.Equal(t, "test", *gotSession.UserAgent)
		claims, err := VerifySessionToken(id.Secret, res.Token)
		require.NoError(t, err)
		require.Equal(t, gotSession.ID, claims.SessionID)
	})

	t.Run("100 character password", func(t *testing.T) {
		t.Cleanup(restore)
		tx := &database.FakeTx{}
		id := newTestIdentity(tx)
		long := strings.Repeat("a", 100)

		var gotAccount *model.Account
		createUser = func(_ context.Context, _ database.Querier, u *model.User) (*model.User, error) { return u, nil }
		createAccount = func(_ context.Context, _ database.Querier, a *model.Account) error {
			gotAccount = a
			return nil
		}
		createSession = func(context.Context, database.Querier, *model.Session) error { return nil }

		res, err := id.SignUp(ctx, "a@b.c", long, "n", ClientMeta{})
		require.NoError(t, err)
		require.NotEmpty(t, res.Token)
		require.True(t, tx.Committed)
		require.NoError(t, ComparePassword(*gotAccount.Password, long))
	})

	t.Run("duplicate email", func(t *testing.T) {
		t.Cleanup(restore)
		tx := &database.FakeTx{}
		id := newTestIdentity(tx)
		createUser = func(context.Context, database.Querier, *model.User) (*model.User, error) {
			return nil, fmt.Errorf("CreateUser: %w", pgErr(pgUniqueViolation))
		}
		_, err := id.SignUp(ctx, "a@b.c", "password1", "A", meta)
		require.True(t, apperror.Is(err, apperror.KindConflict))
		require.True(t, tx.RolledBack)
		require.False(t, tx.Committed)
	})

	t.Run("account failure rolls back", func(t *testing.T) {
		t.Cleanup(restore)
		tx := &database.FakeTx{}
		id := newTestIdentity(tx)
		createUser = func(_ context.Context, _ database.Querier, u *model.User) (*model.User, error) { return u, nil }
		createAccount = func(context.Context, database.Querier, *model.Account) error { return errors.New("acc") }
		_, err := id.SignUp(ctx, "a@b.c", "password1", "A", meta)
		require.Equal(t, apperror.KindInternal, apperror.KindOf(err))
		require.True(t, tx.RolledBack)
	})

	t.Run("hash and begin errors", func(t *testing.T) {
		t.Cleanup(restore)
		bcryptGenerateFromPassword = func([]byte, int) ([]byte, error) { return nil, errors.New("h") }
		id := newTestIdentity(&database.FakeTx{})
		_, err := id.SignUp(ctx, "a@b.c", "password1", "A", meta)
		require.Equal(t, apperror.KindInternal, apperror.KindOf(err))

		restore()
		id.DB = &database.FakeDB{BeginFn: func(context.Context) (pgx.Tx, error) { return nil, errors.New("b") }}
		_, err = id.SignUp(ctx, "a@b.c", "password1", "A", meta)
		require.ErrorContains(t, err, msgInternal)
	})

	t.Run("commit error", func(t *testing.T) {
		t.Cleanup(restore)
		tx := &database.FakeTx{CommitFn: func(context.Context) error { return errors.New("c") }}
		id := newTestIdentity(tx)
		createUser = func(_ context.Context, _ database.Querier, u *model.User) (*model.User, error) { return u, nil }
		createAccount = func(context.Context, database.Querier, *model.Account) error { return nil }
		_, err := id.SignUp(ctx, "a@b.c", "password1", "A", meta)
		require.Equal(t, apperror.KindInternal, apperror.KindOf(err))
	})
}

func TestSignIn(t *testing.T) {
	ctx := context.Background()
	hash, err := HashPassword("testpassword123")
	require.NoError(t, err)
	user := &model.User{ID: "u1", Email: "user-story-1@example.com", Role: model.RoleUser}

	stub := func() {
		getUserByEmail = func(_ context.Context, _ database.Querier, email string) (*model.User, error) {
			if email == user.Email {
				return user, nil
			}
			return nil, fmt.Errorf("GetUserByEmail: %w", pgx.ErrNoRows)
		}
		getCredentialAccount = func(_ context.Context, _ database.Querier, userID string) (*model.Account, error) {
			return &model.Account{UserID: userID, Password: &hash}, nil
		}
		createSession = func(context.Context, database.Querier, *model.Session) error { return nil }
	}

	t.Run("success", func(t *testing.T) {
		t.Cleanup(restore)
		stub()
		now := time.Now()
		timeNow = func() time.Time { return now }
		id := NewIdentity(&database.FakeDB{}, "secret", 2*time.Hour)

		res, err := id.SignIn(ctx, "USER-STORY-1@example.com", "testpassword123", ClientMeta{})
		require.NoError(t, err)
		require.Equal(t, "u1", res.User.ID)
		require.Equal(t, now.Add(2*time.Hour), res.Session.ExpiresAt)
		require.Nil(t, res.Session.IPAddress)
		require.NotEmpty(t, res.Token)
	})

	t.Run("wrong password or unknown email", func(t *testing.T) {
		t.Cleanup(restore)
		stub()
		id := NewIdentity(&database.FakeDB{}, "secret", time.Hour)

		_, err := id.SignIn(ctx, user.Email, "nope", ClientMeta{})
		require.True(t, apperror.Is(err, apperror.KindUnauthorized))
		_, err = id.SignIn(ctx, "ghost@example.com", "testpassword123", ClientMeta{})
		require.True(t, apperror.Is(err, apperror.KindUnauthorized))
		require.EqualError(t, err, msgInvalidCredentials)
	})

	t.Run("missing credential account", func(t *testing.T) {
		t.Cleanup(restore)
		stub()
		id := NewIdentity(&database.FakeDB{}, "secret", time.Hour)
		getCredentialAccount = func(context.Context, database.Querier, string) (*model.Account, error) {
			return nil, pgx.ErrNoRows
		}
		_, err := id.SignIn(ctx, user.Email, "testpassword123", ClientMeta{})
		require.True(t, apperror.Is(err, apperror.KindUnauthorized))

		getCredentialAccount = func(context.Context, database.Querier, string) (*model.Account, error) {
			return &model.Account{}, nil
		}
		_, err = id.SignIn(ctx, user.Email, "testpassword123", ClientMeta{})
		require.True(t, apperror.Is(err, apperror.KindUnauthorized))
	})

	t.Run("store errors are internal", func(t *testing.T) {
		t.Cleanup(restore)
		stub()
		id := NewIdentity(&database.FakeDB{}, "secret", time.Hour)
		createSession = func(context.Context, database.Querier, *model.Session) error { return errors.New("s") }
		_, err := id.SignIn(ctx, user.Email, "testpassword123", ClientMeta{})
		require.Equal(t, apperror.KindInternal, apperror.KindOf(err))

		getUserByEmail = func(context.Context, database.Querier, string) (*model.User, error) {
			return nil, errors.New("db")
		}
		_, err = id.SignIn(ctx, user.Email, "testpassword123", ClientMeta{})
		require.Equal(t, apperror.KindInternal, apperror.KindOf(err))
	})
}

func TestGetSession(t *testing.T) {
	ctx := context.Background()
	id := NewIdentity(&database.FakeDB{}, "secret", time.Hour)
	session := model.Session{ID: "s1", UserID: "u1", ExpiresAt: time.Now().Add(time.Hour)}
	user := model.User{ID: "u1", Role: model.RoleAdmin}
	token, err := IssueSessionToken(id.Secret, session, user)
	require.NoError(t, err)
	session.Token = token

	stub := func() {
		getSessionByID = func(_ context.Context, _ database.Querier, sid string) (*model.Session, error) {
			require.Equal(t, "s1", sid)
			s := session
			return &s, nil
		}
		getUserByID = func(context.Context, database.Querier, string) (*model.User, error) {
			u := user
			return &u, nil
		}
	}

	t.Run("success", func(t *testing.T) {
		t.Cleanup(restore)
		stub()
		got, err := id.GetSession(ctx, token)
		require.NoError(t, err)
		require.Equal(t, "s1", got.Session.ID)
		require.True(t, got.User.IsAdmin())
	})

	t.Run("role is re-read", func(t *testing.T) {
		t.Cleanup(restore)
		stub()
		getUserByID = func(context.Context, database.Querier, string) (*model.User, error) {
			return &model.User{ID: "u1", Role: model.RoleUser}, nil
		}
		got, err := id.GetSession(ctx, token)
		require.NoError(t, err)
		require.False(t, got.User.IsAdmin())
	})

	t.Run("unauthorized cases", func(t *testing.T) {
		t.Cleanup(restore)
		stub()
		for name, tok := range map[string]string{"empty": "", "garbage": "abc"} {
			_, err := id.GetSession(ctx, tok)
			require.True(t, apperror.Is(err, apperror.KindUnauthorized), name)
		}

		getSessionByID = func(context.Context, database.Querier, string) (*model.Session, error) {
			return nil, fmt.Errorf("GetSessionByID: %w", pgx.ErrNoRows)
		}
		_, err := id.GetSession(ctx, token)
		require.True(t, apperror.Is(err, apperror.KindUnauthorized))

		getSessionByID = func(context.Context, database.Querier, string) (*model.Session, error) {
			s := session
			s.Token = "rotated"
			return &s, nil
		}
		_, err = id.GetSession(ctx, token)
		require.True(t, apperror.Is(err, apperror.KindUnauthorized))

		stub()
		getUserByID = func(context.Context, database.Querier, string) (*model.User, error) { return nil, pgx.ErrNoRows }
		_, err = id.GetSession(ctx, token)
		require.True(t, apperror.Is(err, apperror.KindUnauthorized))
	})

	t.Run("expired session row", func(t *testing.T) {
		t.Cleanup(restore)
		stub()
		getSessionByID = func(context.Context, database.Querier, string) (*model.Session, error) {
			s := session
			s.ExpiresAt = time.Now().Add(-time.Second)
			return &s, nil
		}
		_, err := id.GetSession(ctx, token)
		require.True(t, apperror.Is(err, apperror.KindUnauthorized))
	})

	t.Run("store errors are internal", func(t *testing.T) {
		t.Cleanup(restore)
		stub()
		getSessionByID = func(context.Context, database.Querier, string) (*model.Session, error) {
			return nil, errors.New("db")
		}
		_, err := id.GetSession(ctx, token)
		require.Equal(t, apperror.KindInternal, apperror.KindOf(err))

		stub()
		getUserByID = func(context.Context, database.Querier, string) (*model.User, error) { return nil, errors.New("db") }
		_, err = id.GetSession(ctx, token)
		require.Equal(t, apperror.KindInternal, apperror.KindOf(err))
	})
}

func TestSignOutAndSweep(t *testing.T) {
	t.Cleanup(restore)
	ctx := context.Background()
	id := NewIdentity(&database.FakeDB{}, "secret", time.Hour)

	var deleted string
	deleteSession = func(_ context.Context, _ database.Querier, sid string) error {
		deleted = sid
		return nil
	}
	require.NoError(t, id.SignOut(ctx, "s1"))
	require.Equal(t, "s1", deleted)

	deleteSession = func(context.Context, database.Querier, string) error { return errors.New("x") }
	require.Equal(t, apperror.KindInternal, apperror.KindOf(id.SignOut(ctx, "s1")))

	now := time.Now()
	timeNow = func() time.Time { return now }
	deleteExpiredSessions = func(_ context.Context, _ database.Querier, at time.Time) (int64, error) {
		require.Equal(t, now, at)
		return 3, nil
	}
	n, err := id.SweepExpiredSessions(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 3, n)
}
