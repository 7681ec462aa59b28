package middleware

import (
	"context"
	"strings"

	"mapper/internal/api"
	"mapper/internal/apperror"
	"mapper/internal/model"

	"github.com/labstack/echo/v4"
)

const (
	ContextUserKey    = "user"
	SessionCookieName = "swag.session_token"
)

// SessionGetter 由 service.Identity 實作
type SessionGetter interface {
	GetSession(ctx context.Context, token string) (*model.SessionWithUser, error)
}

// TokenFromRequest 優先讀取 Authorization: Bearer，其次讀取 session cookie
func TokenFromRequest(c echo.Context) string {
	if authHeader := c.Request().Header.Get(echo.HeaderAuthorization); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if cookie, err := c.Cookie(SessionCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// CurrentSession 取得 RequireAuth 放入 context 的 session
func CurrentSession(c echo.Context) (*model.SessionWithUser, bool) {
	s, ok := c.Get(ContextUserKey).(*model.SessionWithUser)
	return s, ok
}

func RequireAuth(sessions SessionGetter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			s, err := sessions.GetSession(c.Request().Context(), TokenFromRequest(c))
			if err != nil {
				return api.RespondError(c, err)
			}
			c.Set(ContextUserKey, s)
			return next(c)
		}
	}
}

// RequireAdmin 必須掛在 RequireAuth 之後
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		s, ok := CurrentSession(c)
		if !ok {
			return api.RespondError(c, apperror.Unauthorized("Unauthorized"))
		}
		if !s.User.IsAdmin() {
			return api.RespondError(c, apperror.Forbidden("Forbidden"))
		}
		return next(c)
	}
}
