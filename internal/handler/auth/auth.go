package auth

import (
	"context"
	"net/http"
	"time"

	"mapper/internal/middleware"
	"mapper/internal/service"

	"github.com/labstack/echo/v4"
)

// Provider 為註冊登入所需的身分服務，由 service.Identity 實作
type Provider interface {
	SignUp(ctx context.Context, email, password, name string, meta service.ClientMeta) (*service.AuthResult, error)
	SignIn(ctx context.Context, email, password string, meta service.ClientMeta) (*service.AuthResult, error)
	SignOut(ctx context.Context, sessionID string) error
}

func clientMeta(c echo.Context) service.ClientMeta {
	return service.ClientMeta{
		IPAddress: middleware.ClientIP(c),
		UserAgent: c.Request().UserAgent(),
	}
}

func setSessionCookie(c echo.Context, token string, expires time.Time) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
