package auth

import (
	"net/http"

	"mapper/internal/api"
	"mapper/internal/apperror"
	"mapper/internal/middleware"

	"github.com/labstack/echo/v4"
)

// SignOutHandler 刪除目前 session 並清除 cookie
// @Summary     登出
// @Tags        auth
// @Produce     json
// @Success     200 {object} api.SuccessResponse
// @Failure     401 {object} api.ErrorResponse
// @Security    BearerAuth
// @Security    SessionCookie
// @Router      /auth/sign-out [post]
func SignOutHandler(p Provider) echo.HandlerFunc {
	return func(c echo.Context) error {
		s, ok := middleware.CurrentSession(c)
		if !ok {
			return api.RespondError(c, apperror.Unauthorized("Unauthorized"))
		}
		if err := p.SignOut(c.Request().Context(), s.Session.ID); err != nil {
			return api.RespondError(c, err)
		}
		clearSessionCookie(c)
		return c.JSON(http.StatusOK, api.SuccessResponse{Success: true})
	}
}

// GetSessionHandler 回傳目前的 session 與使用者
// @Summary     取得目前 session
// @Tags        auth
// @Produce     json
// @Success     200 {object} api.SessionResponse
// @Failure     401 {object} api.ErrorResponse
// @Security    BearerAuth
// @Security    SessionCookie
// @Router      /auth/get-session [get]
func GetSessionHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		s, ok := middleware.CurrentSession(c)
		if !ok {
			return api.RespondError(c, apperror.Unauthorized("Unauthorized"))
		}
		return c.JSON(http.StatusOK, api.SessionResponse{Session: s.Session, User: api.NewUserResponse(s.User)})
	}
}
