package users

import (
	"net/http"

	"mapper/internal/api"
	"mapper/internal/apperror"
	"mapper/internal/middleware"

	"github.com/labstack/echo/v4"
)

// GetMeHandler 取得當前使用者資料，包含累積積分
// @Summary     Get current user
// @Description 回傳登入者的個人資料與積分
// @Tags        users
// @Produce     json
// @Success     200 {object} api.UserResponse
// @Failure     401 {object} api.ErrorResponse
// @Security    BearerAuth
// @Security    SessionCookie
// @Router      /users/me [get]
func GetMeHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		s, ok := middleware.CurrentSession(c)
		if !ok {
			return api.RespondError(c, apperror.Unauthorized("Unauthorized"))
		}
		return c.JSON(http.StatusOK, api.NewUserResponse(s.User))
	}
}
