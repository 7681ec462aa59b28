package auth

import (
	"net/http"

	"mapper/internal/api"

	"github.com/labstack/echo/v4"
)

// SignInHandler 使用 Email/Password 登入
// @Summary     登入使用者
// @Description 驗證 Email 與密碼，建立 session 並設定 cookie
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     api.SignInRequest true "登入資料"
// @Success     200  {object} api.AuthResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     422  {object} api.ErrorResponse
// @Failure     429  {object} api.ErrorResponse
// @Router      /auth/sign-in/email [post]
func SignInHandler(p Provider) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.SignInRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "Invalid request body."})
		}
		if err := c.Validate(&req); err != nil {
			return api.RespondError(c, err)
		}

		res, err := p.SignIn(c.Request().Context(), req.Email, req.Password, clientMeta(c))
		if err != nil {
			return api.RespondError(c, err)
		}
		setSessionCookie(c, res.Token, res.Session.ExpiresAt)
		return c.JSON(http.StatusOK, api.AuthResponse{Token: res.Token, User: api.NewUserResponse(res.User)})
	}
}
