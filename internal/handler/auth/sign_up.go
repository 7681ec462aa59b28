package auth

import (
	"net/http"

	"mapper/internal/api"

	"github.com/labstack/echo/v4"
)

// SignUpHandler 以 email/password 註冊並直接登入
// @Summary     註冊使用者
// @Description 建立使用者與密碼帳號（Email 轉小寫），成功後設定 session cookie 並回傳 token
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     api.SignUpRequest true "註冊資料"
// @Success     200  {object} api.AuthResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     409  {object} api.ErrorResponse "Email 已被使用"
// @Failure     422  {object} api.ErrorResponse
// @Failure     429  {object} api.ErrorResponse
// @Router      /auth/sign-up/email [post]
func SignUpHandler(p Provider) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.SignUpRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "Invalid request body."})
		}
		if err := c.Validate(&req); err != nil {
			return api.RespondError(c, err)
		}

		res, err := p.SignUp(c.Request().Context(), req.Email, req.Password, req.Name, clientMeta(c))
		if err != nil {
			return api.RespondError(c, err)
		}
		setSessionCookie(c, res.Token, res.Session.ExpiresAt)
		return c.JSON(http.StatusOK, api.AuthResponse{Token: res.Token, User: api.NewUserResponse(res.User)})
	}
}
