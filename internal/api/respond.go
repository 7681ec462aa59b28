package api

import (
	"errors"

	"mapper/internal/apperror"

	"github.com/labstack/echo/v4"
)

// RespondError 依錯誤分類寫出固定狀態碼與 ErrorResponse
// 非預期錯誤會記錄到 echo logger，對外只回傳固定訊息
func RespondError(c echo.Context, err error) error {
	code := apperror.StatusCode(err)
	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		c.Logger().Error(err)
		return c.JSON(code, ErrorResponse{Message: "Internal server error."})
	}
	if appErr.Kind == apperror.KindInternal {
		c.Logger().Error(err)
		if appErr.Err != nil {
			c.Logger().Error(appErr.Err)
		}
	}
	return c.JSON(code, ErrorResponse{Message: appErr.Error(), Fields: appErr.Fields})
}
