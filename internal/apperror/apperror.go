// Package apperror 定義服務層與 HTTP 層共用的錯誤分類
package apperror

import (
	"errors"
	"net/http"
	"strings"
)

type Kind int

const (
	KindInternal Kind = iota
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindValidation
	KindBadRequest
	KindConflict
	KindTooManyRequests
)

func (k Kind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not found"
	case KindValidation:
		return "validation failed"
	case KindBadRequest:
		return "bad request"
	case KindConflict:
		return "conflict"
	case KindTooManyRequests:
		return "too many requests"
	default:
		return "internal"
	}
}

// Error 帶有分類的錯誤；Fields 僅在 KindValidation 時使用
type Error struct {
	Kind    Kind
	Message string
	Fields  []string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

func Unauthorized(msg string) *Error { return &Error{Kind: KindUnauthorized, Message: msg} }
func Forbidden(msg string) *Error    { return &Error{Kind: KindForbidden, Message: msg} }
func NotFound(msg string) *Error     { return &Error{Kind: KindNotFound, Message: msg} }
func BadRequest(msg string) *Error   { return &Error{Kind: KindBadRequest, Message: msg} }
func Conflict(msg string) *Error     { return &Error{Kind: KindConflict, Message: msg} }

func TooManyRequests(msg string) *Error {
	return &Error{Kind: KindTooManyRequests, Message: msg}
}

// Internal 包裝非預期錯誤，訊息對外固定，原始錯誤保留於 Err
func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

// Validation 回傳列出所有不合法欄位名稱的錯誤
func Validation(fields ...string) *Error {
	return &Error{
		Kind:    KindValidation,
		Message: "validation failed: " + strings.Join(fields, ", ") + " is required or invalid",
		Fields:  fields,
	}
}

// KindOf 取得錯誤分類，非 *Error 一律視為 KindInternal
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Is 判斷 err 是否屬於指定分類
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// StatusCode 將錯誤分類對應到固定的 HTTP 狀態碼
func StatusCode(err error) int {
	switch KindOf(err) {
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindBadRequest:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindTooManyRequests:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
