package middleware

import (
	"net"
	"strconv"
	"strings"
	"time"

	"mapper/internal/api"
	"mapper/internal/apperror"
	"mapper/internal/cache"

	"github.com/labstack/echo/v4"
)

// ClientIP 依序讀取 x-client-ip、x-forwarded-for 第一段，最後使用連線位址
func ClientIP(c echo.Context) string {
	req := c.Request()
	if ip := strings.TrimSpace(req.Header.Get("X-Client-IP")); ip != "" {
		return ip
	}
	if fwd := req.Header.Get(echo.HeaderXForwardedFor); fwd != "" {
		if ip := strings.TrimSpace(strings.Split(fwd, ",")[0]); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(req.RemoteAddr)
	if err != nil {
		return req.RemoteAddr
	}
	return host
}

// RateLimit 以 Redis 計數限制每個 IP 在 window 內最多 limit 次請求
// 第一次計數時設定過期時間；Redis 失敗時放行
func RateLimit(c cache.Cache, prefix string, limit int, window time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			rctx := ctx.Request().Context()
			key := prefix + ":" + ClientIP(ctx)

			count, err := c.Incr(rctx, key).Result()
			if err != nil {
				ctx.Logger().Warnf("rate limit: %v", err)
				return next(ctx)
			}
			if count == 1 {
				if err := c.Expire(rctx, key, window).Err(); err != nil {
					ctx.Logger().Warnf("rate limit: %v", err)
				}
			}

			if count > int64(limit) {
				retryAfter, err := c.TTL(rctx, key).Result()
				if err != nil || retryAfter <= 0 {
					// 計數鍵沒有過期時間時補設，避免永久封鎖
					if err == nil {
						_ = c.Expire(rctx, key, window).Err()
					}
					retryAfter = window
				}
				secs := int((retryAfter + time.Second - 1) / time.Second)
				ctx.Response().Header().Set("Retry-After", strconv.Itoa(secs))
				return api.RespondError(ctx, apperror.TooManyRequests("Too many requests. Please try again later."))
			}
			return next(ctx)
		}
	}
}
