package router

import (
	"mapper/internal/cache"
	"mapper/internal/config"
	"mapper/internal/database"
	"mapper/internal/handler"
	"mapper/internal/handler/auth"
	"mapper/internal/handler/reports"
	"mapper/internal/handler/users"
	"mapper/internal/middleware"
	"mapper/internal/service"

	"github.com/labstack/echo/v4"
)

const authRateLimitPrefix = "mapper:ratelimit:auth"

// Setup 註冊所有路由與中介層
func Setup(e *echo.Echo, db database.DB, rdb cache.Cache, id *service.Identity, cfg *config.Config) {
	requireAuth := middleware.RequireAuth(id)

	// 健康檢查（需登入）
	e.GET("/ping", handler.PingHandler(db, rdb), requireAuth)

	// 帳號與 session，依 IP 限流
	apiAuth := e.Group("/auth", middleware.RateLimit(rdb, authRateLimitPrefix, cfg.AuthRateLimit, cfg.AuthRateWindow))
	apiAuth.POST("/sign-up/email", auth.SignUpHandler(id))
	apiAuth.POST("/sign-in/email", auth.SignInHandler(id))
	apiAuth.POST("/sign-out", auth.SignOutHandler(id), requireAuth)
	apiAuth.GET("/get-session", auth.GetSessionHandler(), requireAuth)

	// 問題回報，刪除與狀態變更限管理員
	apiReports := e.Group("/reports", requireAuth)
	apiReports.GET("", reports.ListReportsHandler(db))
	apiReports.GET("/issue-types", reports.ListIssueTypesHandler(db, rdb, cfg.IssueTypesCacheTTL))
	apiReports.GET("/:id", reports.GetReportHandler(db))
	apiReports.POST("", reports.CreateReportHandler(db))
	apiReports.DELETE("/:id", reports.DeleteReportHandler(db), middleware.RequireAdmin)
	apiReports.PUT("/:id/status", reports.UpdateReportStatusHandler(db), middleware.RequireAdmin)

	e.GET("/users/me", users.GetMeHandler(), requireAuth)
}
