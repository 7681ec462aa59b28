// @title        Mapper API
// @version      1.0
// @description  市政問題回報平台的後端 API 文件
// @host         localhost:3000
// @BasePath     /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @securityDefinitions.apikey SessionCookie
// @in cookie
// @name swag.session_token
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"mapper/internal/cache"
	"mapper/internal/config"
	"mapper/internal/console"
	"mapper/internal/database"
	"mapper/internal/router"
	"mapper/internal/scheduler"
	"mapper/internal/service"
	"mapper/internal/validate"
	"mapper/internal/worker"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	_ "mapper/docs" // 引入 swag 產出的 docs

	echoSwagger "github.com/swaggo/echo-swagger"
)

var (
	loadConfig           = config.Load
	newPgxPool           = database.NewPgxPool
	newRedisClient       = cache.NewRedisClient
	runMigrationsFn      = database.RunMigrations
	seedLookupsFn        = database.SeedLookups
	invalidateIssueTypes = service.InvalidateIssueTypes
	startServer          = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	newWorkerPool        = worker.NewPool
	exitFunc             = os.Exit
)

func newEcho(cfg *config.Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Debug = cfg.Development
	e.Validator = validate.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))
	return e
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx := context.Background()

	db, err := newPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %v", err)
	}
	defer db.Close()

	redis, err := newRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return fmt.Errorf("Redis 連線失敗: %v", err)
	}
	defer redis.Close()

	if err := runMigrationsFn(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("Migration 執行失敗: %v", err)
	}
	if err := seedLookupsFn(ctx, db); err != nil {
		return fmt.Errorf("Seed 執行失敗: %v", err)
	}
	if err := invalidateIssueTypes(ctx, redis); err != nil {
		log.Printf("清除問題類型快取失敗: %v", err)
	}

	identity := service.NewIdentity(db, cfg.JWTSecret, cfg.SessionTTL)

	wp := newWorkerPool(cfg.WorkerCount)
	defer wp.Stop()

	sched := scheduler.New(wp)
	if err := sched.Register(cfg.SessionSweepSpec, "session-sweep", scheduler.SweepSessions(identity)); err != nil {
		return fmt.Errorf("排程設定失敗: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	e := newEcho(cfg)
	router.Setup(e, db, redis, identity, cfg)

	if cfg.Development {
		e.GET("/swagger/*", echoSwagger.WrapHandler)
		e.Logger.Info(console.Rainbow("Swagger enabled at /swagger/index.html"))
	}
	return startServer(e, cfg.Addr())
}

func main() {
	if err := run(); err != nil {
		log.Print(err)
		exitFunc(1)
	}
}
