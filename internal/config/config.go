// Package config 讀取服務啟動所需的環境變數
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL   string
	RedisAddr     string
	RedisDB       int
	RedisPassword string
	JWTSecret     string
	Port          string
	Development   bool

	SessionTTL         time.Duration
	WorkerCount        int
	AuthRateLimit      int
	AuthRateWindow     time.Duration
	IssueTypesCacheTTL time.Duration
	SessionSweepSpec   string
}

// Addr 回傳 echo 監聽位址
func (c *Config) Addr() string {
	return ":" + c.Port
}

var loadDotenv = godotenv.Load

// Load 先載入工作目錄下的 .env（若存在），再讀取環境變數
func Load() (*Config, error) {
	if err := loadDotenv(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("載入 .env 失敗: %w", err)
	}

	cfg := &Config{
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		Port:             getEnv("PORT", "3000"),
		Development:      os.Getenv("DEVELOPMENT") == "true",
		SessionSweepSpec: getEnv("SESSION_SWEEP_SPEC", "@every 1h"),
	}

	var err error
	if cfg.DatabaseURL, err = required("DATABASE_URL"); err != nil {
		return nil, err
	}
	if cfg.RedisAddr, err = required("REDIS_ADDR"); err != nil {
		return nil, err
	}
	if cfg.JWTSecret, err = required("JWT_SECRET"); err != nil {
		return nil, err
	}

	if cfg.RedisDB, err = intEnv("REDIS_DB", 0, 0); err != nil {
		return nil, err
	}
	if cfg.WorkerCount, err = intEnv("WORKER_COUNT", 1, 1); err != nil {
		return nil, err
	}
	if cfg.AuthRateLimit, err = intEnv("AUTH_RATE_LIMIT", 5, 1); err != nil {
		return nil, err
	}

	if cfg.SessionTTL, err = durationEnv("SESSION_TTL", 168*time.Hour); err != nil {
		return nil, err
	}
	if cfg.AuthRateWindow, err = durationEnv("AUTH_RATE_WINDOW", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.IssueTypesCacheTTL, err = durationEnv("ISSUE_TYPES_CACHE_TTL", 5*time.Minute); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func required(key string) (string, error) {
	v := os.Getenv(key)
	if v == "" {
		return "", fmt.Errorf("環境變數 %s 未設定", key)
	}
	return v, nil
}

// intEnv 解析整數變數，未設定時回傳 fallback；小於 min 視為無效
func intEnv(key string, fallback, min int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("無效的 %s: %v", key, err)
	}
	if n < min {
		return 0, fmt.Errorf("無效的 %s: 必須 >= %d", key, min)
	}
	return n, nil
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("無效的 %s: %v", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("無效的 %s: 必須大於 0", key)
	}
	return d, nil
}
