// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const (
	EnvProduction  = "production"
	EnvDevelopment = "development"
	EnvTest        = "test"

	// 正式環境的 bcrypt 最低成本
	MinProductionBcryptCost = 12
)

// Config 集中所有由環境變數提供的設定
type Config struct {
	AppEnv          string        `env:"APP_ENV" envDefault:"development"`
	HTTPAddr        string        `env:"HTTP_ADDR" envDefault:":5000"`
	DatabaseURL     string        `env:"DATABASE_URL,required"`
	JWTSecret       string        `env:"JWT_SECRET,required"`
	JWTTTL          time.Duration `env:"JWT_TTL" envDefault:"24h"`
	BcryptCost      int           `env:"BCRYPT_COST" envDefault:"12"`
	RedisAddr       string        `env:"REDIS_ADDR"`
	RedisPassword   string        `env:"REDIS_PASSWORD"`
	RedisDB         int           `env:"REDIS_DB" envDefault:"0"`
	WorkerCount     int           `env:"WORKER_COUNT" envDefault:"4"`
	AuthRateLimit   int           `env:"AUTH_RATE_LIMIT" envDefault:"20"`
	AuthRateWindow  time.Duration `env:"AUTH_RATE_WINDOW" envDefault:"15m"`
	CORSOrigins     []string      `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

var (
	godotenvLoad = godotenv.Load
	envParse     = func(v any) error { return env.Parse(v) }
)

// Load 先讀取 .env (可不存在)，再解析環境變數並檢查
func Load(files ...string) (*Config, error) {
	if err := godotenvLoad(files...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("Load: %w", err)
	}
	var cfg Config
	if err := envParse(&cfg); err != nil {
		return nil, fmt.Errorf("Load: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("Load: %w", err)
	}
	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == EnvProduction
}

func (c *Config) RedisEnabled() bool {
	return c.RedisAddr != ""
}

// Validate 檢查數值範圍
func (c *Config) Validate() error {
	var errs []error
	switch c.AppEnv {
	case EnvProduction, EnvDevelopment, EnvTest:
	default:
		errs = append(errs, fmt.Errorf("APP_ENV must be one of production, development, test; got %q", c.AppEnv))
	}
	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.JWTTTL <= 0 {
		errs = append(errs, fmt.Errorf("JWT_TTL must be positive, got %s", c.JWTTTL))
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("BCRYPT_COST must be within [%d,%d], got %d", bcrypt.MinCost, bcrypt.MaxCost, c.BcryptCost))
	} else if c.IsProduction() && c.BcryptCost < MinProductionBcryptCost {
		errs = append(errs, fmt.Errorf("BCRYPT_COST must be at least %d in production, got %d", MinProductionBcryptCost, c.BcryptCost))
	}
	if c.WorkerCount < 1 {
		errs = append(errs, fmt.Errorf("WORKER_COUNT must be at least 1, got %d", c.WorkerCount))
	}
	if c.AuthRateLimit < 1 {
		errs = append(errs, fmt.Errorf("AUTH_RATE_LIMIT must be at least 1, got %d", c.AuthRateLimit))
	}
	if c.AuthRateWindow <= 0 {
		errs = append(errs, fmt.Errorf("AUTH_RATE_WINDOW must be positive, got %s", c.AuthRateWindow))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %s", c.ShutdownTimeout))
	}
	if c.RedisDB < 0 {
		errs = append(errs, fmt.Errorf("REDIS_DB must not be negative, got %d", c.RedisDB))
	}
	return errors.Join(errs...)
}
