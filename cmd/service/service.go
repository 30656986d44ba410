// @title        CRM API
// @version      1.0.0
// @description  多租戶 CRM 後端 API：帳號認證與客戶資料管理
// @BasePath     /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
package main

//go:generate swag init -g cmd/service/service.go -d ../../ -o ../../docs

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"crm-api/internal/cache"
	"crm-api/internal/config"
	"crm-api/internal/database"
	"crm-api/internal/handler"
	"crm-api/internal/logger"
	"crm-api/internal/metrics"
	"crm-api/internal/middleware"
	"crm-api/internal/router"
	"crm-api/internal/service"
	"crm-api/internal/worker"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	_ "crm-api/docs" // 引入 swag 產出的 docs
)

var (
	loadConfig      = func() (*config.Config, error) { return config.Load() }
	newLogger       = logger.New
	newPgxPool      = database.NewPgxPool
	newRedisClient  = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	rollbackFn      = database.RollbackAll
	startServer     = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	shutdownServer  = func(ctx context.Context, e *echo.Echo) error { return e.Shutdown(ctx) }
	newWorkerPool   = worker.NewPool
	exitFunc        = os.Exit
)

// newEcho 組裝全域中介層
func newEcho(cfg *config.Config, zl *zap.Logger, m *metrics.Metrics) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Debug = !cfg.IsProduction()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = handler.ErrorHandler(cfg.AppEnv, zl)

	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.Metrics(m))
	e.Use(middleware.RequestLogger(zl))
	e.Use(echomw.Recover())
	e.Use(echomw.Secure())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	e.Use(echomw.BodyLimit("10M"))
	return e
}

func run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("service", flag.ContinueOnError)
	migrateDown := fs.Bool("migrate-down", false, "roll back every migration and exit")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("設定載入失敗: %w", err)
	}

	zl, err := newLogger(cfg.AppEnv)
	if err != nil {
		return fmt.Errorf("logger 建立失敗: %w", err)
	}
	defer func() { _ = zl.Sync() }()

	if *migrateDown {
		if err := rollbackFn(cfg.DatabaseURL); err != nil {
			return fmt.Errorf("Migration 回滾失敗: %w", err)
		}
		zl.Info("migrations rolled back")
		return nil
	}

	db, err := newPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %w", err)
	}
	defer db.Close()

	if err := runMigrationsFn(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("Migration 執行失敗: %w", err)
	}

	// Redis 為選用；未設定時限流改用記憶體版
	var (
		rdb     cache.Cache
		limiter middleware.Limiter = middleware.NewMemoryLimiter(cfg.AuthRateLimit, cfg.AuthRateWindow)
	)
	if cfg.RedisEnabled() {
		c, err := newRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return fmt.Errorf("Redis 連線失敗: %w", err)
		}
		defer c.Close()
		rdb = c
		limiter = middleware.NewRedisLimiter(c, cfg.AuthRateLimit, cfg.AuthRateWindow)
	}

	wp := newWorkerPool(cfg.WorkerCount)
	defer wp.Stop()

	tokens, err := service.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		return fmt.Errorf("token service 建立失敗: %w", err)
	}
	hasher, err := service.NewPasswordHasher(cfg.BcryptCost, wp)
	if err != nil {
		return fmt.Errorf("password hasher 建立失敗: %w", err)
	}

	m := metrics.New()
	e := newEcho(cfg, zl, m)
	router.Setup(e, router.Deps{
		DB:      db,
		Cache:   rdb,
		Auth:    service.NewAuthService(db, hasher),
		Tokens:  tokens,
		Limiter: limiter,
		Metrics: m,
		Logger:  zl,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- startServer(e, cfg.HTTPAddr)
	}()
	zl.Info("server started",
		zap.String("addr", cfg.HTTPAddr),
		zap.String("env", cfg.AppEnv),
		zap.Bool("redis", rdb != nil),
	)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("伺服器啟動失敗: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	zl.Info("shutting down", zap.Duration("timeout", cfg.ShutdownTimeout))
	sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := shutdownServer(sctx, e); err != nil {
		return fmt.Errorf("伺服器關閉失敗: %w", err)
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:])
	stop()
	if err != nil {
		log.Print(err)
		exitFunc(1)
	}
}
