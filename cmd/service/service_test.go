package main

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"crm-api/internal/cache"
	"crm-api/internal/config"
	"crm-api/internal/database"
	"crm-api/internal/logger"
	"crm-api/internal/worker"
)

func restoreGlobals() {
	loadConfig = func() (*config.Config, error) { return config.Load() }
	newLogger = logger.New
	newPgxPool = database.NewPgxPool
	newRedisClient = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	rollbackFn = database.RollbackAll
	startServer = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	shutdownServer = func(ctx context.Context, e *echo.Echo) error { return e.Shutdown(ctx) }
	newWorkerPool = worker.NewPool
	exitFunc = os.Exit
}

func testConfig() *config.Config {
	return &config.Config{
		AppEnv:          config.EnvTest,
		HTTPAddr:        ":0",
		DatabaseURL:     "db",
		JWTSecret:       "secret",
		JWTTTL:          time.Hour,
		BcryptCost:      4,
		RedisDB:         1,
		WorkerCount:     1,
		AuthRateLimit:   5,
		AuthRateWindow:  time.Minute,
		CORSOrigins:     []string{"*"},
		ShutdownTimeout: time.Second,
	}
}

// stubInfra 以 fake 取代所有外部資源
func stubInfra(t *testing.T, cfg *config.Config) map[string]bool {
	t.Helper()
	called := make(map[string]bool)
	loadConfig = func() (*config.Config, error) { return cfg, nil }
	newLogger = func(string) (*zap.Logger, error) { return zap.NewNop(), nil }
	newPgxPool = func(ctx context.Context, url string) (database.DB, error) {
		called["pgx"] = true
		require.Equal(t, cfg.DatabaseURL, url)
		return &database.FakeDB{CloseFn: func() { called["dbClose"] = true }}, nil
	}
	newRedisClient = func(addr, pwd string, db int) (cache.Cache, error) {
		called["redis"] = true
		require.Equal(t, cfg.RedisAddr, addr)
		require.Equal(t, cfg.RedisPassword, pwd)
		require.Equal(t, cfg.RedisDB, db)
		return &cache.FakeCache{CloseFn: func() error { called["redisClose"] = true; return nil }}, nil
	}
	runMigrationsFn = func(string) error { called["migrate"] = true; return nil }
	rollbackFn = func(string) error { called["rollback"] = true; return nil }
	startServer = func(*echo.Echo, string) error { called["start"] = true; return nil }
	return called
}

func TestRunSuccessWithRedis(t *testing.T) {
	t.Cleanup(restoreGlobals)
	cfg := testConfig()
	cfg.RedisAddr = "127"
	cfg.RedisPassword = "pw"
	called := stubInfra(t, cfg)

	require.NoError(t, run(context.Background(), nil))
	require.True(t, called["pgx"])
	require.True(t, called["redis"])
	require.True(t, called["migrate"])
	require.True(t, called["start"])
	require.True(t, called["dbClose"])
	require.True(t, called["redisClose"])
	require.False(t, called["rollback"])
}

func TestRunWithoutRedis(t *testing.T) {
	t.Cleanup(restoreGlobals)
	called := stubInfra(t, testConfig())

	var routes []string
	startServer = func(e *echo.Echo, _ string) error {
		for _, r := range e.Routes() {
			routes = append(routes, r.Method+" "+r.Path)
		}
		return nil
	}

	require.NoError(t, run(context.Background(), nil))
	require.False(t, called["redis"])
	require.True(t, called["dbClose"])
	require.Contains(t, routes, "POST /api/auth/login")
	require.Contains(t, routes, "GET /api/customers/:id")
	require.Contains(t, routes, "GET /metrics")
}

func TestRunMigrateDown(t *testing.T) {
	t.Cleanup(restoreGlobals)
	called := stubInfra(t, testConfig())

	require.NoError(t, run(context.Background(), []string{"-migrate-down"}))
	require.True(t, called["rollback"])
	require.False(t, called["pgx"])
	require.False(t, called["start"])

	rollbackFn = func(string) error { return errors.New("rollback") }
	require.ErrorContains(t, run(context.Background(), []string{"-migrate-down"}), "rollback")
}

func TestRunGracefulShutdown(t *testing.T) {
	t.Cleanup(restoreGlobals)
	stubInfra(t, testConfig())

	stopped := make(chan struct{})
	startServer = func(*echo.Echo, string) error {
		<-stopped
		return nil
	}
	var shutdownCalled bool
	shutdownServer = func(ctx context.Context, _ *echo.Echo) error {
		shutdownCalled = true
		_, ok := ctx.Deadline()
		require.True(t, ok)
		close(stopped)
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, run(ctx, nil))
	require.True(t, shutdownCalled)
}

func TestRunErrors(t *testing.T) {
	t.Cleanup(restoreGlobals)
	cfg := testConfig()
	cfg.RedisAddr = "addr"
	stubInfra(t, cfg)

	require.Error(t, run(context.Background(), []string{"-unknown"}))

	loadConfig = func() (*config.Config, error) { return nil, errors.New("config") }
	require.ErrorContains(t, run(context.Background(), nil), "config")
	loadConfig = func() (*config.Config, error) { return cfg, nil }

	newLogger = func(string) (*zap.Logger, error) { return nil, errors.New("logger") }
	require.ErrorContains(t, run(context.Background(), nil), "logger")
	newLogger = func(string) (*zap.Logger, error) { return zap.NewNop(), nil }

	newPgxPool = func(context.Context, string) (database.DB, error) { return nil, errors.New("db") }
	require.ErrorContains(t, run(context.Background(), nil), "db")
	newPgxPool = func(context.Context, string) (database.DB, error) { return &database.FakeDB{}, nil }

	runMigrationsFn = func(string) error { return errors.New("migrate") }
	require.ErrorContains(t, run(context.Background(), nil), "migrate")
	runMigrationsFn = func(string) error { return nil }

	newRedisClient = func(string, string, int) (cache.Cache, error) { return nil, errors.New("redis") }
	require.ErrorContains(t, run(context.Background(), nil), "redis")
	newRedisClient = func(string, string, int) (cache.Cache, error) { return &cache.FakeCache{}, nil }

	startServer = func(*echo.Echo, string) error { return errors.New("start") }
	require.ErrorContains(t, run(context.Background(), nil), "start")

	shutdownServer = func(context.Context, *echo.Echo) error { return errors.New("shutdown") }
	stopped := make(chan struct{})
	startServer = func(*echo.Echo, string) error { <-stopped; return nil }
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorContains(t, run(ctx, nil), "shutdown")
	close(stopped)
}

func TestRunLoadsEnvironment(t *testing.T) {
	t.Cleanup(restoreGlobals)
	stubInfra(t, testConfig())
	loadConfig = func() (*config.Config, error) { return config.Load() }

	t.Setenv("APP_ENV", config.EnvTest)
	t.Setenv("DATABASE_URL", "postgres://env")
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("BCRYPT_COST", "4")
	t.Setenv("REDIS_ADDR", "")
	var gotURL string
	newPgxPool = func(_ context.Context, url string) (database.DB, error) {
		gotURL = url
		return &database.FakeDB{}, nil
	}
	require.NoError(t, run(context.Background(), nil))
	require.Equal(t, "postgres://env", gotURL)

	t.Setenv("JWT_SECRET", "")
	require.Error(t, run(context.Background(), nil))
}

func TestMainExit(t *testing.T) {
	t.Cleanup(restoreGlobals)
	args := os.Args
	t.Cleanup(func() { os.Args = args })
	os.Args = []string{"service"}

	stubInfra(t, testConfig())
	exitCode := 0
	exitFunc = func(code int) { exitCode = code }
	main()
	require.Equal(t, 0, exitCode)

	newPgxPool = func(context.Context, string) (database.DB, error) { return nil, errors.New("fail") }
	main()
	require.Equal(t, 1, exitCode)
}
