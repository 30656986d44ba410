package middleware

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"crm-api/internal/cache"
	"crm-api/internal/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMemoryLimiter(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewMemoryLimiter(2, time.Minute)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, _, err := l.Allow(ctx, "1.1.1.1")
		require.NoError(t, err)
		require.True(t, ok)
	}
	ok, wait, err := l.Allow(ctx, "1.1.1.1")
	require.NoError(t, err)
	require.False(t, ok)
	require.InDelta(t, 30*time.Second, wait, float64(time.Second))

	// 其他 IP 不受影響
	ok, _, _ = l.Allow(ctx, "2.2.2.2")
	require.True(t, ok)

	now = now.Add(30 * time.Second)
	ok, _, _ = l.Allow(ctx, "1.1.1.1")
	require.True(t, ok)
}

func TestRedisLimiter(t *testing.T) {
	var gotKeys []string
	var count int64
	fc := &cache.FakeCache{
		EvalFn: func(_ context.Context, script string, keys []string, args ...any) *redis.Cmd {
			require.Contains(t, script, "INCR")
			require.Equal(t, []any{int64(60000)}, args)
			gotKeys = keys
			count++
			return redis.NewCmdResult([]any{count, int64(45000)}, nil)
		},
	}
	l := NewRedisLimiter(fc, 2, time.Minute)

	for i := 0; i < 2; i++ {
		ok, _, err := l.Allow(context.Background(), "1.1.1.1")
		require.NoError(t, err)
		require.True(t, ok)
	}
	require.Equal(t, []string{"crm:rl:auth:1.1.1.1"}, gotKeys)

	ok, wait, err := l.Allow(context.Background(), "1.1.1.1")
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, 45*time.Second, wait)

	fc.EvalFn = func(context.Context, string, []string, ...any) *redis.Cmd {
		return redis.NewCmdResult(nil, errors.New("conn refused"))
	}
	ok, _, err = l.Allow(context.Background(), "1.1.1.1")
	require.Error(t, err)
	require.True(t, ok)
}

type stubLimiter struct {
	ok   bool
	wait time.Duration
	err  error
}

func (s stubLimiter) Allow(context.Context, string) (bool, time.Duration, error) {
	return s.ok, s.wait, s.err
}

func TestRateLimit(t *testing.T) {
	m := metrics.New()
	called := false
	next := func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	}

	ctx, rec := newContext("")
	err := RateLimit(stubLimiter{wait: 1500 * time.Millisecond}, m, zap.NewNop())(next)(ctx)
	requireAPIError(t, err, http.StatusTooManyRequests, "Too many requests")
	require.Equal(t, "2", rec.Header().Get("Retry-After"))
	require.False(t, called)
	require.Equal(t, 1.0, testutil.ToFloat64(m.RateLimited))

	ctx, rec = newContext("")
	require.NoError(t, RateLimit(stubLimiter{ok: true}, m, zap.NewNop())(next)(ctx))
	require.Equal(t, http.StatusOK, rec.Code)

	// limiter 故障時放行
	called = false
	ctx, _ = newContext("")
	require.NoError(t, RateLimit(stubLimiter{err: errors.New("redis down")}, nil, zap.NewNop())(next)(ctx))
	require.True(t, called)
}
