// File: internal/middleware/ratelimit.go
package middleware

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"crm-api/internal/api"
	"crm-api/internal/cache"
	"crm-api/internal/metrics"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Limiter 判斷 key 是否仍有配額，拒絕時回傳建議的等待時間
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, time.Duration, error)
}

/* ---------- 記憶體版 (token bucket) ---------- */

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// MemoryLimiter 每個 key 一個 rate.Limiter，長時間未出現的 key 會被清掉
type MemoryLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	idle     time.Duration
	now      func() time.Time
	calls    int
}

// NewMemoryLimiter 允許 window 內最多 max 次，之後依比例回補
func NewMemoryLimiter(max int, window time.Duration) *MemoryLimiter {
	if max <= 0 {
		max = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &MemoryLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Every(window / time.Duration(max)),
		burst:    max,
		idle:     window,
		now:      time.Now,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, time.Duration, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.calls++
	if l.calls%1000 == 0 {
		for k, v := range l.visitors {
			if now.Sub(v.lastSeen) > l.idle {
				delete(l.visitors, k)
			}
		}
	}

	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[key] = v
	}
	v.lastSeen = now

	r := v.limiter.ReserveN(now, 1)
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return false, delay, nil
	}
	return true, 0, nil
}

/* ---------- Redis 版 (fixed window) ---------- */

const redisAllowScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return {current, redis.call("PTTL", KEYS[1])}
`

// RedisLimiter 多個 process 共用同一組計數
type RedisLimiter struct {
	client cache.Cache
	max    int
	window time.Duration
	prefix string
}

func NewRedisLimiter(client cache.Cache, max int, window time.Duration) *RedisLimiter {
	if max <= 0 {
		max = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RedisLimiter{client: client, max: max, window: window, prefix: "crm:rl:auth:"}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()

	res, err := l.client.Eval(ctx, redisAllowScript, []string{l.prefix + key}, l.window.Milliseconds()).Slice()
	if err != nil {
		return true, 0, fmt.Errorf("RedisLimiter.Allow: %w", err)
	}
	if len(res) != 2 {
		return true, 0, fmt.Errorf("RedisLimiter.Allow: unexpected reply %v", res)
	}
	count, _ := res[0].(int64)
	ttl, _ := res[1].(int64)
	if int(count) <= l.max {
		return true, 0, nil
	}
	if ttl < 0 {
		ttl = l.window.Milliseconds()
	}
	return false, time.Duration(ttl) * time.Millisecond, nil
}

/* ---------- middleware ---------- */

var errTooManyRequests = api.NewError(http.StatusTooManyRequests,
	"Too many requests", "Too many authentication attempts, please try again later")

// RateLimit 以 client IP 為 key；limiter 出錯時放行並記錄
func RateLimit(l Limiter, m *metrics.Metrics, logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ok, retryAfter, err := l.Allow(c.Request().Context(), c.RealIP())
			if err != nil {
				logger.Warn("rate limiter unavailable", zap.Error(err))
				return next(c)
			}
			if !ok {
				if m != nil {
					m.RateLimited.Inc()
				}
				secs := int(math.Ceil(retryAfter.Seconds()))
				if secs < 1 {
					secs = 1
				}
				c.Response().Header().Set("Retry-After", strconv.Itoa(secs))
				return errTooManyRequests
			}
			return next(c)
		}
	}
}
