package cache

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// Cache 封裝 Redis 操作，僅保留限流腳本與健康檢查所需的方法
// 測試時以 FakeCache 替換
type Cache interface {
	Eval(ctx context.Context, script string, keys []string, args ...any) *redis.Cmd
	Ping(ctx context.Context) *redis.StatusCmd
	Close() error
}

type FakeCache struct {
	EvalFn  func(ctx context.Context, script string, keys []string, args ...any) *redis.Cmd
	PingFn  func(ctx context.Context) *redis.StatusCmd
	CloseFn func() error
}

// Eval 執行 Fake 設定或 panic
func (f *FakeCache) Eval(ctx context.Context, script string, keys []string, args ...any) *redis.Cmd {
	if f.EvalFn != nil {
		return f.EvalFn(ctx, script, keys, args...)
	}
	panic("unexpected Eval")
}

// Ping 未設定時回傳 PONG
func (f *FakeCache) Ping(ctx context.Context) *redis.StatusCmd {
	if f.PingFn != nil {
		return f.PingFn(ctx)
	}
	return redis.NewStatusResult("PONG", nil)
}

// Close 執行 Fake 設定或 no-op
func (f *FakeCache) Close() error {
	if f.CloseFn != nil {
		return f.CloseFn()
	}
	return nil
}
