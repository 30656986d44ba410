// File: internal/service/password.go
package service

import (
	"context"
	"fmt"

	"crm-api/internal/worker"

	"golang.org/x/crypto/bcrypt"
)

var (
	bcryptGenerateFromPassword   = bcrypt.GenerateFromPassword
	bcryptCompareHashAndPassword = bcrypt.CompareHashAndPassword
)

// PasswordHasher 把 bcrypt 工作丟進 worker pool，限制同時運算的數量
type PasswordHasher struct {
	cost int
	pool worker.Pool
}

// NewPasswordHasher pool 為 nil 時直接在呼叫端執行
func NewPasswordHasher(cost int, pool worker.Pool) (*PasswordHasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost %d out of range [%d,%d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	return &PasswordHasher{cost: cost, pool: pool}, nil
}

// Hash 接收明文密碼，回傳 bcrypt 哈希字串
func (h *PasswordHasher) Hash(ctx context.Context, password string) (string, error) {
	var (
		out []byte
		err error
	)
	if runErr := h.run(ctx, func() {
		out, err = bcryptGenerateFromPassword([]byte(password), h.cost)
	}); runErr != nil {
		return "", fmt.Errorf("Hash: %w", runErr)
	}
	if err != nil {
		return "", fmt.Errorf("Hash: %w", err)
	}
	return string(out), nil
}

// Compare 比對明文與哈希；只有 ctx 結束時才回傳錯誤
func (h *PasswordHasher) Compare(ctx context.Context, password, hash string) (bool, error) {
	var ok bool
	if err := h.run(ctx, func() {
		ok = VerifyPassword(password, hash)
	}); err != nil {
		return false, fmt.Errorf("Compare: %w", err)
	}
	return ok, nil
}

// Verify 直接在呼叫端比對，不經過 pool
func (h *PasswordHasher) Verify(password, hash string) bool {
	return VerifyPassword(password, hash)
}

func (h *PasswordHasher) run(ctx context.Context, fn func()) error {
	if h.pool == nil {
		fn()
		return nil
	}
	done := make(chan struct{})
	if err := h.pool.SubmitContext(ctx, func() {
		defer close(done)
		fn()
	}); err != nil {
		return err
	}
	<-done
	return nil
}

// VerifyPassword 比對明文密碼與 bcrypt 哈希
func VerifyPassword(password, hash string) bool {
	return bcryptCompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
