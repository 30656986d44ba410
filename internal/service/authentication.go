// File: internal/service/authentication.go
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"crm-api/internal/database"
	"crm-api/internal/model"
	"crm-api/internal/store"
)

var (
	createUser     = store.CreateUser
	getUserByEmail = store.GetUserByEmail
)

// AuthService 處理註冊與登入
type AuthService struct {
	db     database.DB
	hasher *PasswordHasher

	dummyMu   sync.Mutex
	dummyHash string
}

const dummyPassword = "crm-api:no-such-user"


func NewAuthService(db database.DB, hasher *PasswordHasher) *AuthService {
	return &AuthService{db: db, hasher: hasher}
}

// Register 建立帳號；email 重複時回傳 store.ErrConflict
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*model.User, error) {
	hash, err := s.hasher.Hash(ctx, password)
	if err != nil {
		return nil, fmt.Errorf("Register: %w", err)
	}
	u, err := createUser(ctx, s.db, &model.User{
		Name:         strings.TrimSpace(name),
		Email:        strings.TrimSpace(email),
		PasswordHash: hash,
	})
	if err != nil {
		return nil, fmt.Errorf("Register: %w", err)
	}
	return u, nil
}

// Login 驗證帳密，不區分「帳號不存在」與「密碼錯誤」
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, error) {
	u, err := getUserByEmail(ctx, s.db, strings.TrimSpace(email))
	if errors.Is(err, store.ErrNotFound) {
		// 仍跑一次 bcrypt，讓回應時間與密碼錯誤相近
		hash, err := s.fallbackHash()
		if err != nil {
			return nil, fmt.Errorf("Login: %w", err)
		}
		if _, err := s.hasher.Compare(ctx, password, hash); err != nil {
			return nil, fmt.Errorf("Login: %w", err)
		}
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("Login: %w", err)
	}
	ok, err := s.hasher.Compare(ctx, password, u.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("Login: %w", err)
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// fallbackHash 不綁請求的 ctx；失敗時不快取，下次再算
func (s *AuthService) fallbackHash() (string, error) {
	s.dummyMu.Lock()
	defer s.dummyMu.Unlock()
	if s.dummyHash != "" {
		return s.dummyHash, nil
	}
	hash, err := s.hasher.Hash(context.Background(), dummyPassword)
	if err != nil {
		return "", err
	}
	s.dummyHash = hash
	return hash, nil
}
