// File: internal/handler/auth/auth.go
package auth

import (
	"context"

	"crm-api/internal/metrics"
	"crm-api/internal/model"
)

// Authenticator 由 service.AuthService 實作
type Authenticator interface {
	Register(ctx context.Context, name, email, password string) (*model.User, error)
	Login(ctx context.Context, email, password string) (*model.User, error)
}

// TokenIssuer 由 service.TokenService 實作
type TokenIssuer interface {
	Issue(userID int) (string, error)
}

// Handlers 集中 auth 路由需要的相依
type Handlers struct {
	Auth    Authenticator
	Tokens  TokenIssuer
	Metrics *metrics.Metrics
}
