// File: internal/middleware/auth.go
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"crm-api/internal/api"
	"crm-api/internal/database"
	"crm-api/internal/model"
	"crm-api/internal/service"
	"crm-api/internal/store"

	"github.com/labstack/echo/v4"
)

const ContextUserKey = "user"

// TokenVerifier 由 service.TokenService 實作
type TokenVerifier interface {
	Verify(token string) (int, error)
}

var getUserByID = store.GetUserByID

var (
	errNoToken      = api.NewError(http.StatusUnauthorized, "Access denied", "No token provided")
	errBadHeader    = api.NewError(http.StatusUnauthorized, "Access denied", "Authorization header must be: Bearer <token>")
	errInvalidToken = api.NewError(http.StatusUnauthorized, "Invalid token", "The provided token is invalid")
	errExpiredToken = api.NewError(http.StatusUnauthorized, "Token expired", "Please login again")
	errUnknownUser  = api.NewError(http.StatusUnauthorized, "Invalid token", "User not found")
)

func bearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return "", errNoToken.WithCause(service.ErrUnauthenticated)
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", errBadHeader.WithCause(service.ErrUnauthenticated)
	}
	return strings.TrimSpace(parts[1]), nil
}

// RequireAuth 驗證 bearer token 並載入使用者；使用者 ID 只來自 token
func RequireAuth(tokens TokenVerifier, db database.DB) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, err := bearerToken(c)
			if err != nil {
				return err
			}
			userID, err := tokens.Verify(raw)
			if errors.Is(err, service.ErrTokenExpired) {
				return errExpiredToken.WithCause(err)
			}
			if err != nil {
				return errInvalidToken.WithCause(err)
			}
			user, err := getUserByID(c.Request().Context(), db, userID)
			if errors.Is(err, store.ErrNotFound) {
				return errUnknownUser.WithCause(service.ErrUnauthenticated)
			}
			if err != nil {
				return err
			}
			c.Set(ContextUserKey, user)
			return next(c)
		}
	}
}

// CurrentUser 取出 RequireAuth 放入的使用者
func CurrentUser(c echo.Context) (*model.User, bool) {
	u, ok := c.Get(ContextUserKey).(*model.User)
	return u, ok && u != nil
}
