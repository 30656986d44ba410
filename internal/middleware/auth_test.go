package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"crm-api/internal/api"
	"crm-api/internal/database"
	"crm-api/internal/model"
	"crm-api/internal/service"
	"crm-api/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type fakeVerifier struct {
	id  int
	err error
	got string
}

func (f *fakeVerifier) Verify(token string) (int, error) {
	f.got = token
	return f.id, f.err
}

func newContext(auth string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func restore() {
	getUserByID = store.GetUserByID
}

func requireAPIError(t *testing.T, err error, status int, code string) {
	t.Helper()
	var apiErr *api.Error
	require.True(t, errors.As(err, &apiErr), "expected *api.Error, got %v", err)
	require.Equal(t, status, apiErr.Status)
	require.Equal(t, code, apiErr.Code)
}

func TestRequireAuth(t *testing.T) {
	t.Cleanup(restore)
	user := &model.User{ID: 2, Name: "Ann", Email: "ann@example.com"}
	getUserByID = func(_ context.Context, _ database.DB, id int) (*model.User, error) {
		if id == user.ID {
			return user, nil
		}
		return nil, store.ErrNotFound
	}
	next := func(c echo.Context) error {
		u, ok := CurrentUser(c)
		require.True(t, ok)
		return c.JSON(http.StatusOK, u.ID)
	}

	t.Run("success", func(t *testing.T) {
		v := &fakeVerifier{id: 2}
		ctx, rec := newContext("Bearer tok123")
		require.NoError(t, RequireAuth(v, &database.FakeDB{})(next)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "tok123", v.got)
	})

	t.Run("scheme is case insensitive", func(t *testing.T) {
		ctx, rec := newContext("bearer tok123")
		require.NoError(t, RequireAuth(&fakeVerifier{id: 2}, &database.FakeDB{})(next)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing header", func(t *testing.T) {
		ctx, _ := newContext("")
		err := RequireAuth(&fakeVerifier{}, &database.FakeDB{})(next)(ctx)
		requireAPIError(t, err, http.StatusUnauthorized, "Access denied")
		require.ErrorIs(t, err, service.ErrUnauthenticated)
	})

	t.Run("bad format", func(t *testing.T) {
		for _, h := range []string{"BadHeader", "Basic abc", "Bearer "} {
			ctx, _ := newContext(h)
			err := RequireAuth(&fakeVerifier{}, &database.FakeDB{})(next)(ctx)
			requireAPIError(t, err, http.StatusUnauthorized, "Access denied")
		}
	})

	t.Run("invalid token", func(t *testing.T) {
		ctx, _ := newContext("Bearer bad")
		err := RequireAuth(&fakeVerifier{err: service.ErrInvalidToken}, &database.FakeDB{})(next)(ctx)
		requireAPIError(t, err, http.StatusUnauthorized, "Invalid token")
		require.ErrorIs(t, err, service.ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		ctx, _ := newContext("Bearer old")
		err := RequireAuth(&fakeVerifier{err: service.ErrTokenExpired}, &database.FakeDB{})(next)(ctx)
		requireAPIError(t, err, http.StatusUnauthorized, "Token expired")
	})

	t.Run("user gone", func(t *testing.T) {
		ctx, _ := newContext("Bearer tok")
		err := RequireAuth(&fakeVerifier{id: 99}, &database.FakeDB{})(next)(ctx)
		requireAPIError(t, err, http.StatusUnauthorized, "Invalid token")
	})

	t.Run("db failure is not a 401", func(t *testing.T) {
		getUserByID = func(context.Context, database.DB, int) (*model.User, error) {
			return nil, errors.New("db down")
		}
		ctx, _ := newContext("Bearer tok")
		err := RequireAuth(&fakeVerifier{id: 2}, &database.FakeDB{})(next)(ctx)
		require.Error(t, err)
		var apiErr *api.Error
		require.False(t, errors.As(err, &apiErr))
	})
}

func TestCurrentUser(t *testing.T) {
	ctx, _ := newContext("")
	_, ok := CurrentUser(ctx)
	require.False(t, ok)

	ctx.Set(ContextUserKey, &model.User{ID: 1})
	u, ok := CurrentUser(ctx)
	require.True(t, ok)
	require.Equal(t, 1, u.ID)
}
