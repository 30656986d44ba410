// File: internal/handler/auth/login.go
package auth

import (
	"errors"
	"net/http"

	"crm-api/internal/api"
	"crm-api/internal/handler"
	"crm-api/internal/service"

	"github.com/labstack/echo/v4"
)

var errInvalidCredentials = api.NewError(http.StatusUnauthorized,
	"Invalid credentials", "Email or password is incorrect")

// Login 使用 Email/Password 驗證並回傳 JWT
// @Summary     Login
// @Description 帳號不存在與密碼錯誤回傳相同的 401
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     api.LoginRequest true "登入資料"
// @Success     200  {object} api.AuthResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     429  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Router      /auth/login [post]
func (h *Handlers) Login() echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.LoginRequest
		if err := handler.BindAndValidate(c, &req); err != nil {
			h.Metrics.AuthEvent("login", "invalid")
			return err
		}

		user, err := h.Auth.Login(c.Request().Context(), req.Email, req.Password)
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.Metrics.AuthEvent("login", "invalid_credentials")
			return errInvalidCredentials.WithCause(err)
		}
		if err != nil {
			h.Metrics.AuthEvent("login", "error")
			return err
		}

		token, err := h.Tokens.Issue(user.ID)
		if err != nil {
			return err
		}
		h.Metrics.AuthEvent("login", "success")
		return c.JSON(http.StatusOK, api.AuthResponse{
			Message: "Login successful",
			User:    api.NewUserResponse(user, false),
			Token:   token,
		})
	}
}
