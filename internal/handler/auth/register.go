// File: internal/handler/auth/register.go
package auth

import (
	"errors"
	"net/http"

	"crm-api/internal/api"
	"crm-api/internal/handler"
	"crm-api/internal/store"

	"github.com/labstack/echo/v4"
)

var errUserExists = api.NewError(http.StatusConflict,
	"User already exists", "An account with this email already exists")

// Register 建立帳號並直接回傳 token
// @Summary     Register
// @Description 建立新帳號，成功後回傳使用者與存取令牌
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     api.RegisterRequest true "註冊資料"
// @Success     201  {object} api.AuthResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     409  {object} api.ErrorResponse
// @Failure     429  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Router      /auth/register [post]
func (h *Handlers) Register() echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.RegisterRequest
		if err := handler.BindAndValidate(c, &req); err != nil {
			h.Metrics.AuthEvent("register", "invalid")
			return err
		}

		user, err := h.Auth.Register(c.Request().Context(), req.Name, req.Email, req.Password)
		if errors.Is(err, store.ErrConflict) {
			h.Metrics.AuthEvent("register", "conflict")
			return errUserExists.WithCause(err)
		}
		if err != nil {
			h.Metrics.AuthEvent("register", "error")
			return err
		}

		token, err := h.Tokens.Issue(user.ID)
		if err != nil {
			return err
		}
		h.Metrics.AuthEvent("register", "success")
		return c.JSON(http.StatusCreated, api.AuthResponse{
			Message: "User registered successfully",
			User:    api.NewUserResponse(user, false),
			Token:   token,
		})
	}
}
