package auth

import (
	"net/http"

	"crm-api/internal/api"
	"crm-api/internal/middleware"
	"crm-api/internal/service"

	"github.com/labstack/echo/v4"
)

// Profile 回傳目前登入的使用者
// @Summary     Current user profile
// @Tags        auth
// @Produce     json
// @Success     200 {object} api.ProfileResponse
// @Failure     401 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /auth/profile [get]
func (h *Handlers) Profile() echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			return service.ErrUnauthenticated
		}
		return c.JSON(http.StatusOK, api.ProfileResponse{User: api.NewUserResponse(user, true)})
	}
}

// Logout token 為無狀態，伺服器端不做任何變更
// @Summary     Logout
// @Tags        auth
// @Produce     json
// @Success     200 {object} api.MessageResponse
// @Failure     401 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /auth/logout [post]
func (h *Handlers) Logout() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, api.MessageResponse{Message: "Logout successful"})
	}
}
