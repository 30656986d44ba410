// File: internal/handler/errors.go
package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"crm-api/internal/api"
	"crm-api/internal/service"
	"crm-api/internal/store"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

var errInternal = api.NewError(http.StatusInternalServerError,
	"Internal server error", "Something went wrong on our end")

// ErrorHandler 所有錯誤在這裡決定狀態碼並輸出 {error, message}
// production 環境不回傳 500 的細節
func ErrorHandler(env string, logger *zap.Logger) echo.HTTPErrorHandler {
	production := env == "production"
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		apiErr := toAPIError(err, c)
		if apiErr.Status >= http.StatusInternalServerError {
			logger.Error("request failed",
				zap.Error(err),
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			)
			if production {
				apiErr = errInternal
			}
		}

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(apiErr.Status)
		} else {
			werr = c.JSON(apiErr.Status, apiErr.Response())
		}
		if werr != nil {
			logger.Error("write error response", zap.Error(werr))
		}
	}
}

func toAPIError(err error, c echo.Context) *api.Error {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return fromHTTPError(he, c)
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return api.NewError(http.StatusBadRequest, "Validation failed", validationMessage(ve))
	}

	switch {
	case errors.Is(err, store.ErrNotFound):
		return api.NewError(http.StatusNotFound, "Not found", "The requested resource does not exist")
	case errors.Is(err, store.ErrConflict):
		return api.NewError(http.StatusConflict, "Resource already exists", "A record with the same unique value already exists")
	case errors.Is(err, store.ErrInvalidReference):
		return api.NewError(http.StatusBadRequest, "Invalid reference", "Referenced record does not exist")
	case errors.Is(err, store.ErrMissingField):
		return api.NewError(http.StatusBadRequest, "Missing required field", "A required field is missing")
	case errors.Is(err, store.ErrValueTooLong):
		return api.NewError(http.StatusBadRequest, "Validation failed", "A value exceeds the maximum allowed length")
	case errors.Is(err, service.ErrTokenExpired):
		return api.NewError(http.StatusUnauthorized, "Token expired", "Please login again")
	case errors.Is(err, service.ErrInvalidToken):
		return api.NewError(http.StatusUnauthorized, "Invalid token", "The provided token is invalid")
	case errors.Is(err, service.ErrInvalidCredentials):
		return api.NewError(http.StatusUnauthorized, "Invalid credentials", "Email or password is incorrect")
	case errors.Is(err, service.ErrUnauthenticated):
		return api.NewError(http.StatusUnauthorized, "Access denied", "Authentication required")
	}
	return api.NewError(http.StatusInternalServerError, "Internal server error", err.Error()).WithCause(err)
}

func fromHTTPError(he *echo.HTTPError, c echo.Context) *api.Error {
	switch he.Code {
	case http.StatusNotFound:
		return api.NewError(http.StatusNotFound, "Route not found",
			fmt.Sprintf("Cannot %s %s", c.Request().Method, c.Request().URL.RequestURI()))
	case http.StatusMethodNotAllowed:
		return api.NewError(he.Code, "Method not allowed",
			fmt.Sprintf("Cannot %s %s", c.Request().Method, c.Request().URL.Path))
	case http.StatusRequestEntityTooLarge:
		return api.NewError(he.Code, "Payload too large", "Request body exceeds the allowed size")
	}
	msg := http.StatusText(he.Code)
	if s, ok := he.Message.(string); ok && s != "" {
		msg = s
	}
	code := http.StatusText(he.Code)
	if code == "" {
		code = "Error"
	}
	return api.NewError(he.Code, code, msg)
}

func validationMessage(ve validator.ValidationErrors) string {
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		field := fe.Field()
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "notblank":
			msgs = append(msgs, field+" must not be blank")
		case "email":
			msgs = append(msgs, field+" must be a valid email address")
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s characters", field, fe.Param()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s characters", field, fe.Param()))
		default:
			msgs = append(msgs, field+" is invalid")
		}
	}
	return strings.Join(msgs, "; ")
}
