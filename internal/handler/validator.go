// File: internal/handler/validator.go
package handler

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"crm-api/internal/api"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/labstack/echo/v4"
)

// CustomValidator wraps go-playground/validator for Echo
// swagger:ignore
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator 驗證錯誤訊息使用 json 欄位名稱
func NewValidator() *CustomValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	// notblank: 只有空白的字串視同未填
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return &CustomValidator{validator: v}
}

// Validate calls the underlying validator
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// BindAndValidate 先 Bind 再驗證，失敗時回傳 400 的 api.Error
func BindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		msg := "Request body could not be parsed"
		var he *echo.HTTPError
		if errors.As(err, &he) {
			if s, ok := he.Message.(string); ok && s != "" {
				msg = s
			}
		}
		return api.NewError(http.StatusBadRequest, "Invalid request body", msg).WithCause(err)
	}
	if err := c.Validate(req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			return api.NewError(http.StatusBadRequest, "Validation failed", validationMessage(ve)).WithCause(err)
		}
		return api.NewError(http.StatusBadRequest, "Validation failed", err.Error()).WithCause(err)
	}
	return nil
}
