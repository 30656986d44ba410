// File: internal/api/error.go
package api

import "fmt"

// swagger:model api.ErrorResponse
type ErrorResponse struct {
	Error   string `json:"error" example:"Customer not found"`
	Message string `json:"message" example:"The requested customer does not exist"`
}

// Error 攜帶 HTTP 狀態與回應內容，由 handler.ErrorHandler 統一輸出
type Error struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func NewError(status int, code, message string) *Error {
	return &Error{Status: status, Code: code, Message: message}
}

// WithCause 保留底層錯誤供 log 與 errors.Is 使用
func (e *Error) WithCause(err error) *Error {
	cp := *e
	cp.Err = err
	return &cp
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%d %s: %v", e.Status, e.Code, e.Err)
	}
	return fmt.Sprintf("%d %s: %s", e.Status, e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Response() ErrorResponse {
	return ErrorResponse{Error: e.Code, Message: e.Message}
}
