package client

import (
	"errors"
	"fmt"
)

// HTTPError 伺服器回應非 2xx 時的錯誤，Code 與 Message 來自 {error, message}
type HTTPError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *HTTPError) Error() string {
	if e.Message == "" || e.Message == e.Code {
		return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Code)
	}
	return fmt.Sprintf("HTTP %d: %s: %s", e.StatusCode, e.Code, e.Message)
}

// IsStatus 判斷 err (含包裝) 是否為指定狀態碼的 HTTPError
func IsStatus(err error, code int) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == code
	}
	return false
}

// ErrNoSession 需要登入的呼叫在沒有 token 時直接拒絕
var ErrNoSession = errors.New("client: no active session")
