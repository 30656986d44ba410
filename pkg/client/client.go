// Package client 是 CRM API 的 Go 用戶端，保存登入 session 與本地客戶清單
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Client CRM API 用戶端，可同時被多個 goroutine 使用
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu      sync.RWMutex
	session *Session

	// Customers 在每次成功的客戶操作後同步更新
	Customers *CustomerState
}

type Option func(*Client)

// WithHTTPClient 替換預設的 http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithSession 以既有 token 還原登入狀態
func WithSession(s Session) Option {
	return func(c *Client) { c.session = &s }
}

// New baseURL 為伺服器根網址，例如 http://localhost:5000
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		Customers:  &CustomerState{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session 回傳目前的登入狀態
func (c *Client) Session() (Session, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.session == nil {
		return Session{}, false
	}
	return *c.session, true
}

func (c *Client) token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.session == nil {
		return ""
	}
	return c.session.Token
}

func (c *Client) setSession(s Session) {
	c.mu.Lock()
	c.session = &s
	c.mu.Unlock()
	c.Customers.Reset()
}

// clearSession 丟棄 token 與本地資料
func (c *Client) clearSession() {
	c.mu.Lock()
	c.session = nil
	c.mu.Unlock()
	c.Customers.Reset()
}

// clearSessionIf 只在 session 仍是送出請求時那一個才清除
func (c *Client) clearSessionIf(token string) {
	c.mu.Lock()
	if c.session == nil || c.session.Token != token {
		c.mu.Unlock()
		return
	}
	c.session = nil
	c.mu.Unlock()
	c.Customers.Reset()
}

// Register 註冊成功即視為已登入
func (c *Client) Register(ctx context.Context, name, email, password string) (*AuthResponse, error) {
	var out AuthResponse
	req := registerRequest{Name: name, Email: email, Password: password}
	if err := c.doRequest(ctx, http.MethodPost, "/api/auth/register", "", req, &out); err != nil {
		return nil, fmt.Errorf("client.Register: %w", err)
	}
	c.setSession(Session{Token: out.Token, User: out.User})
	return &out, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var out AuthResponse
	req := loginRequest{Email: email, Password: password}
	if err := c.doRequest(ctx, http.MethodPost, "/api/auth/login", "", req, &out); err != nil {
		return nil, fmt.Errorf("client.Login: %w", err)
	}
	c.setSession(Session{Token: out.Token, User: out.User})
	return &out, nil
}

// Profile 取得目前使用者並更新 session 內的資料
func (c *Client) Profile(ctx context.Context) (*User, error) {
	var out profileResponse
	if err := c.authed(ctx, http.MethodGet, "/api/auth/profile", nil, &out); err != nil {
		return nil, fmt.Errorf("client.Profile: %w", err)
	}
	c.mu.Lock()
	if c.session != nil {
		c.session.User = out.User
	}
	c.mu.Unlock()
	return &out.User, nil
}

// Logout 通知伺服器後一律丟棄本地 session
func (c *Client) Logout(ctx context.Context) error {
	token := c.token()
	if token == "" {
		c.clearSession()
		return nil
	}
	err := c.doRequest(ctx, http.MethodPost, "/api/auth/logout", token, nil, nil)
	c.clearSession()
	if err != nil && !IsStatus(err, http.StatusUnauthorized) {
		return fmt.Errorf("client.Logout: %w", err)
	}
	return nil
}

// ListOptions 零值欄位不送出，由伺服器套用預設
type ListOptions struct {
	Page   int
	Limit  int
	Search string
}

func (o ListOptions) encode() string {
	params := url.Values{}
	if o.Page > 0 {
		params.Set("page", strconv.Itoa(o.Page))
	}
	if o.Limit > 0 {
		params.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.Search != "" {
		params.Set("search", o.Search)
	}
	if len(params) == 0 {
		return ""
	}
	return "?" + params.Encode()
}

// ListCustomers 取得一頁客戶並取代本地清單
func (c *Client) ListCustomers(ctx context.Context, opts ListOptions) (*CustomerListResponse, error) {
	var out CustomerListResponse
	if err := c.authed(ctx, http.MethodGet, "/api/customers"+opts.encode(), nil, &out); err != nil {
		return nil, fmt.Errorf("client.ListCustomers: %w", err)
	}
	c.Customers.load(out.Customers, out.Pagination)
	return &out, nil
}

func (c *Client) GetCustomer(ctx context.Context, id int) (*Customer, error) {
	var out customerResponse
	if err := c.authed(ctx, http.MethodGet, customerPath(id), nil, &out); err != nil {
		return nil, fmt.Errorf("client.GetCustomer: %w", err)
	}
	c.Customers.replace(out.Customer)
	return &out.Customer, nil
}

func (c *Client) CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*Customer, error) {
	var out customerResponse
	if err := c.authed(ctx, http.MethodPost, "/api/customers", req, &out); err != nil {
		return nil, fmt.Errorf("client.CreateCustomer: %w", err)
	}
	c.Customers.prepend(out.Customer)
	return &out.Customer, nil
}

// UpdateCustomer 只送出非 nil 的欄位
func (c *Client) UpdateCustomer(ctx context.Context, id int, req UpdateCustomerRequest) (*Customer, error) {
	var out customerResponse
	if err := c.authed(ctx, http.MethodPut, customerPath(id), req, &out); err != nil {
		return nil, fmt.Errorf("client.UpdateCustomer: %w", err)
	}
	c.Customers.replace(out.Customer)
	return &out.Customer, nil
}

// DeleteCustomer 回傳刪除前的資料
func (c *Client) DeleteCustomer(ctx context.Context, id int) (*Customer, error) {
	var out customerResponse
	if err := c.authed(ctx, http.MethodDelete, customerPath(id), nil, &out); err != nil {
		return nil, fmt.Errorf("client.DeleteCustomer: %w", err)
	}
	c.Customers.remove(id)
	return &out.Customer, nil
}

func customerPath(id int) string {
	return "/api/customers/" + strconv.Itoa(id)
}

// authed 沒有 session 時不發送請求
func (c *Client) authed(ctx context.Context, method, path string, body, out any) error {
	token := c.token()
	if token == "" {
		return ErrNoSession
	}
	return c.doRequest(ctx, method, path, token, body, out)
}

// doRequest token 為空時不帶 Authorization；登入與註冊不沿用舊 session
func (c *Client) doRequest(ctx context.Context, method, path, token string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode >= 400 {
		// token 無效或過期，視為 session 結束
		if resp.StatusCode == http.StatusUnauthorized && token != "" {
			c.clearSessionIf(token)
		}
		return decodeError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func decodeError(resp *http.Response) error {
	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return &HTTPError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", err)}
	}
	var apiErr errorResponse
	if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error != "" {
		return &HTTPError{StatusCode: resp.StatusCode, Code: apiErr.Error, Message: apiErr.Message}
	}
	return &HTTPError{StatusCode: resp.StatusCode, Code: http.StatusText(resp.StatusCode), Message: string(respBody)}
}
