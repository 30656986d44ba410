// File: pkg/client/state.go
package client

import "sync"

// Session 本地保存的登入狀態
type Session struct {
	Token string
	User  User
}

// CustomerState 本地客戶清單，於每次變更成功後就地更新而不重新抓取
type CustomerState struct {
	mu         sync.RWMutex
	customers  []Customer
	pagination Pagination
}

// Snapshot 回傳目前清單的複本與分頁資訊
func (s *CustomerState) Snapshot() ([]Customer, Pagination) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Customer, len(s.customers))
	copy(out, s.customers)
	return out, s.pagination
}

// Find 依 id 取本地資料
func (s *CustomerState) Find(id int) (Customer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.customers {
		if c.ID == id {
			return c, true
		}
	}
	return Customer{}, false
}

// Reset 清空清單，登出或 session 失效時呼叫
func (s *CustomerState) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers = nil
	s.pagination = Pagination{}
}

func (s *CustomerState) load(list []Customer, p Pagination) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers = append([]Customer(nil), list...)
	s.pagination = p
}

// prepend 新建立的客戶排在最前面，與伺服器 newest-first 排序一致
func (s *CustomerState) prepend(c Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers = append([]Customer{c}, s.customers...)
	s.pagination.Total++
	s.pagination.Pages = pages(s.pagination.Total, s.pagination.Limit)
}

func (s *CustomerState) replace(c Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.customers {
		if s.customers[i].ID == c.ID {
			s.customers[i] = c
			return
		}
	}
}

func (s *CustomerState) remove(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.customers {
		if s.customers[i].ID == id {
			s.customers = append(s.customers[:i], s.customers[i+1:]...)
			if s.pagination.Total > 0 {
				s.pagination.Total--
			}
			s.pagination.Pages = pages(s.pagination.Total, s.pagination.Limit)
			return
		}
	}
}

func pages(total, limit int) int {
	if limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
