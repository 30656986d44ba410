// File: internal/model/customer.go
package model

import "time"

// Customer 屬於單一使用者 (UserID) 的客戶資料
type Customer struct {
	ID        int       `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Phone     *string   `db:"phone" json:"phone"`
	Company   *string   `db:"company" json:"company"`
	Notes     *string   `db:"notes" json:"notes"`
	UserID    int       `db:"user_id" json:"user_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// CustomerInput 建立客戶時的欄位
type CustomerInput struct {
	Name    string
	Email   string
	Phone   *string
	Company *string
	Notes   *string
}

// CustomerPatch 部分更新；nil 欄位保留原值
type CustomerPatch struct {
	Name    *string
	Email   *string
	Phone   *string
	Company *string
	Notes   *string
}

// ListQuery 分頁與搜尋條件，Page 從 1 開始
type ListQuery struct {
	Page   int
	Limit  int
	Search string
}

type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

type CustomerPage struct {
	Customers  []Customer
	Pagination Pagination
}
