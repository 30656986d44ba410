package store

import (
	"context"
	"fmt"
	"strings"

	"crm-api/internal/database"
	"crm-api/internal/model"

	"github.com/jackc/pgx/v5"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

const customerColumns = `id, name, email, phone, company, notes, user_id, created_at, updated_at`

func scanCustomer(row pgx.Row, c *model.Customer) error {
	return row.Scan(
		&c.ID,
		&c.Name,
		&c.Email,
		&c.Phone,
		&c.Company,
		&c.Notes,
		&c.UserID,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
}

// blankToNil 空字串視同未填
func blankToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

// escapeLike 跳脫 LIKE 萬用字元，搭配 ESCAPE '\'
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// ListCustomers 依 created_at 新到舊分頁列出 ownerID 的客戶，Search 比對 name 或 email
func ListCustomers(ctx context.Context, db database.DB, ownerID int, q model.ListQuery) (*model.CustomerPage, error) {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}

	where := `user_id = $1`
	args := []any{ownerID}
	if s := strings.TrimSpace(q.Search); s != "" {
		where += ` AND (name ILIKE $2 ESCAPE '\' OR email ILIKE $2 ESCAPE '\')`
		args = append(args, "%"+escapeLike(s)+"%")
	}

	var total int
	if err := db.QueryRow(ctx,
		`SELECT COUNT(*) FROM customers WHERE `+where,
		args...,
	).Scan(&total); err != nil {
		return nil, classify("ListCustomers", err)
	}

	meta := model.Pagination{
		Page:  q.Page,
		Limit: q.Limit,
		Total: total,
		Pages: (total + q.Limit - 1) / q.Limit,
	}
	// 超過最後一頁直接回空集合；OFFSET 也因此不會溢位
	if q.Page > meta.Pages {
		return &model.CustomerPage{Customers: []model.Customer{}, Pagination: meta}, nil
	}

	n := len(args)
	rows, err := db.Query(ctx,
		fmt.Sprintf(`SELECT %s FROM customers WHERE %s
		 ORDER BY created_at DESC, id DESC
		 LIMIT $%d OFFSET $%d`, customerColumns, where, n+1, n+2),
		append(args, q.Limit, (q.Page-1)*q.Limit)...,
	)
	if err != nil {
		return nil, classify("ListCustomers", err)
	}
	defer rows.Close()

	customers := make([]model.Customer, 0, q.Limit)
	for rows.Next() {
		var c model.Customer
		if err := scanCustomer(rows, &c); err != nil {
			return nil, classify("ListCustomers", err)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("ListCustomers", err)
	}

	return &model.CustomerPage{Customers: customers, Pagination: meta}, nil
}

// GetCustomer 不屬於 ownerID 的客戶一律視為不存在
func GetCustomer(ctx context.Context, db database.DB, ownerID, id int) (*model.Customer, error) {
	row := db.QueryRow(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE id = $1 AND user_id = $2`,
		id, ownerID,
	)
	c := &model.Customer{}
	if err := scanCustomer(row, c); err != nil {
		return nil, classify("GetCustomer", err)
	}
	return c, nil
}

func CreateCustomer(ctx context.Context, db database.DB, ownerID int, in model.CustomerInput) (*model.Customer, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO customers (name, email, phone, company, notes, user_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+customerColumns,
		strings.TrimSpace(in.Name),
		strings.TrimSpace(in.Email),
		blankToNil(in.Phone),
		blankToNil(in.Company),
		blankToNil(in.Notes),
		ownerID,
	)
	c := &model.Customer{}
	if err := scanCustomer(row, c); err != nil {
		return nil, classify("CreateCustomer", err)
	}
	return c, nil
}

// UpdateCustomer 只覆寫 patch 中非 nil 的欄位；選填欄位給空字串代表清除
func UpdateCustomer(ctx context.Context, db database.DB, ownerID, id int, p model.CustomerPatch) (*model.Customer, error) {
	trim := func(s *string) *string {
		if s == nil {
			return nil
		}
		v := strings.TrimSpace(*s)
		return &v
	}
	row := db.QueryRow(ctx,
		`UPDATE customers SET
		   name       = COALESCE($3, name),
		   email      = COALESCE($4, email),
		   phone      = CASE WHEN $5::text IS NULL THEN phone ELSE NULLIF($5, '') END,
		   company    = CASE WHEN $6::text IS NULL THEN company ELSE NULLIF($6, '') END,
		   notes      = CASE WHEN $7::text IS NULL THEN notes ELSE NULLIF($7, '') END,
		   updated_at = clock_timestamp()
		 WHERE id = $1 AND user_id = $2
		 RETURNING `+customerColumns,
		id, ownerID,
		trim(p.Name),
		trim(p.Email),
		trim(p.Phone),
		trim(p.Company),
		trim(p.Notes),
	)
	c := &model.Customer{}
	if err := scanCustomer(row, c); err != nil {
		return nil, classify("UpdateCustomer", err)
	}
	return c, nil
}

// DeleteCustomer 刪除並回傳被刪除的資料
func DeleteCustomer(ctx context.Context, db database.DB, ownerID, id int) (*model.Customer, error) {
	row := db.QueryRow(ctx,
		`DELETE FROM customers WHERE id = $1 AND user_id = $2
		 RETURNING `+customerColumns,
		id, ownerID,
	)
	c := &model.Customer{}
	if err := scanCustomer(row, c); err != nil {
		return nil, classify("DeleteCustomer", err)
	}
	return c, nil
}
