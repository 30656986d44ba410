package store

import (
	"time"

	"crm-api/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

/* ---------- 假實作 ---------- */

// fakeRow 實作 pgx.Row，依 dest 數量決定要填哪種資料
type fakeRow struct {
	scanErr  error
	user     *model.User
	customer *model.Customer
	count    int
}

func (r *fakeRow) Scan(dest ...any) error {
	if r.scanErr != nil {
		return r.scanErr
	}
	switch len(dest) {
	case 9:
		fillCustomer(r.customer, dest)
	case 5:
		u := r.user
		*dest[0].(*int) = u.ID
		*dest[1].(*string) = u.Name
		*dest[2].(*string) = u.Email
		*dest[3].(*string) = u.PasswordHash
		*dest[4].(*time.Time) = u.CreatedAt
	case 2:
		// CreateUser: id, created_at
		*dest[0].(*int) = r.user.ID
		*dest[1].(*time.Time) = r.user.CreatedAt
	case 1:
		*dest[0].(*int) = r.count
	default:
		panic("fakeRow.Scan: unexpected number of dest")
	}
	return nil
}

func fillCustomer(c *model.Customer, dest []any) {
	*dest[0].(*int) = c.ID
	*dest[1].(*string) = c.Name
	*dest[2].(*string) = c.Email
	*dest[3].(**string) = c.Phone
	*dest[4].(**string) = c.Company
	*dest[5].(**string) = c.Notes
	*dest[6].(*int) = c.UserID
	*dest[7].(*time.Time) = c.CreatedAt
	*dest[8].(*time.Time) = c.UpdatedAt
}

// fakeRows 實作 pgx.Rows
type fakeRows struct {
	data    []model.Customer
	idx     int
	scanErr error
	err     error
	closed  bool
}

func (r *fakeRows) Close()                                       { r.closed = true }
func (r *fakeRows) Err() error                                   { return r.err }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) Next() bool                                   { return r.idx < len(r.data) }
func (r *fakeRows) Scan(dest ...any) error {
	if r.scanErr != nil {
		return r.scanErr
	}
	fillCustomer(&r.data[r.idx], dest)
	r.idx++
	return nil
}
func (r *fakeRows) Values() ([]any, error) { return nil, nil }
func (r *fakeRows) RawValues() [][]byte    { return nil }
func (r *fakeRows) Conn() *pgx.Conn        { return nil }

func strPtr(s string) *string { return &s }
