// File: internal/handler/customers/customers.go
package customers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"crm-api/internal/api"
	"crm-api/internal/middleware"
	"crm-api/internal/model"
	"crm-api/internal/service"
	"crm-api/internal/store"

	"github.com/labstack/echo/v4"
)

var (
	listCustomers  = store.ListCustomers
	getCustomer    = store.GetCustomer
	createCustomer = store.CreateCustomer
	updateCustomer = store.UpdateCustomer
	deleteCustomer = store.DeleteCustomer
)

var (
	errCustomerNotFound = api.NewError(http.StatusNotFound,
		"Customer not found", "The requested customer does not exist")
	errEmailExists = api.NewError(http.StatusConflict,
		"Email already exists", "A customer with this email already exists")
	errInvalidID = api.NewError(http.StatusBadRequest,
		"Invalid customer ID", "Customer ID must be a positive integer")
)

// owner 只從 RequireAuth 放入的使用者取得，不接受 client 傳入
func owner(c echo.Context) (*model.User, error) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return nil, service.ErrUnauthenticated
	}
	return u, nil
}

func customerID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		return 0, errInvalidID
	}
	return id, nil
}

// storeError 不存在與不屬於自己的客戶回應完全相同
func storeError(err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return errCustomerNotFound.WithCause(err)
	case errors.Is(err, store.ErrConflict):
		return errEmailExists.WithCause(err)
	}
	return err
}

func parseListQuery(c echo.Context) (model.ListQuery, error) {
	q := model.ListQuery{
		Page:   store.DefaultPage,
		Limit:  store.DefaultLimit,
		Search: strings.TrimSpace(c.QueryParam("search")),
	}
	if v := c.QueryParam("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil || page < 1 {
			return q, api.NewError(http.StatusBadRequest, "Invalid query parameter", "page must be a positive integer")
		}
		q.Page = page
	}
	if v := c.QueryParam("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 || limit > store.MaxLimit {
			return q, api.NewError(http.StatusBadRequest, "Invalid query parameter",
				"limit must be an integer between 1 and "+strconv.Itoa(store.MaxLimit))
		}
		q.Limit = limit
	}
	return q, nil
}
