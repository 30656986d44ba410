package customers

import (
	"net/http"

	"crm-api/internal/api"
	"crm-api/internal/database"

	"github.com/labstack/echo/v4"
)

// ListCustomersHandler 列出自己的客戶
// @Summary     List customers
// @Description 依建立時間新到舊分頁；search 以不分大小寫比對 name 或 email
// @Tags        customers
// @Produce     json
// @Param       page   query    int    false "頁碼 (從 1 開始)" default(1)
// @Param       limit  query    int    false "每頁筆數 (1-100)" default(10)
// @Param       search query    string false "搜尋字串"
// @Success     200    {object} api.CustomerListResponse
// @Failure     400    {object} api.ErrorResponse
// @Failure     401    {object} api.ErrorResponse
// @Failure     500    {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /customers [get]
func ListCustomersHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		u, err := owner(c)
		if err != nil {
			return err
		}
		q, err := parseListQuery(c)
		if err != nil {
			return err
		}

		page, err := listCustomers(c.Request().Context(), db, u.ID, q)
		if err != nil {
			return storeError(err)
		}
		return c.JSON(http.StatusOK, api.CustomerListResponse{
			Message:    "Customers retrieved successfully",
			Customers:  page.Customers,
			Pagination: page.Pagination,
		})
	}
}
