package customers

import (
	"net/http"

	"crm-api/internal/api"
	"crm-api/internal/database"

	"github.com/labstack/echo/v4"
)

// DeleteCustomerHandler 刪除並回傳被刪除的客戶
// @Summary     Delete customer
// @Tags        customers
// @Produce     json
// @Param       id  path     int true "Customer ID"
// @Success     200 {object} api.CustomerResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /customers/{id} [delete]
func DeleteCustomerHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		u, err := owner(c)
		if err != nil {
			return err
		}
		id, err := customerID(c)
		if err != nil {
			return err
		}

		cust, err := deleteCustomer(c.Request().Context(), db, u.ID, id)
		if err != nil {
			return storeError(err)
		}
		return c.JSON(http.StatusOK, api.CustomerResponse{
			Message:  "Customer deleted successfully",
			Customer: *cust,
		})
	}
}
