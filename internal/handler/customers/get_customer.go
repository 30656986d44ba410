package customers

import (
	"net/http"

	"crm-api/internal/api"
	"crm-api/internal/database"

	"github.com/labstack/echo/v4"
)

// GetCustomerHandler 取得單一客戶
// @Summary     Get customer
// @Tags        customers
// @Produce     json
// @Param       id  path     int true "Customer ID"
// @Success     200 {object} api.CustomerResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /customers/{id} [get]
func GetCustomerHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		u, err := owner(c)
		if err != nil {
			return err
		}
		id, err := customerID(c)
		if err != nil {
			return err
		}

		cust, err := getCustomer(c.Request().Context(), db, u.ID, id)
		if err != nil {
			return storeError(err)
		}
		return c.JSON(http.StatusOK, api.CustomerResponse{
			Message:  "Customer retrieved successfully",
			Customer: *cust,
		})
	}
}
