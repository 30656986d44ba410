// File: internal/handler/customers/create_customer.go
package customers

import (
	"net/http"

	"crm-api/internal/api"
	"crm-api/internal/database"
	"crm-api/internal/handler"

	"github.com/labstack/echo/v4"
)

// CreateCustomerHandler 建立屬於目前使用者的客戶
// @Summary     Create customer
// @Description 同一使用者底下 email 不可重複
// @Tags        customers
// @Accept      json
// @Produce     json
// @Param       body body     api.CreateCustomerRequest true "客戶資料"
// @Success     201  {object} api.CustomerResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     409  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /customers [post]
func CreateCustomerHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		u, err := owner(c)
		if err != nil {
			return err
		}
		var req api.CreateCustomerRequest
		if err := handler.BindAndValidate(c, &req); err != nil {
			return err
		}

		cust, err := createCustomer(c.Request().Context(), db, u.ID, req.Input())
		if err != nil {
			return storeError(err)
		}
		return c.JSON(http.StatusCreated, api.CustomerResponse{
			Message:  "Customer created successfully",
			Customer: *cust,
		})
	}
}
