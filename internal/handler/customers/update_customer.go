// File: internal/handler/customers/update_customer.go
package customers

import (
	"net/http"

	"crm-api/internal/api"
	"crm-api/internal/database"
	"crm-api/internal/handler"

	"github.com/labstack/echo/v4"
)

// UpdateCustomerHandler 部分更新；未傳的欄位保留原值
// @Summary     Update customer
// @Description 只更新有傳入的欄位，選填欄位傳空字串代表清除
// @Tags        customers
// @Accept      json
// @Produce     json
// @Param       id   path     int                       true "Customer ID"
// @Param       body body     api.UpdateCustomerRequest true "要更新的欄位"
// @Success     200  {object} api.CustomerResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     404  {object} api.ErrorResponse
// @Failure     409  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /customers/{id} [put]
func UpdateCustomerHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		u, err := owner(c)
		if err != nil {
			return err
		}
		id, err := customerID(c)
		if err != nil {
			return err
		}
		var req api.UpdateCustomerRequest
		if err := handler.BindAndValidate(c, &req); err != nil {
			return err
		}

		cust, err := updateCustomer(c.Request().Context(), db, u.ID, id, req.Patch())
		if err != nil {
			return storeError(err)
		}
		return c.JSON(http.StatusOK, api.CustomerResponse{
			Message:  "Customer updated successfully",
			Customer: *cust,
		})
	}
}
