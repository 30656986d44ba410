// File: internal/api/customer_request.go
package api

import "crm-api/internal/model"

// swagger:model api.CreateCustomerRequest
type CreateCustomerRequest struct {
	Name    string  `json:"name" validate:"required,notblank,max=255" example:"Acme Corp"`
	Email   string  `json:"email" validate:"required,email,max=255" example:"sales@acme.com"`
	Phone   *string `json:"phone,omitempty" validate:"omitempty,max=20" example:"+1-555-0100"`
	Company *string `json:"company,omitempty" validate:"omitempty,max=255" example:"Acme"`
	Notes   *string `json:"notes,omitempty" validate:"omitempty,max=1000" example:"Met at expo"`
}

func (r CreateCustomerRequest) Input() model.CustomerInput {
	return model.CustomerInput{
		Name:    r.Name,
		Email:   r.Email,
		Phone:   r.Phone,
		Company: r.Company,
		Notes:   r.Notes,
	}
}

// UpdateCustomerRequest 未出現的欄位保留原值；選填欄位送 "" 代表清除
// swagger:model api.UpdateCustomerRequest
type UpdateCustomerRequest struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,notblank,max=255" example:"Acme Corp"`
	Email   *string `json:"email,omitempty" validate:"omitempty,email,max=255" example:"sales@acme.com"`
	Phone   *string `json:"phone,omitempty" validate:"omitempty,max=20" example:"+1-555-0100"`
	Company *string `json:"company,omitempty" validate:"omitempty,max=255" example:"Acme"`
	Notes   *string `json:"notes,omitempty" validate:"omitempty,max=1000" example:"Renewal in Q3"`
}

func (r UpdateCustomerRequest) Patch() model.CustomerPatch {
	return model.CustomerPatch{
		Name:    r.Name,
		Email:   r.Email,
		Phone:   r.Phone,
		Company: r.Company,
		Notes:   r.Notes,
	}
}

// ListCustomersQuery 以字串接收，handler 自行解析才能回 400
type ListCustomersQuery struct {
	Page   string `query:"page"`
	Limit  string `query:"limit"`
	Search string `query:"search"`
}
