package api

import "crm-api/internal/model"

// swagger:model api.CustomerResponse
type CustomerResponse struct {
	Message  string         `json:"message" example:"Customer retrieved successfully"`
	Customer model.Customer `json:"customer"`
}

// swagger:model api.CustomerListResponse
type CustomerListResponse struct {
	Message    string           `json:"message" example:"Customers retrieved successfully"`
	Customers  []model.Customer `json:"customers"`
	Pagination model.Pagination `json:"pagination"`
}
