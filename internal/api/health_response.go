package api

// swagger:model api.HealthResponse
type HealthResponse struct {
	Status    string `json:"status" example:"OK"`
	Timestamp string `json:"timestamp" example:"2024-01-01T00:00:00Z"`
	Service   string `json:"service" example:"CRM API"`
	Version   string `json:"version" example:"1.0.0"`
}

// swagger:model api.ReadyResponse
type ReadyResponse struct {
	Status   string            `json:"status" example:"ready"`
	Services map[string]string `json:"services"`
}
