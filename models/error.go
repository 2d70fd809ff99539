package models

// HealthCheckResponse returns the health check response struct
type HealthCheckResponse struct {
	Alive bool `json:"alive"`
}

// ErrorMessageResponse returns the error message response struct
type ErrorMessageResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
