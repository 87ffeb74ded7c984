package api

import "time"

type CostMetric struct {
	ID        string    `json:"id,omitempty"`
	Amount    float64   `json:"amount"`
	Timestamp time.Time `json:"timestamp"`
}

type Resource struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Type        string       `json:"type"`
	Provider    string       `json:"provider"`
	Environment string       `json:"environment,omitempty"`
	Status      string       `json:"status"`
	Costs       []CostMetric `json:"costs"`
}

// AnalyticsResponse is the envelope of GET /api/analytics as seen by a
// reader: Data is only present on success, Reason, Message and Error only on
// failure.
type AnalyticsResponse struct {
	Success bool       `json:"success"`
	Data    []Resource `json:"data,omitempty"`
	Reason  string     `json:"reason,omitempty"`
	Message string     `json:"message,omitempty"`
	Error   string     `json:"error,omitempty"`
}

// AnalyticsSuccessResponse always carries a data array, empty included.
type AnalyticsSuccessResponse struct {
	Success bool       `json:"success"`
	Data    []Resource `json:"data"`
}

type AnalyticsFailureResponse struct {
	Success bool   `json:"success"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
