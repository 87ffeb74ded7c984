package domain

import "time"

type ResourceStatus string

const (
	ResourceStatusHealthy  ResourceStatus = "healthy"
	ResourceStatusDegraded ResourceStatus = "degraded"
	ResourceStatusOffline  ResourceStatus = "offline"
)

func (s ResourceStatus) Valid() bool {
	switch s {
	case ResourceStatusHealthy, ResourceStatusDegraded, ResourceStatusOffline:
		return true
	}
	return false
}

type Resource struct {
	ID          string
	Name        string         // Core-API-Gateway
	Type        string         // Microservice
	Provider    string         // AWS
	Environment string         // Production
	Status      ResourceStatus // healthy
	Costs       []CostMetric   // insertion order, first is the latest observation shown
}

type CostMetric struct {
	ID         string
	ResourceID string
	Amount     Money
	Timestamp  time.Time
}
