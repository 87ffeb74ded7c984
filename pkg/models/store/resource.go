package store

import "time"

type Resource struct {
	ID          string
	Name        string
	Type        string
	Provider    string
	Environment string
	Status      string
	CreatedAt   time.Time
}

type CostMetric struct {
	ID          string
	ResourceID  string
	AmountCents int64
	RecordedAt  time.Time
}

type ResourceWithCosts struct {
	Resource Resource
	Costs    []CostMetric
}
