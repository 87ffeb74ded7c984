package adapters

import (
	"github.com/de-tools/aurascale/pkg/models/api"
	"github.com/de-tools/aurascale/pkg/models/domain"
	"github.com/de-tools/aurascale/pkg/models/store"
)

func MapStoreResourceWithCostsToDomain(record store.ResourceWithCosts) domain.Resource {
	resource := MapStoreResourceToDomain(record.Resource)
	resource.Costs = make([]domain.CostMetric, 0, len(record.Costs))
	for _, c := range record.Costs {
		resource.Costs = append(resource.Costs, MapStoreCostMetricToDomain(c))
	}
	return resource
}

func MapStoreResourceToDomain(r store.Resource) domain.Resource {
	return domain.Resource{
		ID:          r.ID,
		Name:        r.Name,
		Type:        r.Type,
		Provider:    r.Provider,
		Environment: r.Environment,
		Status:      domain.ResourceStatus(r.Status),
	}
}

func MapStoreCostMetricToDomain(c store.CostMetric) domain.CostMetric {
	return domain.CostMetric{
		ID:         c.ID,
		ResourceID: c.ResourceID,
		Amount:     domain.Money{Cents: c.AmountCents},
		Timestamp:  c.RecordedAt,
	}
}

func MapDomainResourceToStore(r domain.Resource) store.Resource {
	return store.Resource{
		ID:          r.ID,
		Name:        r.Name,
		Type:        r.Type,
		Provider:    r.Provider,
		Environment: r.Environment,
		Status:      string(r.Status),
	}
}

func MapDomainCostMetricToStore(c domain.CostMetric) store.CostMetric {
	return store.CostMetric{
		ID:          c.ID,
		ResourceID:  c.ResourceID,
		AmountCents: c.Amount.Cents,
		RecordedAt:  c.Timestamp,
	}
}

func MapResourceDomainToApi(r domain.Resource) api.Resource {
	apiResource := api.Resource{
		ID:          r.ID,
		Name:        r.Name,
		Type:        r.Type,
		Provider:    r.Provider,
		Environment: r.Environment,
		Status:      string(r.Status),
		Costs:       make([]api.CostMetric, 0, len(r.Costs)),
	}
	for _, c := range r.Costs {
		apiResource.Costs = append(apiResource.Costs, api.CostMetric{
			ID:        c.ID,
			Amount:    c.Amount.Dollars(),
			Timestamp: c.Timestamp,
		})
	}
	return apiResource
}

func MapResourcesDomainToApi(resources []domain.Resource) []api.Resource {
	out := make([]api.Resource, 0, len(resources))
	for _, r := range resources {
		out = append(out, MapResourceDomainToApi(r))
	}
	return out
}

func MapResourceApiToDomain(r api.Resource) domain.Resource {
	resource := domain.Resource{
		ID:          r.ID,
		Name:        r.Name,
		Type:        r.Type,
		Provider:    r.Provider,
		Environment: r.Environment,
		Status:      domain.ResourceStatus(r.Status),
		Costs:       make([]domain.CostMetric, 0, len(r.Costs)),
	}
	for _, c := range r.Costs {
		resource.Costs = append(resource.Costs, domain.CostMetric{
			ID:         c.ID,
			ResourceID: r.ID,
			Amount:     domain.MoneyFromDollars(c.Amount),
			Timestamp:  c.Timestamp,
		})
	}
	return resource
}
