package seed

import "github.com/de-tools/aurascale/pkg/models/domain"

type CatalogEntry struct {
	Name        string
	Type        string
	Provider    string
	Environment string
	Status      domain.ResourceStatus
}

const defaultEnvironment = "Production"

// DefaultCatalog is the fixed fleet written by every seed run.
func DefaultCatalog() []CatalogEntry {
	return []CatalogEntry{
		{Name: "Core-API-Gateway", Type: "Microservice", Provider: "AWS"},
		{Name: "Global-Edge-Cache", Type: "CDN", Provider: "Cloudflare"},
		{Name: "User-Auth-Service", Type: "Microservice", Provider: "Azure"},
		{Name: "BigQuery-Analytics", Type: "Database", Provider: "GCP"},
		{Name: "S3-User-Assets", Type: "Storage", Provider: "AWS"},
	}
}

func (e CatalogEntry) withDefaults() CatalogEntry {
	if e.Environment == "" {
		e.Environment = defaultEnvironment
	}
	if e.Status == "" {
		e.Status = domain.ResourceStatusHealthy
	}
	return e
}
