package analytics

import (
	"context"
	"fmt"

	"github.com/de-tools/aurascale/pkg/adapters"
	"github.com/de-tools/aurascale/pkg/models/domain"
	"github.com/de-tools/aurascale/pkg/store/sqlite/resource"
	"github.com/rs/zerolog"
)

// Service reads the resource catalog joined with its cost records.
type Service interface {
	Resources(ctx context.Context) domain.AnalyticsResult
}

// Pinger reports whether the store is reachable. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type defaultService struct {
	pinger    Pinger
	resources resource.Store
}

func NewService(pinger Pinger, resources resource.Store) (Service, error) {
	if pinger == nil {
		return nil, fmt.Errorf("pinger is nil")
	}
	if resources == nil {
		return nil, fmt.Errorf("resource store is nil")
	}
	return &defaultService{pinger: pinger, resources: resources}, nil
}

func (s *defaultService) Resources(ctx context.Context) domain.AnalyticsResult {
	logger := zerolog.Ctx(ctx)

	if err := s.pinger.PingContext(ctx); err != nil {
		logger.Error().Err(err).Msg("analytics store unreachable")
		return domain.AnalyticsFailure{
			Reason:  domain.FailureStoreUnavailable,
			Message: domain.AnalyticsFailureMessage,
			Err:     err,
		}
	}

	records, err := s.resources.ListWithCosts(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("analytics query failed")
		return domain.AnalyticsFailure{
			Reason:  domain.FailureQueryFailed,
			Message: domain.AnalyticsFailureMessage,
			Err:     err,
		}
	}

	resources := make([]domain.Resource, 0, len(records))
	for _, record := range records {
		resources = append(resources, adapters.MapStoreResourceWithCostsToDomain(record))
	}

	logger.Debug().Int("resources", len(resources)).Msg("analytics loaded")
	return domain.AnalyticsSuccess{Resources: resources}
}
