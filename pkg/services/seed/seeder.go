package seed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/de-tools/aurascale/pkg/adapters"
	"github.com/de-tools/aurascale/pkg/models/domain"
	"github.com/de-tools/aurascale/pkg/store/sqlite"
	"github.com/de-tools/aurascale/pkg/store/sqlite/cost"
	"github.com/de-tools/aurascale/pkg/store/sqlite/resource"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	minAmountCents int64 = 100_00
	maxAmountCents int64 = 2000_00
)

type Summary struct {
	DeletedResources int64
	DeletedCosts     int64
	Resources        int
	Costs            int
	Total            domain.Money
	FinishedAt       time.Time
}

type Seeder struct {
	db        *sql.DB
	resources resource.Store
	costs     cost.Store

	catalog []CatalogEntry
	rnd     *rand.Rand
	now     func() time.Time
	newID   func() string
}

type Option func(*Seeder)

func WithCatalog(catalog []CatalogEntry) Option {
	return func(s *Seeder) { s.catalog = catalog }
}

func WithRand(rnd *rand.Rand) Option {
	return func(s *Seeder) { s.rnd = rnd }
}

func WithClock(now func() time.Time) Option {
	return func(s *Seeder) { s.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(s *Seeder) { s.newID = newID }
}

func NewSeeder(db *sql.DB, resources resource.Store, costs cost.Store, opts ...Option) (*Seeder, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	if resources == nil || costs == nil {
		return nil, fmt.Errorf("resource and cost stores are required")
	}

	s := &Seeder{
		db:        db,
		resources: resources,
		costs:     costs,
		catalog:   DefaultCatalog(),
		rnd:       rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), rand.Uint64())),
		now:       func() time.Time { return time.Now().UTC() },
		newID:     func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Run replaces the stored fleet with the catalog, one cost record per
// resource. Everything happens in one transaction: on error nothing changes.
func (s *Seeder) Run(ctx context.Context) (Summary, error) {
	logger := zerolog.Ctx(ctx)
	var summary Summary

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return summary, fmt.Errorf("begin seed transaction: %w", err)
	}
	committed := false
	defer func() {
		if committed {
			return
		}
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			logger.Warn().Err(err).Msg("failed to roll back seed transaction")
		}
	}()
	txCtx := sqlite.WithTransaction(ctx, tx)

	logger.Info().Msg("cleaning existing records")
	// Costs reference resources, so they go first.
	if summary.DeletedCosts, err = s.costs.DeleteAll(txCtx); err != nil {
		return summary, err
	}
	if summary.DeletedResources, err = s.resources.DeleteAll(txCtx); err != nil {
		return summary, err
	}

	logger.Info().Int("resources", len(s.catalog)).Msg("generating fresh cloud data")
	for _, entry := range s.catalog {
		entry = entry.withDefaults()
		if !entry.Status.Valid() {
			return summary, fmt.Errorf("catalog entry %q: unknown status %q", entry.Name, entry.Status)
		}
		now := s.now()

		res := domain.Resource{
			ID:          s.newID(),
			Name:        entry.Name,
			Type:        entry.Type,
			Provider:    entry.Provider,
			Environment: entry.Environment,
			Status:      entry.Status,
		}
		storeRes := adapters.MapDomainResourceToStore(res)
		storeRes.CreatedAt = now
		if err := s.resources.Add(txCtx, storeRes); err != nil {
			return summary, err
		}

		metric := domain.CostMetric{
			ID:         s.newID(),
			ResourceID: res.ID,
			Amount:     s.randomAmount(),
			Timestamp:  now,
		}
		if err := s.costs.Add(txCtx, adapters.MapDomainCostMetricToStore(metric)); err != nil {
			return summary, err
		}

		summary.Resources++
		summary.Costs++
		summary.Total = summary.Total.Add(metric.Amount)
		logger.Info().
			Str("resource", res.Name).
			Str("provider", res.Provider).
			Float64("amount", metric.Amount.Dollars()).
			Msg("seeded resource")
	}

	if err := tx.Commit(); err != nil {
		return summary, fmt.Errorf("commit seed transaction: %w", err)
	}
	committed = true
	summary.FinishedAt = s.now()

	logger.Info().
		Int("resources", summary.Resources).
		Int("costs", summary.Costs).
		Float64("total", summary.Total.Dollars()).
		Msg("seeding successful")
	return summary, nil
}

// randomAmount draws uniformly from [100.00, 2000.00] in whole cents.
func (s *Seeder) randomAmount() domain.Money {
	return domain.Money{Cents: minAmountCents + s.rnd.Int64N(maxAmountCents-minAmountCents+1)}
}
