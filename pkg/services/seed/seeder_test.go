package seed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/de-tools/aurascale/pkg/models/store"
	"github.com/de-tools/aurascale/pkg/store/sqlite"
	"github.com/de-tools/aurascale/pkg/store/sqlite/cost"
	"github.com/de-tools/aurascale/pkg/store/sqlite/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)

type fixture struct {
	db        *sql.DB
	resources resource.Store
	costs     cost.Store
}

func setupFixture(t *testing.T) *fixture {
	db, err := sqlite.NewDB(context.Background(), sqlite.Settings{DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
	})

	resources, err := resource.NewStore(db)
	require.NoError(t, err)
	costs, err := cost.NewStore(db)
	require.NoError(t, err)

	return &fixture{db: db, resources: resources, costs: costs}
}

func (f *fixture) seeder(t *testing.T, opts ...Option) *Seeder {
	opts = append([]Option{
		WithRand(rand.New(rand.NewPCG(1, 2))),
		WithClock(func() time.Time { return fixedNow }),
	}, opts...)
	s, err := NewSeeder(f.db, f.resources, f.costs, opts...)
	require.NoError(t, err)
	return s
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%02d", n)
	}
}

func TestNewSeeder(t *testing.T) {
	f := setupFixture(t)

	t.Run("nil db", func(t *testing.T) {
		s, err := NewSeeder(nil, f.resources, f.costs)
		assert.Error(t, err)
		assert.Nil(t, s)
	})

	t.Run("missing stores", func(t *testing.T) {
		s, err := NewSeeder(f.db, nil, f.costs)
		assert.Error(t, err)
		assert.Nil(t, s)
	})
}

func TestSeeder_Run(t *testing.T) {
	ctx := context.Background()
	f := setupFixture(t)

	summary, err := f.seeder(t).Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, summary.Resources)
	assert.Equal(t, 5, summary.Costs)

	resources, err := f.resources.Count(ctx)
	require.NoError(t, err)
	costs, err := f.costs.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), resources)
	assert.Equal(t, resources, costs)

	records, err := f.resources.ListWithCosts(ctx)
	require.NoError(t, err)
	require.Len(t, records, 5)

	catalog := DefaultCatalog()
	var total int64
	for i, r := range records {
		assert.Equal(t, catalog[i].Name, r.Resource.Name)
		assert.Equal(t, catalog[i].Provider, r.Resource.Provider)
		assert.Equal(t, "Production", r.Resource.Environment)
		assert.Equal(t, "healthy", r.Resource.Status)

		require.Len(t, r.Costs, 1)
		amount := r.Costs[0].AmountCents
		assert.GreaterOrEqual(t, amount, int64(10000))
		assert.LessOrEqual(t, amount, int64(200000))
		assert.True(t, r.Costs[0].RecordedAt.Equal(fixedNow))
		total += amount
	}
	assert.Equal(t, total, summary.Total.Cents)
}

func TestSeeder_Run_ReplacesPreviousData(t *testing.T) {
	ctx := context.Background()
	f := setupFixture(t)

	_, err := f.seeder(t).Run(ctx)
	require.NoError(t, err)
	first, err := f.resources.List(ctx)
	require.NoError(t, err)

	summary, err := f.seeder(t).Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), summary.DeletedResources)
	assert.Equal(t, int64(5), summary.DeletedCosts)

	second, err := f.resources.List(ctx)
	require.NoError(t, err)
	require.Len(t, second, 5)

	firstIDs := make(map[string]bool, len(first))
	for _, r := range first {
		firstIDs[r.ID] = true
	}
	for _, r := range second {
		assert.False(t, firstIDs[r.ID], "resource %s survived reseed", r.Name)
	}

	costs, err := f.costs.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), costs)
}

func TestSeeder_Run_CustomCatalog(t *testing.T) {
	ctx := context.Background()
	f := setupFixture(t)

	catalog := []CatalogEntry{
		{Name: "Batch-Workers", Type: "Compute", Provider: "GCP", Environment: "Staging", Status: "degraded"},
	}
	summary, err := f.seeder(t, WithCatalog(catalog), WithIDGenerator(sequentialIDs())).Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Resources)

	records, err := f.resources.ListWithCosts(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "id-01", records[0].Resource.ID)
	assert.Equal(t, "Staging", records[0].Resource.Environment)
	assert.Equal(t, "degraded", records[0].Resource.Status)
	require.Len(t, records[0].Costs, 1)
	assert.Equal(t, "id-02", records[0].Costs[0].ID)
}

func TestSeeder_Run_RollsBackOnFailure(t *testing.T) {
	ctx := context.Background()
	f := setupFixture(t)

	existing := store.Resource{
		ID: "keep", Name: "Legacy", Type: "Microservice", Provider: "AWS",
		Environment: "Production", Status: "healthy",
	}
	require.NoError(t, f.resources.Add(ctx, existing))
	require.NoError(t, f.costs.Add(ctx, store.CostMetric{
		ID: "keep-cost", ResourceID: "keep", AmountCents: 4200, RecordedAt: fixedNow,
	}))

	// The third resource reuses an id and violates the primary key.
	ids := []string{"a", "a-cost", "b", "b-cost", "a"}
	next := 0
	newID := func() string {
		id := ids[next%len(ids)]
		next++
		return id
	}

	_, err := f.seeder(t, WithIDGenerator(newID)).Run(ctx)
	require.Error(t, err)

	records, err := f.resources.ListWithCosts(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "keep", records[0].Resource.ID)
	require.Len(t, records[0].Costs, 1)
	assert.Equal(t, int64(4200), records[0].Costs[0].AmountCents)
}

func TestSeeder_Run_SQLMock(t *testing.T) {
	ctx := context.Background()

	t.Run("insert failure rolls back", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		resources, err := resource.NewStore(db)
		require.NoError(t, err)
		costs, err := cost.NewStore(db)
		require.NoError(t, err)

		s, err := NewSeeder(db, resources, costs,
			WithRand(rand.New(rand.NewPCG(1, 2))),
			WithClock(func() time.Time { return fixedNow }),
			WithIDGenerator(sequentialIDs()),
		)
		require.NoError(t, err)

		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM cost_metrics").WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectExec("DELETE FROM resources").WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectExec("INSERT INTO resources").WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec("INSERT INTO cost_metrics").WillReturnError(errors.New("disk I/O error"))
		mock.ExpectRollback()

		_, err = s.Run(ctx)
		require.Error(t, err)
		assert.ErrorContains(t, err, "disk I/O error")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("begin failure", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		resources, err := resource.NewStore(db)
		require.NoError(t, err)
		costs, err := cost.NewStore(db)
		require.NoError(t, err)

		s, err := NewSeeder(db, resources, costs)
		require.NoError(t, err)

		mock.ExpectBegin().WillReturnError(errors.New("database is locked"))

		_, err = s.Run(ctx)
		assert.ErrorContains(t, err, "begin seed transaction")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("commit", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		resources, err := resource.NewStore(db)
		require.NoError(t, err)
		costs, err := cost.NewStore(db)
		require.NoError(t, err)

		s, err := NewSeeder(db, resources, costs,
			WithCatalog(DefaultCatalog()[:1]),
			WithRand(rand.New(rand.NewPCG(1, 2))),
			WithClock(func() time.Time { return fixedNow }),
		)
		require.NoError(t, err)

		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM cost_metrics").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("DELETE FROM resources").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("INSERT INTO resources").WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec("INSERT INTO cost_metrics").WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		summary, err := s.Run(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, summary.Resources)
		assert.Equal(t, fixedNow, summary.FinishedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSeeder_Run_RejectsUnknownStatus(t *testing.T) {
	ctx := context.Background()
	f := setupFixture(t)

	_, err := f.seeder(t).Run(ctx)
	require.NoError(t, err)

	catalog := []CatalogEntry{{Name: "Broken", Type: "CDN", Provider: "AWS", Status: "exploded"}}
	_, err = f.seeder(t, WithCatalog(catalog)).Run(ctx)
	assert.ErrorContains(t, err, `unknown status "exploded"`)

	resources, err := f.resources.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), resources)
}
