package resource

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/de-tools/aurascale/pkg/models/store"
	"github.com/de-tools/aurascale/pkg/store/sqlite"
	"github.com/rs/zerolog"
)

// Store persists resources. Writes join the transaction bound to ctx via
// sqlite.WithTransaction when there is one.
type Store interface {
	Add(ctx context.Context, resource store.Resource) error
	DeleteAll(ctx context.Context) (int64, error)
	Count(ctx context.Context) (int64, error)
	List(ctx context.Context) ([]store.Resource, error)
	// ListWithCosts returns every resource with its cost records, both in insertion order.
	ListWithCosts(ctx context.Context) ([]store.ResourceWithCosts, error)
}

type defaultStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &defaultStore{db: db}, nil
}

func (s *defaultStore) Add(ctx context.Context, r store.Resource) error {
	createdAt := r.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := sqlite.Conn(ctx, s.db).ExecContext(ctx, `
		INSERT INTO resources (id, name, type, provider, environment, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Name, r.Type, r.Provider, r.Environment, r.Status, createdAt,
	)
	if err != nil {
		return fmt.Errorf("insert resource %q: %w", r.Name, err)
	}
	return nil
}

func (s *defaultStore) DeleteAll(ctx context.Context) (int64, error) {
	res, err := sqlite.Conn(ctx, s.db).ExecContext(ctx, `DELETE FROM resources`)
	if err != nil {
		return 0, fmt.Errorf("delete resources: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete resources: %w", err)
	}
	return n, nil
}

func (s *defaultStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := sqlite.Conn(ctx, s.db).QueryRowContext(ctx, `SELECT COUNT(*) FROM resources`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count resources: %w", err)
	}
	return n, nil
}

func (s *defaultStore) List(ctx context.Context) ([]store.Resource, error) {
	rows, err := sqlite.Conn(ctx, s.db).QueryContext(ctx, `
		SELECT id, name, type, provider, environment, status, created_at
		FROM resources
		ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query resources: %w", err)
	}
	defer closeRows(ctx, rows)

	resources := make([]store.Resource, 0)
	for rows.Next() {
		var r store.Resource
		if err := rows.Scan(&r.ID, &r.Name, &r.Type, &r.Provider, &r.Environment, &r.Status, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan resource: %w", err)
		}
		resources = append(resources, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate resources: %w", err)
	}
	return resources, nil
}

func (s *defaultStore) ListWithCosts(ctx context.Context) ([]store.ResourceWithCosts, error) {
	rows, err := sqlite.Conn(ctx, s.db).QueryContext(ctx, `
		SELECT r.id, r.name, r.type, r.provider, r.environment, r.status, r.created_at,
		       c.id, c.amount_cents, c.recorded_at
		FROM resources AS r
		LEFT JOIN cost_metrics AS c ON c.resource_id = r.id
		ORDER BY r.rowid, c.rowid`)
	if err != nil {
		return nil, fmt.Errorf("query resources with costs: %w", err)
	}
	defer closeRows(ctx, rows)

	result := make([]store.ResourceWithCosts, 0)
	for rows.Next() {
		var (
			r          store.Resource
			costID     sql.NullString
			amount     sql.NullInt64
			recordedAt sql.NullTime
		)
		if err := rows.Scan(
			&r.ID, &r.Name, &r.Type, &r.Provider, &r.Environment, &r.Status, &r.CreatedAt,
			&costID, &amount, &recordedAt,
		); err != nil {
			return nil, fmt.Errorf("scan resource with costs: %w", err)
		}

		if n := len(result); n == 0 || result[n-1].Resource.ID != r.ID {
			result = append(result, store.ResourceWithCosts{
				Resource: r,
				Costs:    make([]store.CostMetric, 0, 1),
			})
		}
		if !costID.Valid {
			continue
		}
		last := &result[len(result)-1]
		last.Costs = append(last.Costs, store.CostMetric{
			ID:          costID.String,
			ResourceID:  r.ID,
			AmountCents: amount.Int64,
			RecordedAt:  recordedAt.Time,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate resources with costs: %w", err)
	}
	return result, nil
}

func closeRows(ctx context.Context, rows *sql.Rows) {
	if err := rows.Close(); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("failed to close resource rows")
	}
}
