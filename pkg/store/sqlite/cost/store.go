package cost

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/de-tools/aurascale/pkg/models/store"
	"github.com/de-tools/aurascale/pkg/store/sqlite"
	"github.com/rs/zerolog"
)

type Store interface {
	Add(ctx context.Context, metric store.CostMetric) error
	DeleteAll(ctx context.Context) (int64, error)
	Count(ctx context.Context) (int64, error)
	ListByResource(ctx context.Context, resourceID string) ([]store.CostMetric, error)
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

func (s *defaultStore) Add(ctx context.Context, m store.CostMetric) error {
	if m.AmountCents < 0 {
		return fmt.Errorf("insert cost metric for %s: negative amount %d", m.ResourceID, m.AmountCents)
	}

	_, err := sqlite.Conn(ctx, s.db).ExecContext(ctx, `
		INSERT INTO cost_metrics (id, resource_id, amount_cents, recorded_at)
		VALUES (?, ?, ?, ?)`,
		m.ID, m.ResourceID, m.AmountCents, m.RecordedAt,
	)
	if err != nil {
		return fmt.Errorf("insert cost metric for %s: %w", m.ResourceID, err)
	}
	return nil
}

func (s *defaultStore) DeleteAll(ctx context.Context) (int64, error) {
	res, err := sqlite.Conn(ctx, s.db).ExecContext(ctx, `DELETE FROM cost_metrics`)
	if err != nil {
		return 0, fmt.Errorf("delete cost metrics: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete cost metrics: %w", err)
	}
	return n, nil
}

func (s *defaultStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := sqlite.Conn(ctx, s.db).QueryRowContext(ctx, `SELECT COUNT(*) FROM cost_metrics`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count cost metrics: %w", err)
	}
	return n, nil
}

func (s *defaultStore) ListByResource(ctx context.Context, resourceID string) ([]store.CostMetric, error) {
	rows, err := sqlite.Conn(ctx, s.db).QueryContext(ctx, `
		SELECT id, resource_id, amount_cents, recorded_at
		FROM cost_metrics
		WHERE resource_id = ?
		ORDER BY rowid`, resourceID)
	if err != nil {
		return nil, fmt.Errorf("query cost metrics for %s: %w", resourceID, err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("failed to close cost metric rows")
		}
	}(rows)

	metrics := make([]store.CostMetric, 0)
	for rows.Next() {
		var m store.CostMetric
		if err := rows.Scan(&m.ID, &m.ResourceID, &m.AmountCents, &m.RecordedAt); err != nil {
			return nil, fmt.Errorf("scan cost metric: %w", err)
		}
		metrics = append(metrics, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cost metrics: %w", err)
	}
	return metrics, nil
}
