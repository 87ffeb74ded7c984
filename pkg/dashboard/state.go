package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/de-tools/aurascale/pkg/models/domain"
	"github.com/rs/zerolog"
)

// ErrStaleResponse is returned by a Load that finished after a newer Load
// had started. Its result is discarded.
var ErrStaleResponse = errors.New("analytics response superseded by a newer load")

// Fetcher is satisfied by *client.AnalyticsClient.
type Fetcher interface {
	FetchAnalytics(ctx context.Context) (domain.AnalyticsResult, error)
}

type State struct {
	fetcher Fetcher
	now     func() time.Time

	mu        sync.Mutex
	resources []domain.Resource
	loading   bool
	loaded    bool
	query     string
	lastErr   error
	updatedAt time.Time
	seq       uint64
}

type Snapshot struct {
	Resources []domain.Resource
	Visible   []domain.Resource
	Total     domain.Money
	Trend     []TrendPoint
	Loading   bool
	Loaded    bool
	Query     string
	LastError error
	UpdatedAt time.Time
}

func NewState(fetcher Fetcher) *State {
	return &State{
		fetcher:   fetcher,
		now:       time.Now,
		resources: []domain.Resource{},
	}
}

// Load fetches the catalog and replaces the list. On error the previous list
// is kept and the error is recorded as LastError.
func (s *State) Load(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)

	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.loading = true
	s.mu.Unlock()

	result, err := s.fetcher.FetchAnalytics(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.seq {
		logger.Debug().Uint64("seq", seq).Uint64("latest", s.seq).Msg("discarding stale analytics response")
		return ErrStaleResponse
	}
	s.loading = false

	if err != nil {
		logger.Error().Err(err).Msg("failed to load analytics")
		s.lastErr = err
		return err
	}

	switch r := result.(type) {
	case domain.AnalyticsSuccess:
		s.resources = r.Resources
		if s.resources == nil {
			s.resources = []domain.Resource{}
		}
		s.lastErr = nil
		s.loaded = true
		s.updatedAt = s.now()
		logger.Debug().Int("resources", len(s.resources)).Msg("analytics loaded")
		return nil
	case domain.AnalyticsFailure:
		logger.Error().
			Err(r.Err).
			Str("reason", string(r.Reason)).
			Msg(r.Message)
		s.lastErr = r
		return r
	default:
		s.lastErr = fmt.Errorf("unexpected analytics result %T", result)
		return s.lastErr
	}
}

func (s *State) Refresh(ctx context.Context) error {
	zerolog.Ctx(ctx).Info().Msg("refreshing analytics")
	return s.Load(ctx)
}

func (s *State) SetQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = query
}

func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	resources := make([]domain.Resource, len(s.resources))
	copy(resources, s.resources)
	total := TotalSpend(resources)

	return Snapshot{
		Resources: resources,
		Visible:   Filter(resources, s.query),
		Total:     total,
		Trend:     Trend(total, s.now()),
		Loading:   s.loading,
		Loaded:    s.loaded,
		Query:     s.query,
		LastError: s.lastErr,
		UpdatedAt: s.updatedAt,
	}
}
