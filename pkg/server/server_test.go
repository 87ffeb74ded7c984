package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/de-tools/aurascale/pkg/models/api"
	"github.com/de-tools/aurascale/pkg/models/domain"
	"github.com/de-tools/aurascale/pkg/services/analytics"
	"github.com/de-tools/aurascale/pkg/services/seed"
	"github.com/de-tools/aurascale/pkg/store/sqlite"
	"github.com/de-tools/aurascale/pkg/store/sqlite/cost"
	"github.com/de-tools/aurascale/pkg/store/sqlite/resource"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAnalytics struct {
	mock.Mock
}

func (m *mockAnalytics) Resources(ctx context.Context) domain.AnalyticsResult {
	args := m.Called(ctx)
	return args.Get(0).(domain.AnalyticsResult)
}

type panickingAnalytics struct{}

func (panickingAnalytics) Resources(context.Context) domain.AnalyticsResult {
	panic("boom")
}

func TestWebAPI_Endpoints(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	ts := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)

	svc := new(mockAnalytics)
	svc.On("Resources", mock.Anything).Return(domain.AnalyticsSuccess{Resources: []domain.Resource{{
		ID: "r1", Name: "Global-Edge-Cache", Type: "CDN", Provider: "Cloudflare",
		Environment: "Production", Status: domain.ResourceStatusHealthy,
		Costs: []domain.CostMetric{{ID: "c1", ResourceID: "r1", Amount: domain.Money{Cents: 50025}, Timestamp: ts}},
	}}})

	webAPI := NewWebAPI(logger, Config{
		Addr:            ":0",
		ShutdownTimeout: time.Second,
		Dependencies:    Dependencies{Analytics: svc},
	})
	testServer := httptest.NewServer(webAPI.Handler())
	defer testServer.Close()

	tests := []struct {
		name           string
		path           string
		expectedStatus int
		expected       interface{}
		parseResponse  func([]byte) (interface{}, error)
	}{
		{
			name:           "Health",
			path:           "/health",
			expectedStatus: http.StatusOK,
			expected:       apiHealth("AuraScale API is Healthy"),
			parseResponse:  unmarshalResponse[apiHealth](),
		},
		{
			name:           "GetAnalytics",
			path:           "/api/analytics",
			expectedStatus: http.StatusOK,
			expected: analyticsEnvelope{
				Success: true,
				Data: []analyticsResource{{
					ID: "r1", Name: "Global-Edge-Cache", Type: "CDN", Provider: "Cloudflare",
					Environment: "Production", Status: "healthy",
					Costs: []analyticsCost{{ID: "c1", Amount: 500.25, Timestamp: ts}},
				}},
			},
			parseResponse: unmarshalResponse[analyticsEnvelope](),
		},
		{
			name:           "UnknownRoute",
			path:           "/api/v1/workspaces",
			expectedStatus: http.StatusNotFound,
			expected:       "404 page not found\n",
			parseResponse: func(data []byte) (interface{}, error) {
				return string(data), nil
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := http.Get(testServer.URL + tc.path)
			require.NoError(t, err, "Failed to send request")
			defer resp.Body.Close()

			assert.Equal(t, tc.expectedStatus, resp.StatusCode, "Status code mismatch")

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err, "Failed to read response body")

			actual, err := tc.parseResponse(body)
			require.NoError(t, err, "Failed to parse response")

			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestWebAPI_AnalyticsFailure(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(t))

	svc := new(mockAnalytics)
	svc.On("Resources", mock.Anything).Return(domain.AnalyticsFailure{
		Reason:  domain.FailureQueryFailed,
		Message: domain.AnalyticsFailureMessage,
		Err:     errors.New("no such table: resources"),
	})

	testServer := httptest.NewServer(ConfigureRouter(logger, Dependencies{Analytics: svc}))
	defer testServer.Close()

	resp, err := http.Get(testServer.URL + "/api/analytics")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var body api.AnalyticsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.False(t, body.Success)
	assert.Nil(t, body.Data)
	assert.Equal(t, "query_failed", body.Reason)
	assert.Equal(t, "Failed to fetch dashboard data", body.Message)
	assert.Equal(t, "no such table: resources", body.Error)
}

func TestWebAPI_RecoversFromPanic(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(t))

	testServer := httptest.NewServer(ConfigureRouter(logger, Dependencies{Analytics: panickingAnalytics{}}))
	defer testServer.Close()

	resp, err := http.Get(testServer.URL + "/api/analytics")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	health, err := http.Get(testServer.URL + "/health")
	require.NoError(t, err)
	defer health.Body.Close()
	assert.Equal(t, http.StatusOK, health.StatusCode)
}

func TestWebAPI_SeededCatalog(t *testing.T) {
	ctx := context.Background()
	logger := zerolog.New(zerolog.NewTestWriter(t))

	db, err := sqlite.NewDB(ctx, sqlite.Settings{DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
	})

	resources, err := resource.NewStore(db)
	require.NoError(t, err)
	costs, err := cost.NewStore(db)
	require.NoError(t, err)

	seeder, err := seed.NewSeeder(db, resources, costs, seed.WithRand(rand.New(rand.NewPCG(7, 11))))
	require.NoError(t, err)
	_, err = seeder.Run(ctx)
	require.NoError(t, err)

	svc, err := analytics.NewService(db, resources)
	require.NoError(t, err)

	testServer := httptest.NewServer(ConfigureRouter(logger, Dependencies{Analytics: svc}))
	defer testServer.Close()

	resp, err := http.Get(testServer.URL + "/api/analytics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body api.AnalyticsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Success)
	require.Len(t, body.Data, 5)

	for i, entry := range seed.DefaultCatalog() {
		r := body.Data[i]
		assert.Equal(t, entry.Name, r.Name)
		assert.Equal(t, entry.Type, r.Type)
		assert.Equal(t, entry.Provider, r.Provider)
		assert.Equal(t, "healthy", r.Status)
		require.Len(t, r.Costs, 1)
		assert.GreaterOrEqual(t, r.Costs[0].Amount, 100.0)
		assert.LessOrEqual(t, r.Costs[0].Amount, 2000.0)
	}
}

type apiHealth string

func (h *apiHealth) UnmarshalJSON(data []byte) error {
	var body api.HealthResponse
	if err := json.Unmarshal(data, &body); err != nil {
		return err
	}
	*h = apiHealth(body.Status)
	return nil
}

type analyticsCost struct {
	ID        string    `json:"id"`
	Amount    float64   `json:"amount"`
	Timestamp time.Time `json:"timestamp"`
}

type analyticsResource struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Type        string          `json:"type"`
	Provider    string          `json:"provider"`
	Environment string          `json:"environment"`
	Status      string          `json:"status"`
	Costs       []analyticsCost `json:"costs"`
}

type analyticsEnvelope struct {
	Success bool                `json:"success"`
	Data    []analyticsResource `json:"data"`
}

func unmarshalResponse[T any]() func([]byte) (interface{}, error) {
	return func(data []byte) (interface{}, error) {
		var response T
		err := json.Unmarshal(data, &response)
		return response, err
	}
}
