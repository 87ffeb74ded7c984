package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/de-tools/aurascale/pkg/adapters"
	"github.com/de-tools/aurascale/pkg/models/api"
	"github.com/de-tools/aurascale/pkg/models/domain"
	"github.com/rs/zerolog"
)

const (
	analyticsPath  = "/api/analytics"
	defaultTimeout = 10 * time.Second
	maxBodyBytes   = 4 << 20
)

type AnalyticsClient struct {
	endpoint string
	http     *http.Client
}

type Option func(*AnalyticsClient)

func WithHTTPClient(c *http.Client) Option {
	return func(ac *AnalyticsClient) { ac.http = c }
}

func NewAnalyticsClient(baseURL string, opts ...Option) (*AnalyticsClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse api url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("api url %q must be absolute", baseURL)
	}

	ac := &AnalyticsClient{
		endpoint: u.String() + analyticsPath,
		http:     &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(ac)
	}
	return ac, nil
}

// FetchAnalytics returns the decoded envelope. A transport error or a body
// that is not the envelope is returned as error; a failure envelope comes
// back as domain.AnalyticsFailure.
func (ac *AnalyticsClient) FetchAnalytics(ctx context.Context) (domain.AnalyticsResult, error) {
	logger := zerolog.Ctx(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ac.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build analytics request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := ac.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch analytics: %w", err)
	}
	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close analytics response body")
		}
	}(resp.Body)

	var envelope api.AnalyticsResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode analytics response (status %d): %w", resp.StatusCode, err)
	}

	if !envelope.Success {
		failure := domain.AnalyticsFailure{
			Reason:  domain.FailureReason(envelope.Reason),
			Message: envelope.Message,
		}
		if failure.Reason == "" {
			failure.Reason = domain.FailureUnknown
		}
		if failure.Message == "" {
			failure.Message = domain.AnalyticsFailureMessage
		}
		if envelope.Error != "" {
			failure.Err = fmt.Errorf("%s", envelope.Error)
		}
		logger.Warn().
			Int("status", resp.StatusCode).
			Str("reason", string(failure.Reason)).
			Msg("analytics endpoint reported failure")
		return failure, nil
	}

	resources := make([]domain.Resource, 0, len(envelope.Data))
	for _, r := range envelope.Data {
		resources = append(resources, adapters.MapResourceApiToDomain(r))
	}
	return domain.AnalyticsSuccess{Resources: resources}, nil
}
