package commands

import (
	"fmt"
	"io"

	"github.com/de-tools/aurascale/pkg/client"
	"github.com/de-tools/aurascale/pkg/dashboard"
	"github.com/de-tools/aurascale/pkg/services/config"
	"github.com/rs/zerolog"
)

// Reporter renders one snapshot.
type Reporter interface {
	Handle(snap dashboard.Snapshot) error
}

type FetcherFactory func(apiURL string) (dashboard.Fetcher, error)

func DefaultFetcherFactory(apiURL string) (dashboard.Fetcher, error) {
	return client.NewAnalyticsClient(apiURL)
}

// Env carries what the root command resolves for its subcommands.
type Env struct {
	ConfigPath string
	APIURL     string

	NewFetcher    FetcherFactory
	Reporter      Reporter
	PlainReporter Reporter
}

func (e *Env) Config() (config.Config, error) {
	cfg, err := config.Load(e.ConfigPath)
	if err != nil {
		return config.Config{}, err
	}
	if e.APIURL != "" {
		cfg.APIURL = e.APIURL
	}
	if err := cfg.Validate(config.ComponentDashboard); err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (e *Env) NewState(cfg config.Config) (*dashboard.State, error) {
	factory := e.NewFetcher
	if factory == nil {
		factory = DefaultFetcherFactory
	}
	fetcher, err := factory(cfg.APIURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create analytics client: %w", err)
	}
	return dashboard.NewState(fetcher), nil
}

func NewLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
