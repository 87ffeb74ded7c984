package main

import (
	"fmt"
	"os"

	"github.com/de-tools/aurascale/pkg/server"
	"github.com/de-tools/aurascale/pkg/services/analytics"
	"github.com/de-tools/aurascale/pkg/services/config"
	"github.com/de-tools/aurascale/pkg/store/sqlite"
	"github.com/de-tools/aurascale/pkg/store/sqlite/resource"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "web",
		Short:         "Start the AuraScale API server",
		RunE:          runServer,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to a config file (environment and .env are always read)")

	return rootCmd
}

func runServer(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(config.ComponentWeb); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := zerolog.New(os.Stdout).Level(cfg.Level()).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	db, err := sqlite.NewDB(ctx, sqlite.Settings{DSN: cfg.DatabaseURL})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	resourceStore, err := resource.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create resource store: %w", err)
	}

	analyticsSvc, err := analytics.NewService(db, resourceStore)
	if err != nil {
		return fmt.Errorf("failed to create analytics service: %w", err)
	}

	logger.Info().Str("database", cfg.DatabaseURL).Msg("database ready")

	api := server.NewWebAPI(logger, server.Config{
		Addr:            cfg.Addr(),
		ShutdownTimeout: cfg.ShutdownTimeout,
		Dependencies: server.Dependencies{
			Analytics: analyticsSvc,
		},
	})

	return api.Start()
}
