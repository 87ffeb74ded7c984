package main

import (
	"context"
	"fmt"
	"os"

	"github.com/de-tools/aurascale/pkg/notify"
	"github.com/de-tools/aurascale/pkg/services/config"
	"github.com/de-tools/aurascale/pkg/services/seed"
	"github.com/de-tools/aurascale/pkg/store/sqlite"
	"github.com/de-tools/aurascale/pkg/store/sqlite/cost"
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
		Use:           "seed",
		Short:         "Replace the stored catalog with fresh synthetic cloud data",
		RunE:          runSeed,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to a config file (environment and .env are always read)")

	return rootCmd
}

func runSeed(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(config.ComponentSeed); err != nil {
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
	costStore, err := cost.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create cost store: %w", err)
	}

	seeder, err := seed.NewSeeder(db, resourceStore, costStore)
	if err != nil {
		return fmt.Errorf("failed to create seeder: %w", err)
	}

	summary, err := seeder.Run(ctx)
	if err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}

	announce(ctx, cfg, summary)
	return nil
}

// announce publishes the seed event when a broker is configured. Failures
// are logged and never fail the seed.
func announce(ctx context.Context, cfg config.Config, summary seed.Summary) {
	logger := zerolog.Ctx(ctx)

	var publisher notify.Publisher = notify.NoopPublisher{}
	if cfg.NotificationsEnabled() {
		p, err := notify.NewAMQPPublisher(notify.AMQPSettings{
			URL:        cfg.AMQPURL,
			Exchange:   cfg.AMQPExchange,
			RoutingKey: cfg.AMQPRoutingKey,
		})
		if err != nil {
			logger.Warn().Err(err).Msg("failed to connect to message broker")
			return
		}
		publisher = p
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close publisher")
		}
	}()

	event := notify.NewSeedCompletedEvent(summary.Resources, summary.Costs, summary.Total, summary.FinishedAt)
	if err := publisher.PublishSeedCompleted(ctx, event); err != nil {
		logger.Warn().Err(err).Msg("failed to publish seed event")
	}
}
