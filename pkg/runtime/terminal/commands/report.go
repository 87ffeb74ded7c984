package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

type ReportCmd struct {
	env   *Env
	query string
	plain bool
}

func NewReportCmd(env *Env) *cobra.Command {
	rc := &ReportCmd{env: env}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print a one-shot cost report",
		RunE:  rc.run,
	}

	cmd.Flags().StringVarP(&rc.query, "query", "q", "", "Filter resources by name or provider")
	cmd.Flags().BoolVar(&rc.plain, "plain", false, "Print an uncolored fixed-width report")

	return cmd
}

func (rc *ReportCmd) run(cmd *cobra.Command, _ []string) error {
	cfg, err := rc.env.Config()
	if err != nil {
		return err
	}

	logger := NewLogger(cmd.ErrOrStderr(), cfg.Level())
	ctx := logger.WithContext(cmd.Context())

	state, err := rc.env.NewState(cfg)
	if err != nil {
		return err
	}
	state.SetQuery(rc.query)

	loadErr := state.Load(ctx)

	reporter := rc.env.Reporter
	if rc.plain {
		reporter = rc.env.PlainReporter
	}
	if err := reporter.Handle(state.Snapshot()); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	if loadErr != nil {
		return fmt.Errorf("analytics unavailable: %w", loadErr)
	}
	return nil
}
