package commands

import (
	"fmt"
	"os"

	"github.com/de-tools/aurascale/pkg/runtime/tui"
	"github.com/spf13/cobra"
)

const defaultLogFile = "aurascale-dashboard.log"

type TUICmd struct {
	env     *Env
	query   string
	logFile string
}

func NewTUICmd(env *Env) *cobra.Command {
	tc := &TUICmd{env: env}
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive dashboard",
		RunE:  tc.run,
	}

	cmd.Flags().StringVarP(&tc.query, "query", "q", "", "Initial search filter")
	cmd.Flags().StringVar(&tc.logFile, "log-file", defaultLogFile, "File receiving logs while the dashboard is open")

	return cmd
}

func (tc *TUICmd) run(cmd *cobra.Command, _ []string) error {
	cfg, err := tc.env.Config()
	if err != nil {
		return err
	}

	// Logs go to a file so they do not corrupt the screen.
	logFile, err := os.OpenFile(tc.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()

	logger := NewLogger(logFile, cfg.Level())
	ctx := logger.WithContext(cmd.Context())

	state, err := tc.env.NewState(cfg)
	if err != nil {
		return err
	}
	state.SetQuery(tc.query)

	logger.Info().Str("api_url", cfg.APIURL).Msg("starting dashboard")
	return tui.New(state).Run(ctx)
}
