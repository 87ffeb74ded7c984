package terminal

import (
	"io"
	"os"

	"github.com/de-tools/aurascale/pkg/runtime/terminal/commands"
	"github.com/de-tools/aurascale/pkg/runtime/terminal/export"
	"github.com/spf13/cobra"
)

// CLI represents the dashboard command-line interface
type CLI struct {
	env     *commands.Env
	rootCmd *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Output     io.Writer
	NewFetcher commands.FetcherFactory
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.NewFetcher == nil {
		opts.NewFetcher = commands.DefaultFetcherFactory
	}

	cli := &CLI{
		env: &commands.Env{
			NewFetcher:    opts.NewFetcher,
			Reporter:      NewReporter(opts.Output),
			PlainReporter: export.NewReporter(opts.Output),
		},
	}

	cli.rootCmd = cli.newRootCmd()
	cli.rootCmd.SetOut(opts.Output)
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "dashboard",
		Short:         "AuraScale cloud cost dashboard",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&cli.env.ConfigPath, "config", "c", "", "Path to a config file")
	cmd.PersistentFlags().StringVar(&cli.env.APIURL, "api-url", "", "Base URL of the AuraScale API (overrides API_URL)")

	cmd.AddCommand(commands.NewReportCmd(cli.env))
	cmd.AddCommand(commands.NewTUICmd(cli.env))

	return cmd
}
