// Package cli wires the analyzer, the question router and the exporters
// into a cobra command tree.
package cli

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"freelancer-analyzer/config"
	"freelancer-analyzer/utils"
)

// rootOptions carries global flags and the state resolved from them.
type rootOptions struct {
	dataPath string
	source   string

	cfg    *config.Config
	logger *utils.Logger
}

// Execute runs the command line and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// NewRootCommand builds the full command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "freelancer-analyzer",
		Short:        "Answer questions about freelancer earnings",
		Long:         "Loads the freelancer earnings dataset, computes fixed analytical views and explains them in natural language.",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			opts.resolve(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInteractive(cmd, opts)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.dataPath, "data-path", "d", "", "path to the CSV dataset (overrides DATA_PATH)")
	cmd.PersistentFlags().StringVar(&opts.source, "source", "", "data source: csv or postgres (overrides DATA_SOURCE)")

	cmd.AddCommand(
		newInteractiveCommand(opts),
		newAskCommand(opts),
		newAnalyzeCommand(opts),
		newInfoCommand(opts),
		newHealthCommand(opts),
		newSamplesCommand(),
		newExportCommand(opts),
		newChartCommand(opts),
		newImportCommand(opts),
		newDumpCommand(opts),
	)
	return cmd
}

// resolve loads the configuration, applies flag overrides and builds the
// logger. Logs go to stderr so command output stays clean.
func (o *rootOptions) resolve(cmd *cobra.Command) {
	o.cfg = config.Load()
	if o.dataPath != "" {
		o.cfg.DataPath = o.dataPath
	}
	if o.source != "" {
		o.cfg.DataSource = o.source
	}
	o.logger = utils.NewLoggerWithOptions(utils.LoggerOptions{
		Env:   o.cfg.AppEnv,
		Level: o.cfg.LogLevel,
		Out:   cmd.ErrOrStderr(),
	})
}
