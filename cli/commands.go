package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"freelancer-analyzer/config"
	"freelancer-analyzer/models"
	"freelancer-analyzer/report"
	"freelancer-analyzer/serialize"
	"freelancer-analyzer/services"
	"freelancer-analyzer/storage"
)

func newInteractiveCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Ask questions in a read-eval-print loop",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInteractive(cmd, opts)
		},
	}
}

func newAskCommand(opts *rootOptions) *cobra.Command {
	var showData, asJSON bool

	cmd := &cobra.Command{
		Use:   "ask QUESTION",
		Short: "Answer a single question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), opts.cfg, opts.logger, true)
			if err != nil {
				return err
			}
			defer a.Close()

			resp := a.router.Answer(cmd.Context(), strings.Join(args, " "))
			if asJSON {
				return writeJSON(cmd, resp)
			}
			return printResponse(cmd.OutOrStdout(), resp, showData)
		},
	}
	cmd.Flags().BoolVar(&showData, "show-data", false, "also print the analysis result")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full response as JSON")
	return cmd
}

func newAnalyzeCommand(opts *rootOptions) *cobra.Command {
	names := make([]string, len(services.AllKinds))
	for i, k := range services.AllKinds {
		names[i] = string(k)
	}

	return &cobra.Command{
		Use:       "analyze KIND",
		Short:     "Print one analytical view as JSON",
		Long:      "Print one analytical view as JSON. KIND is one of: " + strings.Join(names, ", "),
		Args:      cobra.ExactArgs(1),
		ValidArgs: names,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := services.ParseAnalysisKind(args[0]); err != nil {
				return err
			}
			a, err := newApp(cmd.Context(), opts.cfg, opts.logger, false)
			if err != nil {
				return err
			}
			return runAnalyze(cmd, a, args[0])
		},
	}
}

func newInfoCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show dataset overview, column statistics and data quality",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context(), opts.cfg, opts.logger, false)
			if err != nil {
				return err
			}
			return runInfo(cmd, a)
		},
	}
}

func newHealthCommand(opts *rootOptions) *cobra.Command {
	var live, asJSON bool

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Report readiness of the analyzer and the LLM",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context(), opts.cfg, opts.logger, true)
			if err != nil {
				return err
			}
			defer a.Close()

			h := a.router.Health(cmd.Context(), live)
			if asJSON {
				return writeJSON(cmd, h)
			}
			printHealth(cmd.OutOrStdout(), h)
			return nil
		},
	}
	cmd.Flags().BoolVar(&live, "live", false, "send a test prompt to the LLM")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the status as JSON")
	return cmd
}

func newSamplesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "samples",
		Short: "List example questions",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			printSamples(cmd.OutOrStdout(), services.NewRouter(nil, services.RouterOptions{}, nil).SampleQuestions())
		},
	}
}

func newExportCommand(opts *rootOptions) *cobra.Command {
	var format, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every analytical view to an XLSX or CSV file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != "xlsx" && format != "csv" {
				return fmt.Errorf("unsupported export format %q (want xlsx or csv)", format)
			}
			if out == "" {
				out = filepath.Join("output", "freelancer_report."+format)
			}

			a, err := newApp(cmd.Context(), opts.cfg, opts.logger, false)
			if err != nil {
				return err
			}
			r, err := report.Build(a.analyzer, a.dataset.Source(), opts.cfg.MaxConcurrency, opts.logger)
			if err != nil {
				return err
			}

			if format == "xlsx" {
				err = report.WriteXLSX(r, out)
			} else {
				err = report.WriteCSV(r, out)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "xlsx", "output format: xlsx or csv")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default output/freelancer_report.<format>)")
	return cmd
}

// chartColumns maps chart dimensions to dataset columns.
var chartColumns = map[string]string{
	"region":   models.ColClientRegion,
	"platform": models.ColPlatform,
	"category": models.ColJobCategory,
}

func newChartCommand(opts *rootOptions) *cobra.Command {
	var by, out string

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Render mean earnings per region, platform or category as a PNG bar chart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			column, ok := chartColumns[by]
			if !ok {
				return fmt.Errorf("unsupported chart dimension %q (want region, platform or category)", by)
			}
			if out == "" {
				out = filepath.Join("output", "earnings_by_"+by+".png")
			}

			a, err := newApp(cmd.Context(), opts.cfg, opts.logger, false)
			if err != nil {
				return err
			}
			labels, means := a.analyzer.MeanEarningsBy(column)
			if err := report.WriteBarChart(labels, means, "Mean earnings by "+by, out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Chart written to %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVar(&by, "by", "region", "dimension: region, platform or category")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output image (default output/earnings_by_<by>.png)")
	return cmd
}

func newImportCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import-db",
		Short: "Copy the CSV dataset into PostgreSQL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := *opts.cfg
			cfg.DataSource = config.SourceCSV

			ds, err := loadDataset(&cfg, opts.logger)
			if err != nil {
				return err
			}
			records, err := ds.Records()
			if err != nil {
				return err
			}

			store, err := storage.NewPostgresStore(cfg.DSN(), opts.logger)
			if err != nil {
				opts.logger.Error("Make sure PostgreSQL is running: docker compose up -d")
				return err
			}
			defer store.Close()

			if err := store.Write(records); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d records from %s into PostgreSQL (table: freelancers)\n", len(records), ds.Source())
			return nil
		},
	}
}

func newDumpCommand(opts *rootOptions) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Write the loaded records back out as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ds, err := loadDataset(opts.cfg, opts.logger)
			if err != nil {
				return err
			}
			records, err := ds.Records()
			if err != nil {
				return err
			}

			w, err := storage.NewCSVWriter(out)
			if err != nil {
				return err
			}
			if err := w.Write(records); err != nil {
				_ = w.Close()
				return err
			}
			if err := w.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d records to %s\n", len(records), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", filepath.Join("output", "freelancers.csv"), "output file")
	return cmd
}

func writeJSON(cmd *cobra.Command, v any) error {
	data, err := serialize.ToJSON(v, "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
