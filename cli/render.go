package cli

import (
	"fmt"
	"io"
	"math"
	"strings"

	"freelancer-analyzer/dataset"
	"freelancer-analyzer/models"
	"freelancer-analyzer/serialize"
	"freelancer-analyzer/services"
)

const (
	colorReset   = "\033[0m"
	colorTitle   = "\033[1;35m"
	colorHeading = "\033[1;33m"
	colorBold    = "\033[1m"
	colorGood    = "\033[1;32m"
	colorBad     = "\033[1;31m"

	ruleWidth = 54
)

// printer writes the coloured console layout used by every command.
type printer struct {
	w io.Writer
}

func (p printer) printf(format string, args ...any) {
	fmt.Fprintf(p.w, format, args...)
}

func (p printer) banner(title string) {
	sep := strings.Repeat("═", ruleWidth)
	p.printf("\n%s%s%s\n", colorTitle, sep, colorReset)
	p.printf("%s  %s%s\n", colorTitle, title, colorReset)
	p.printf("%s%s%s\n\n", colorTitle, sep, colorReset)
}

func (p printer) heading(title string) {
	p.printf("%s  %s%s\n", colorHeading, title, colorReset)
	p.printf("  %s\n", strings.Repeat("─", ruleWidth))
}

func (p printer) footer() {
	p.printf("%s%s%s\n\n", colorTitle, strings.Repeat("═", ruleWidth), colorReset)
}

// overview bundles everything the info command shows.
type overview struct {
	Source  string
	Info    dataset.Info
	Stats   []dataset.ColumnStats
	Quality dataset.QualityReport
	Shares  []models.Share
}

func printOverview(w io.Writer, o overview) {
	p := printer{w}
	p.banner("FREELANCER DATASET OVERVIEW")

	p.heading("Overview")
	p.printf("  Source        : %s%s%s\n", colorBold, o.Source, colorReset)
	p.printf("  Total records : %s%d%s\n", colorBold, o.Info.TotalRecords, colorReset)
	p.printf("  Columns       : %s%d%s\n\n", colorBold, len(o.Info.Columns), colorReset)

	p.heading("Numeric Columns")
	p.printf("  %-18s %9s %9s %9s %9s %9s\n", "column", "mean", "median", "std", "min", "max")
	for _, s := range o.Stats {
		p.printf("  %-18s %9s %9s %9s %9s %9s\n", truncate(s.Column, 18),
			number(s.Mean), number(s.Median), number(s.Std), number(s.Min), number(s.Max))
	}
	p.printf("\n")

	p.heading("Categorical Columns")
	for _, name := range dataset.CategoricalColumns {
		values := o.Info.CategoricalColumns[name]
		p.printf("  %-18s %2d  %s\n", name, len(values), truncate(strings.Join(values, ", "), 60))
	}
	p.printf("\n")

	p.heading("Data Quality")
	q := o.Quality
	p.printf("  Duplicate freelancer ids  : %s\n", count(q.DuplicateFreelancerIDs))
	p.printf("  Records with missing data : %s\n", count(q.RecordsWithMissingValues))
	p.printf("  Zero earnings             : %s\n", count(q.EarningsAnomalies.ZeroEarnings))
	p.printf("  Negative earnings         : %s\n", count(q.EarningsAnomalies.NegativeEarnings))
	p.printf("  Earnings above $10,000    : %s\n", count(q.EarningsAnomalies.ExtremelyHighEarnings))
	p.printf("  Ratings outside 1-5       : %s\n\n", count(q.RatingAnomalies.OutOfRangeRatings))

	p.heading("Records by Platform")
	if len(o.Shares) == 0 {
		p.printf("  No platform data\n")
	}
	for _, s := range o.Shares {
		bar := strings.Repeat("█", int(math.Round(s.Percent/2)))
		p.printf("  %-20s %s %.2f%% (%d)\n", truncate(s.Name, 20), bar, s.Percent, s.Count)
	}
	p.printf("\n")
	p.footer()
}

func printResponse(w io.Writer, resp services.Response, showData bool) error {
	p := printer{w}
	p.banner("ANSWER")
	p.printf("  %sQuestion:%s %s\n", colorBold, colorReset, resp.Question)

	if resp.Status != services.StatusSuccess {
		p.printf("  %sError:%s %s\n\n", colorBad, colorReset, resp.Error)
		p.printf("%s\n\n", resp.FallbackResponse)
		p.footer()
		return nil
	}

	p.printf("  %sAnalysis:%s %s\n\n", colorBold, colorReset, resp.AnalysisType)
	p.printf("%s\n\n", strings.TrimSpace(resp.LLMResponse))

	if showData {
		p.heading("Analysis Data")
		data, err := serialize.ToJSON(resp.AnalysisData, "  ")
		if err != nil {
			return err
		}
		p.printf("%s\n\n", data)
	}
	p.footer()
	return nil
}

func printHealth(w io.Writer, h services.HealthStatus) {
	p := printer{w}
	p.banner("SYSTEM HEALTH")
	p.printf("  Data analyzer     : %s\n", mark(h.DataAnalyzer))
	p.printf("  LLM library       : %s\n", mark(h.LLMLibraryAvailable))
	p.printf("  API key set       : %s\n", mark(h.APIKeySet))
	p.printf("  LLM initialized   : %s\n", mark(h.LLMInitialized))
	p.printf("  LLM test          : %s\n", h.LLMTest)

	color := colorGood
	if h.OverallStatus != services.HealthHealthy {
		color = colorBad
	}
	p.printf("  Overall           : %s%s%s\n\n", color, h.OverallStatus, colorReset)
	p.footer()
}

func printSamples(w io.Writer, questions []string) {
	p := printer{w}
	p.heading("Sample Questions")
	for i, q := range questions {
		p.printf("  %s%d.%s %s\n", colorBold, i+1, colorReset, q)
	}
	p.printf("\n")
}

func mark(ok bool) string {
	if ok {
		return colorGood + "✓" + colorReset
	}
	return colorBad + "✗" + colorReset
}

func count(n int) string {
	if n > 0 {
		return fmt.Sprintf("%s%d%s", colorBad, n, colorReset)
	}
	return fmt.Sprintf("%s%d%s", colorGood, n, colorReset)
}

func number(f float64) string {
	if math.IsNaN(f) {
		return "-"
	}
	return fmt.Sprintf("%.2f", f)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
