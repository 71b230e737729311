package cli

import (
	"bufio"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"freelancer-analyzer/services"
)

const interactiveHelp = `  Commands:
    ask QUESTION     answer a question (plain text works too)
    1-7              ask the numbered sample question
    analyze KIND     print one view as JSON
    samples          list sample questions
    health           show component status
    info             show dataset overview
    help             show this help
    exit             leave`

// runInteractive reads one command or question per line until exit or
// end of input.
func runInteractive(cmd *cobra.Command, opts *rootOptions) error {
	ctx := cmd.Context()
	a, err := newApp(ctx, opts.cfg, opts.logger, true)
	if err != nil {
		return err
	}
	defer a.Close()

	out := cmd.OutOrStdout()
	p := printer{out}
	samples := a.router.SampleQuestions()

	p.banner("FREELANCER EARNINGS ANALYZER")
	p.printf("  Loaded %d records from %s\n\n", a.analyzer.Total(), a.dataset.Source())
	p.printf("%s\n\n", interactiveHelp)
	printSamples(out, samples)

	reader := bufio.NewReader(cmd.InOrStdin())
	readLine := func() (string, bool, error) {
		line, err := reader.ReadString('\n')
		if errors.Is(err, io.EOF) {
			return strings.TrimSpace(line), line != "", nil
		}
		if err != nil {
			return "", false, err
		}
		return strings.TrimSpace(line), true, nil
	}

	answer := func(question string) error {
		resp := a.router.Answer(ctx, question)
		if err := printResponse(out, resp, false); err != nil {
			return err
		}
		if resp.Status != services.StatusSuccess {
			return nil
		}
		p.printf("Show analysis data? (y/N) ")
		reply, ok, err := readLine()
		if err != nil || !ok {
			p.printf("\n")
			return err
		}
		switch strings.ToLower(reply) {
		case "y", "yes", "д", "да":
			return writeJSON(cmd, resp.AnalysisData)
		}
		return nil
	}

	for {
		p.printf("%s> %s", colorBold, colorReset)
		line, ok, err := readLine()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if line == "" {
			continue
		}

		verb, rest, _ := strings.Cut(line, " ")
		rest = strings.TrimSpace(rest)
		verb = strings.ToLower(verb)

		// A bare word is a command; longer lines are questions unless they
		// start with ask or analyze.
		if rest != "" && verb != "ask" && verb != "analyze" {
			verb = ""
		}

		switch verb {
		case "exit", "quit", "выход":
			p.printf("Bye!\n")
			return nil
		case "help":
			p.printf("%s\n\n", interactiveHelp)
		case "samples":
			printSamples(out, samples)
		case "health":
			printHealth(out, a.router.Health(ctx, false))
		case "info":
			if err := runInfo(cmd, a); err != nil {
				p.printf("%sError:%s %v\n", colorBad, colorReset, err)
			}
		case "analyze":
			if err := runAnalyze(cmd, a, rest); err != nil {
				p.printf("%sError:%s %v\n", colorBad, colorReset, err)
			}
		case "ask":
			if rest == "" {
				p.printf("Usage: ask QUESTION\n")
				continue
			}
			if err := answer(rest); err != nil {
				return err
			}
		default:
			question := line
			if n, err := strconv.Atoi(line); err == nil {
				if n < 1 || n > len(samples) {
					p.printf("Pick a sample between 1 and %d\n", len(samples))
					continue
				}
				question = samples[n-1]
			}
			if err := answer(question); err != nil {
				return err
			}
		}
	}
}

func runAnalyze(cmd *cobra.Command, a *app, name string) error {
	kind, err := services.ParseAnalysisKind(name)
	if err != nil {
		return err
	}
	data, err := a.analyzer.Run(kind)
	if err != nil {
		return err
	}
	return writeJSON(cmd, data)
}

func runInfo(cmd *cobra.Command, a *app) error {
	o := overview{Source: a.dataset.Source()}
	var err error
	if o.Info, err = a.dataset.Inspect(); err != nil {
		return err
	}
	if o.Stats, err = a.dataset.Describe(); err != nil {
		return err
	}
	if o.Quality, err = a.dataset.CheckQuality(); err != nil {
		return err
	}
	o.Shares = a.analyzer.PlatformPerformance().MarketShare

	printOverview(cmd.OutOrStdout(), o)
	return nil
}
