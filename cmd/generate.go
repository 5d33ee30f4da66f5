package cmd

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/etnz/dailyprompt"
	"github.com/etnz/dailyprompt/config"
	"github.com/etnz/dailyprompt/date"
	"github.com/etnz/dailyprompt/renderer"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type generateCmd struct {
	output         string
	ledger         string
	startingEquity string
	interactive    bool
	quiet          bool
	today          string
}

func (*generateCmd) Name() string     { return "generate" }
func (*generateCmd) Synopsis() string { return "write the daily prompt of the portfolio" }
func (*generateCmd) Usage() string {
	return `dprompt generate [-o <file>] [-starting-equity <amount> | -i] [-q]

  Reads the latest TOTAL row of the ledger, fetches the last sessions of the
  holdings and benchmarks, and writes the daily prompt to the output file.

  With a starting equity, the prompt also tells what that amount would be
  worth invested in the index since the first ledger date.
`
}

func (c *generateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "output file, report.output_file if empty")
	f.StringVar(&c.ledger, "ledger", "", "ledger file, portfolio.ledger_file if empty")
	f.StringVar(&c.startingEquity, "starting-equity", "", "compare the portfolio to the index from this starting equity")
	f.BoolVar(&c.interactive, "i", false, "ask for the starting equity")
	f.BoolVar(&c.quiet, "q", false, "do not print the prompt")
	f.StringVar(&c.today, "today", "", "day of the prompt (YYYY-MM-DD), today if empty")
}

func (c *generateCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.output != "" {
		cfg.Report.OutputFile = c.output
	}
	if c.ledger != "" {
		cfg.Portfolio.LedgerFile = c.ledger
	}
	today, err := parseToday(c.today)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	var start *decimal.Decimal
	switch {
	case c.startingEquity != "":
		start = startingEquity(os.Stdout, c.startingEquity, cfg.Market.IndexName)
	case c.interactive:
		start = askStartingEquity(os.Stdin, os.Stdout, cfg.Market.IndexName)
	}

	_, report, err := buildReport(ctx, cfg, start, today)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	prompt := renderer.PromptText(report)

	if err := os.WriteFile(cfg.OutputPath(), []byte(prompt), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing prompt: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Prompt saved to: %s\n", cfg.OutputPath())

	if !c.quiet {
		banner := strings.Repeat("=", 60)
		fmt.Printf("\n%s\nGenerated Prompt:\n%s\n%s\n", banner, banner, prompt)
	}
	return subcommands.ExitSuccess
}

// buildReport loads the ledger and builds the report of the day.
func buildReport(ctx context.Context, cfg *config.Config, start *decimal.Decimal, today date.Date) (*dailyprompt.Ledger, *dailyprompt.Report, error) {
	ledger, err := dailyprompt.LoadLedger(cfg.LedgerPath())
	if err != nil {
		return nil, nil, err
	}
	src, err := newSource(cfg)
	if err != nil {
		return nil, nil, err
	}
	report, err := dailyprompt.Build(ctx, ledger, src, dailyprompt.Options{
		Preamble:       cfg.Report.Preamble,
		PortfolioName:  cfg.Portfolio.Name,
		Benchmarks:     cfg.Market.Benchmarks,
		Index:          cfg.Index(),
		RiskFree:       cfg.Market.RiskFree,
		StartingEquity: start,
		Today:          today,
	})
	if err != nil {
		return nil, nil, err
	}
	return ledger, report, nil
}

// parseToday parses the -today flag, the zero date stands for today.
func parseToday(s string) (date.Date, error) {
	if s == "" {
		return date.Date{}, nil
	}
	return date.Parse(s)
}

// parseStartingEquity parses an amount, nil for a blank one.
func parseStartingEquity(s string) (*decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// startingEquity parses s and tells w when the comparison is skipped.
func startingEquity(w io.Writer, s, indexName string) *decimal.Decimal {
	v, err := parseStartingEquity(s)
	if err != nil {
		fmt.Fprintf(w, "Invalid input. Skipping %s comparison.\n", indexName)
		return nil
	}
	return v
}

// askStartingEquity prompts for the starting equity on w and reads it from r.
func askStartingEquity(r io.Reader, w io.Writer, indexName string) *decimal.Decimal {
	fmt.Fprintf(w, "Enter your starting equity (for %s comparison), or press Enter to skip: ", indexName)
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return nil
	}
	return startingEquity(w, line, indexName)
}
