package renderer

import (
	"context"
	"errors"
	"flag"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/etnz/dailyprompt"
	"github.com/etnz/dailyprompt/date"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

var fixGolden = flag.Bool("fix-golden", false, "if true, update failing golden files with the received output")

func TestFixGoldenIsOff(t *testing.T) {
	if *fixGolden {
		t.Fatal("-fix-golden is enabled. This flag should only be used for updating test fixtures and must be disabled for regular tests.")
	}
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// fullReport exercises every line kind of the prompt.
func fullReport() *dailyprompt.Report {
	return &dailyprompt.Report{
		Preamble:      dailyprompt.DefaultPreamble,
		PortfolioName: "Gemini",
		Date:          date.New(2025, 8, 6),
		Quotes: []dailyprompt.Quote{
			{Symbol: "ABEO", Status: dailyprompt.QuoteOK, Price: d("5.8"), Volume: d("1234567"), Change: -2.027027},
			{Symbol: "XBI", Status: dailyprompt.QuoteFailed, Err: errors.New("connection refused")},
			{Symbol: "IWO", Status: dailyprompt.QuoteUnavailable},
			{Symbol: "SPY", Status: dailyprompt.QuoteOK, Price: d("640.27"), Volume: d("0"), Change: 0},
		},
		HasStats: true,
		Stats:    dailyprompt.RiskStats{Periods: 2, Sharpe: 0.123456, Sortino: math.NaN()},
		Statement: &dailyprompt.Statement{
			Date:   date.New(2025, 8, 6),
			Cash:   d("65.38"),
			Equity: d("100.18"),
			Holdings: []dailyprompt.LedgerRow{
				{Ticker: "ABEO", Shares: "6", BuyPrice: "5.77", StopLoss: "4.9", CostBasis: "34.62"},
			},
		},
		Comparison: &dailyprompt.Comparison{
			Index: dailyprompt.Index{Symbol: "^GSPC", Name: "S&P 500"},
			Start: d("100"),
			Value: d("101.456"),
		},
	}
}

func TestPromptText(t *testing.T) {
	golden := filepath.Join("testdata", "prompt.txt")
	got := PromptText(fullReport())

	want, err := os.ReadFile(golden)
	if err != nil {
		t.Fatalf("reading golden file: %v", err)
	}
	if diff := cmp.Diff(string(want), got); diff != "" {
		if *fixGolden {
			if err := os.WriteFile(golden, []byte(got), 0644); err != nil {
				t.Fatalf("updating golden file: %v", err)
			}
			t.Logf("updated golden file %s", golden)
			return
		}
		t.Errorf("PromptText() mismatch (-want +got):\n%s", diff)
	}
}

func TestPromptLinesOptionalFacts(t *testing.T) {
	r := fullReport()
	r.HasStats = false
	r.Comparison = nil

	for _, line := range PromptLines(r) {
		if strings.HasPrefix(line, "Total Sharpe") || strings.HasPrefix(line, "Total Sortino") {
			t.Errorf("unexpected ratio line %q", line)
		}
		if strings.Contains(line, "Invested in the") {
			t.Errorf("unexpected comparison line %q", line)
		}
		if line == "" {
			t.Error("blank line in prompt")
		}
	}
}

func TestPromptLinesBothRatios(t *testing.T) {
	r := fullReport()
	r.Stats = dailyprompt.RiskStats{Periods: 3, Sharpe: -1.5, Sortino: 2.00006}

	lines := PromptLines(r)
	want := []string{
		"Total Sharpe Ratio over 3 days: -1.5000",
		"Total Sortino Ratio over 3 days: 2.0001",
		"Latest Gemini Equity: $100.18",
	}
	i := len(r.Quotes)*3 + 2
	if diff := cmp.Diff(want, lines[i:i+3]); diff != "" {
		t.Errorf("ratio lines mismatch (-want +got):\n%s", diff)
	}
}

func TestPromptLinesInfiniteRatio(t *testing.T) {
	r := fullReport()
	r.Stats = dailyprompt.RiskStats{Periods: 2, Sharpe: math.Inf(1), Sortino: math.NaN()}

	for _, line := range PromptLines(r) {
		if strings.Contains(line, "Inf") || strings.Contains(line, "NaN") {
			t.Errorf("non finite value rendered: %q", line)
		}
	}
}

func TestPromptText_NoMarketData(t *testing.T) {
	ledger, err := dailyprompt.DecodeLedger(strings.NewReader(
		"Date,Ticker,Shares,Buy Price,Cost Basis,Stop Loss,Cash Balance,Total Equity\n" +
			"2025-08-04,ABEO,6,5.77,34.62,4.9,,\n" +
			"2025-08-04,TOTAL,,,,,65.38,100.00\n"))
	if err != nil {
		t.Fatal(err)
	}
	r, err := dailyprompt.Build(context.Background(), ledger, new(dailyprompt.StaticSource), dailyprompt.Options{
		PortfolioName: "Gemini",
		Benchmarks:    []string{"SPY"},
		Today:         date.New(2025, 8, 4),
	})
	if err != nil {
		t.Fatalf("Build() unexpected error: %v", err)
	}

	want := []string{
		dailyprompt.DefaultPreamble,
		"prices and updates for 2025-08-04",
		"ABEO closing price: N/A",
		"ABEO volume for today: N/A",
		"percent change from the day before: N/A",
		"SPY closing price: N/A",
		"SPY volume for today: N/A",
		"percent change from the day before: N/A",
		"Latest Gemini Equity: $100.00",
		HoldingsHeader,
		"ABEO 6 5.77 4.9 34.62",
		"cash balance: 65.38",
	}
	if diff := cmp.Diff(want, PromptLines(r)); diff != "" {
		t.Errorf("PromptLines() mismatch (-want +got):\n%s", diff)
	}
}

func TestPromptLines_Rounding(t *testing.T) {
	r := fullReport()
	r.Quotes = []dailyprompt.Quote{{Symbol: "ABEO", Status: dailyprompt.QuoteOK, Price: d("5.125"), Volume: d("10"), Change: 1}}
	r.Statement.Cash = d("10.125")
	r.Statement.Equity = d("2.675")
	r.Comparison.Start = d("100.5")

	lines := PromptLines(r)
	for _, want := range []string{
		"ABEO closing price: 5.12",
		"Latest Gemini Equity: $2.67",
		"$100 Invested in the S&P 500: $101.46",
		"cash balance: 10.12",
	} {
		if !slices.Contains(lines, want) {
			t.Errorf("PromptLines() has no %q line:\n%s", want, strings.Join(lines, "\n"))
		}
	}
}
