package dailyprompt

import (
	"context"

	"github.com/etnz/dailyprompt/date"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// DefaultPreamble opens every prompt.
const DefaultPreamble = "Here is your update for today. You can make any changes you see fit (if necessary). You do not have to ask permissions for any changes, as you have full control."

// WindowDays is the number of calendar days fetched to get the latest sessions of a symbol.
const WindowDays = 5

// Options controls how a Report is built.
type Options struct {
	Preamble      string   // instruction line, DefaultPreamble if empty
	PortfolioName string   // printed in the equity line
	Benchmarks    []string // fetched after the holdings, in order
	Index         Index    // used for the starting equity comparison
	RiskFree      float64  // annual rate

	// StartingEquity enables the index comparison when not nil.
	StartingEquity *decimal.Decimal

	// Today anchors the price window, the current day if zero.
	Today date.Date
}

// Report gathers every fact of the daily prompt, in the order they are printed.
type Report struct {
	Preamble      string
	PortfolioName string
	Date          date.Date  // latest ledger date
	Window        date.Range // price window of the quotes
	Quotes        []Quote    // holdings then benchmarks
	Stats         RiskStats
	HasStats      bool
	Statement     *Statement
	Comparison    *Comparison // nil when not requested or not available
}

// Build loads the latest statement from the ledger, fetches the quotes of the
// holdings and benchmarks and computes the risk statistics.
//
// Only ledger errors are returned, market and statistics failures degrade the
// report instead.
func Build(ctx context.Context, ledger *Ledger, src PriceSource, opts Options) (*Report, error) {
	st, err := ledger.Latest()
	if err != nil {
		return nil, err
	}
	if opts.Preamble == "" {
		opts.Preamble = DefaultPreamble
	}
	if opts.Today.IsZero() {
		opts.Today = date.Today()
	}

	r := &Report{
		Preamble:      opts.Preamble,
		PortfolioName: opts.PortfolioName,
		Date:          st.Date,
		Window:        date.TrailingWindow(opts.Today, WindowDays),
		Statement:     st,
	}

	symbols := append(st.Tickers(), opts.Benchmarks...)
	r.Quotes = Snapshot(ctx, src, symbols, r.Window)

	series := ledger.EquitySeries()
	r.Stats, r.HasStats = ComputeRiskStats(Returns(series.Slice()), opts.RiskFree)

	if opts.StartingEquity != nil && series.Len() >= 2 {
		cmp, err := CompareIndex(ctx, src, opts.Index, series.Span(), *opts.StartingEquity)
		if err != nil {
			log.Debug().Err(err).Str("index", opts.Index.Symbol).Msg("skipping index comparison")
		} else {
			r.Comparison = cmp
		}
	}
	return r, nil
}
