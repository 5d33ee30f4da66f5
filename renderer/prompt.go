package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/dailyprompt"
)

// NotAvailable replaces a value that could not be computed.
const NotAvailable = "N/A"

// HoldingsHeader introduces the holdings table of the prompt.
const HoldingsHeader = "today's portfolio: ticker shares buy_price stop_loss cost_basis"

// PromptText renders the report as the plain text prompt, one fact per line.
func PromptText(r *dailyprompt.Report) string {
	return strings.Join(PromptLines(r), "\n")
}

// PromptLines renders the report, one fact per line and without line terminators.
func PromptLines(r *dailyprompt.Report) []string {
	p := &promptRenderer{}
	p.Printf("%s", r.Preamble)
	p.Printf("prices and updates for %s", r.Date)
	for _, q := range r.Quotes {
		p.renderQuote(q)
	}
	if r.HasStats {
		if r.Stats.HasSharpe() {
			p.Printf("Total Sharpe Ratio over %d days: %.4f", r.Stats.Periods, r.Stats.Sharpe)
		}
		if r.Stats.HasSortino() {
			p.Printf("Total Sortino Ratio over %d days: %.4f", r.Stats.Periods, r.Stats.Sortino)
		}
	}

	st := r.Statement
	p.Printf("Latest %s Equity: %s", r.PortfolioName, dailyprompt.M(st.Equity))
	if c := r.Comparison; c != nil {
		p.Printf("%s Invested in the %s: %s", dailyprompt.M(c.Start).Whole(), c.Index.Name, dailyprompt.M(c.Value))
	}

	p.Printf("%s", HoldingsHeader)
	for _, h := range st.Holdings {
		p.Printf("%s", h)
	}
	p.Printf("cash balance: %s", dailyprompt.M(st.Cash).Fixed())
	return p.lines
}

// promptRenderer accumulates the prompt lines.
type promptRenderer struct {
	lines []string
}

// Printf formats according to a format specifier and appends the result as a new line.
func (p *promptRenderer) Printf(format string, args ...any) {
	p.lines = append(p.lines, fmt.Sprintf(format, args...))
}

func (p *promptRenderer) renderQuote(q dailyprompt.Quote) {
	switch q.Status {
	case dailyprompt.QuoteOK:
		p.Printf("%s closing price: %s", q.Symbol, dailyprompt.M(q.Price).Fixed())
		p.Printf("%s volume for today: %s", q.Symbol, dailyprompt.FormatVolume(q.Volume))
		p.Printf("percent change from the day before: %s", q.Change.SignedString())
	case dailyprompt.QuoteFailed:
		p.Printf("%s closing price: ERROR - %v", q.Symbol, q.Err)
		p.Printf("%s volume for today: %s", q.Symbol, NotAvailable)
		p.Printf("percent change from the day before: %s", NotAvailable)
	default:
		p.Printf("%s closing price: %s", q.Symbol, NotAvailable)
		p.Printf("%s volume for today: %s", q.Symbol, NotAvailable)
		p.Printf("percent change from the day before: %s", NotAvailable)
	}
}
