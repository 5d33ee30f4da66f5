package dailyprompt

import (
	"context"
	"fmt"
	"slices"

	"github.com/etnz/dailyprompt/date"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Bar is one daily session of an instrument.
type Bar struct {
	Date   date.Date
	Close  decimal.Decimal
	Volume decimal.Decimal
}

// PriceWindow is a short chronological series of daily bars for one symbol.
type PriceWindow struct {
	Symbol string
	Bars   []Bar
}

// Len returns the number of bars in the window.
func (w PriceWindow) Len() int { return len(w.Bars) }

// First returns the oldest bar, w must not be empty.
func (w PriceWindow) First() Bar { return w.Bars[0] }

// Last returns the most recent bar, w must not be empty.
func (w PriceWindow) Last() Bar { return w.Bars[len(w.Bars)-1] }

// Sort puts the bars in chronological order.
func (w *PriceWindow) Sort() {
	slices.SortStableFunc(w.Bars, func(a, b Bar) int {
		switch {
		case a.Date.Before(b.Date):
			return -1
		case a.Date.After(b.Date):
			return 1
		}
		return 0
	})
}

// PriceSource provides daily bars for a symbol.
//
// Fetch returns the bars between from and to, both included, in chronological
// order. An empty window is not an error: the symbol simply has no data.
type PriceSource interface {
	Fetch(ctx context.Context, symbol string, from, to date.Date) (PriceWindow, error)
}

// QuoteStatus tells how a Quote can be rendered.
type QuoteStatus int

const (
	// QuoteOK means price, volume and change are known.
	QuoteOK QuoteStatus = iota
	// QuoteUnavailable means the source returned less than two sessions.
	QuoteUnavailable
	// QuoteFailed means the fetch itself failed, Err holds the cause.
	QuoteFailed
)

func (s QuoteStatus) String() string {
	switch s {
	case QuoteOK:
		return "ok"
	case QuoteUnavailable:
		return "unavailable"
	case QuoteFailed:
		return "failed"
	default:
		return fmt.Sprintf("QuoteStatus(%d)", int(s))
	}
}

// Quote is the latest session of a symbol compared to the session before.
type Quote struct {
	Symbol string
	Status QuoteStatus
	Price  decimal.Decimal // latest close
	Volume decimal.Decimal // latest volume
	Change Percent         // day-over-day change of the close
	Err    error
}

// NewQuote derives a quote from a price window.
func NewQuote(symbol string, w PriceWindow) Quote {
	if w.Len() < 2 {
		return Quote{Symbol: symbol, Status: QuoteUnavailable}
	}
	last, prev := w.Bars[w.Len()-1], w.Bars[w.Len()-2]
	if prev.Close.IsZero() {
		return Quote{Symbol: symbol, Status: QuoteUnavailable}
	}
	change := last.Close.Sub(prev.Close).Div(prev.Close).Mul(decimal.NewFromInt(100))
	return Quote{
		Symbol: symbol,
		Status: QuoteOK,
		Price:  last.Close,
		Volume: last.Volume,
		Change: Percent(change.InexactFloat64()),
	}
}

// Snapshot fetches the window of every symbol, in order, and derives their quotes.
//
// Duplicated symbols are fetched again. A failing symbol never aborts the snapshot.
func Snapshot(ctx context.Context, src PriceSource, symbols []string, window date.Range) []Quote {
	quotes := make([]Quote, 0, len(symbols))
	for _, symbol := range symbols {
		w, err := src.Fetch(ctx, symbol, window.From, window.To)
		if err != nil {
			log.Warn().Err(err).Str("symbol", symbol).Msg("price fetch failed")
			quotes = append(quotes, Quote{Symbol: symbol, Status: QuoteFailed, Err: err})
			continue
		}
		q := NewQuote(symbol, w)
		if q.Status == QuoteUnavailable {
			log.Debug().Str("symbol", symbol).Int("bars", w.Len()).Stringer("window", window).Msg("not enough price data")
		}
		quotes = append(quotes, q)
	}
	return quotes
}
