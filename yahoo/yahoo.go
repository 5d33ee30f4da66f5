// Package yahoo implements a price source on top of Yahoo Finance.
//
// No key is required. Symbols are Yahoo's own: "SPY", "^GSPC", "VOD.L".
package yahoo

import (
	"context"
	"fmt"
	"math"

	"github.com/etnz/dailyprompt"
	"github.com/etnz/dailyprompt/date"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/wnjoon/go-yfinance/pkg/models"
	"github.com/wnjoon/go-yfinance/pkg/ticker"
)

// periods are the history ranges Yahoo serves, with their length in days.
var periods = []struct {
	name string
	days int
}{
	{"5d", 5},
	{"1mo", 28},
	{"3mo", 89},
	{"6mo", 181},
	{"1y", 365},
	{"2y", 730},
	{"5y", 1826},
	{"10y", 3652},
}

// historyFunc returns the daily bars of a symbol.
type historyFunc func(symbol string, params models.HistoryParams) ([]models.Bar, error)

// Client fetches daily prices from Yahoo Finance.
type Client struct {
	history historyFunc
	today   func() date.Date
}

// NewClient returns a client of the public API.
func NewClient() *Client {
	return &Client{history: tickerHistory, today: date.Today}
}

func tickerHistory(symbol string, params models.HistoryParams) ([]models.Bar, error) {
	t, err := ticker.New(symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to create ticker: %w", err)
	}
	defer t.Close()
	return t.History(params)
}

// Period returns the shortest history period reaching back to from.
func Period(today, from date.Date) string {
	days := date.Range{From: from, To: today}.Days()
	for _, p := range periods {
		if days <= p.days {
			return p.name
		}
	}
	return "max"
}

// Fetch implements dailyprompt.PriceSource.
//
// The history of the period reaching back to from is requested, then bars
// outside [from, to] are dropped.
func (c *Client) Fetch(ctx context.Context, symbol string, from, to date.Date) (dailyprompt.PriceWindow, error) {
	w := dailyprompt.PriceWindow{Symbol: symbol}
	if err := ctx.Err(); err != nil {
		return w, err
	}

	params := models.HistoryParams{
		Period:     Period(c.today(), from),
		Interval:   "1d",
		AutoAdjust: true,
	}
	bars, err := c.history(symbol, params)
	if err != nil {
		return w, fmt.Errorf("fetching %s: %w", symbol, err)
	}
	log.Debug().Str("symbol", symbol).Str("period", params.Period).Int("bars", len(bars)).Msg("yahoo history")

	span := date.Range{From: from, To: to}
	for _, bar := range bars {
		on := date.Of(bar.Date)
		// sessions without a close are skipped.
		if !span.Contains(on) || math.IsNaN(bar.Close) || bar.Close <= 0 {
			continue
		}
		w.Bars = append(w.Bars, dailyprompt.Bar{
			Date:   on,
			Close:  decimal.NewFromFloat(bar.Close),
			Volume: decimal.NewFromFloat(float64(bar.Volume)),
		})
	}
	w.Sort()
	return w, nil
}
