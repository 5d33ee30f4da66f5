// Package eodhd implements a price source on top of the EOD Historical Data API.
//
// An API key is required, see https://eodhd.com. Responses are cached on disk
// for the day.
package eodhd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/etnz/dailyprompt"
	"github.com/etnz/dailyprompt/date"
	"github.com/shopspring/decimal"
)

// DefaultBaseURL is the root of the EODHD API.
const DefaultBaseURL = "https://eodhd.com/api"

// ErrMissingAPIKey is returned when the client has no API key.
var ErrMissingAPIKey = errors.New("missing EODHD API key")

// Client fetches daily prices from EODHD.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient returns a client caching its responses in cacheDir (the system
// temporary directory if empty).
func NewClient(apiKey, cacheDir string) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		http:    newDailyCachingClient(cacheDir),
	}, nil
}

// WithBaseURL returns a copy of the client querying another server.
func (c *Client) WithBaseURL(base string) *Client {
	cc := *c
	cc.baseURL = strings.TrimSuffix(base, "/")
	return &cc
}

// Ticker returns the EODHD ticker of a symbol.
//
// Index symbols ("^GSPC") live in the INDX exchange, symbols without exchange
// are assumed to be US listed. Symbols with an exchange are kept as is.
func Ticker(symbol string) string {
	switch {
	case strings.HasPrefix(symbol, "^"):
		return strings.TrimPrefix(symbol, "^") + ".INDX"
	case strings.Contains(symbol, "."):
		return symbol
	default:
		return symbol + ".US"
	}
}

// Fetch implements dailyprompt.PriceSource.
func (c *Client) Fetch(ctx context.Context, symbol string, from, to date.Date) (dailyprompt.PriceWindow, error) {
	// https://eodhd.com/api/eod/MCD.US?api_token=demo&fmt=json&from=2017-01-05&to=2017-02-10
	// [
	//	{
	//		"date": "2024-02-13",
	//		"open": 675.066,
	//		"high": 684.219,
	//		"low": 648.659,
	//		"close": 668.445,
	//		"adjusted_close": 67.705,
	//		"volume": 0
	//	},
	// bounds are included in the response.
	q := url.Values{}
	q.Set("fmt", "json")
	q.Set("api_token", c.apiKey)
	q.Set("from", from.String())
	q.Set("to", to.String())
	addr := fmt.Sprintf("%s/eod/%s?%s", c.baseURL, url.PathEscape(Ticker(symbol)), q.Encode())

	type Info struct {
		Date   date.Date       `json:"date"`
		Close  decimal.Decimal `json:"close"`
		Volume decimal.Decimal `json:"volume"`
	}

	content := make([]Info, 0)
	if err := jwget(ctx, c.http, addr, &content); err != nil {
		return dailyprompt.PriceWindow{}, fmt.Errorf("fetching %s: %w", symbol, err)
	}

	w := dailyprompt.PriceWindow{Symbol: symbol}
	span := date.Range{From: from, To: to}
	for _, info := range content {
		if !span.Contains(info.Date) {
			continue
		}
		w.Bars = append(w.Bars, dailyprompt.Bar{Date: info.Date, Close: info.Close, Volume: info.Volume})
	}
	w.Sort()
	return w, nil
}
