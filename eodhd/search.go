package eodhd

import (
	"context"
	"fmt"
	"net/url"

	"github.com/etnz/dailyprompt/date"
)

// SearchResult matches the structure of a single item in the EODHD search API response.
type SearchResult struct {
	Code              string    `json:"Code"`
	Exchange          string    `json:"Exchange"`
	Name              string    `json:"Name"`
	Type              string    `json:"Type"`
	Country           string    `json:"Country"`
	Currency          string    `json:"Currency"`
	ISIN              string    `json:"ISIN"`
	PreviousClose     float64   `json:"previousClose"`
	PreviousCloseDate date.Date `json:"previousCloseDate"`
}

// Ticker returns the symbol to write in the ledger to get this result's prices.
func (r SearchResult) Ticker() string {
	switch r.Exchange {
	case "US":
		return r.Code
	case "INDX":
		return "^" + r.Code
	}
	return r.Code + "." + r.Exchange
}

// Search searches for securities via EOD Historical Data API.
func (c *Client) Search(ctx context.Context, searchTerm string) ([]SearchResult, error) {
	addr := fmt.Sprintf("%s/search/%s?api_token=%s&fmt=json", c.baseURL, url.PathEscape(searchTerm), url.QueryEscape(c.apiKey))

	var results []SearchResult
	if err := jwget(ctx, c.http, addr, &results); err != nil {
		return nil, err
	}
	return results, nil
}
