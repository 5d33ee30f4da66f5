package dailyprompt

import (
	"context"
	"errors"
	"fmt"

	"github.com/etnz/dailyprompt/date"
	"github.com/shopspring/decimal"
)

// Index identifies the market index the portfolio is compared to.
type Index struct {
	Symbol string // as known by the price source, "^GSPC"
	Name   string // as printed in the report, "S&P 500"
}

// Comparison is what the starting equity would be worth if it had been invested
// in an index over the life of the portfolio.
type Comparison struct {
	Index Index
	Span  date.Range
	Start decimal.Decimal
	Value decimal.Decimal
}

// ErrNoIndexData is returned when the price source has no bar for the index in the requested span.
var ErrNoIndexData = errors.New("no index data")

// CompareIndex scales start by the index performance between the first and the
// last bar available in span.
func CompareIndex(ctx context.Context, src PriceSource, index Index, span date.Range, start decimal.Decimal) (*Comparison, error) {
	w, err := src.Fetch(ctx, index.Symbol, span.From, span.To)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", index.Symbol, err)
	}
	if w.Len() == 0 {
		return nil, fmt.Errorf("%w for %s in %s", ErrNoIndexData, index.Symbol, span)
	}
	initial, now := w.First().Close, w.Last().Close
	if initial.IsZero() {
		return nil, fmt.Errorf("%s closed at zero on %s", index.Symbol, w.First().Date)
	}
	return &Comparison{
		Index: index,
		Span:  span,
		Start: start,
		Value: start.Mul(now).Div(initial),
	}, nil
}
