package dailyprompt

import (
	"context"

	"github.com/etnz/dailyprompt/date"
)

// StaticSource is an in-memory PriceSource.
//
// It serves the "offline" price source, where every symbol is unavailable, and
// deterministic fixtures.
type StaticSource struct {
	Bars   map[string][]Bar // chronological bars per symbol
	Errors map[string]error // fetch failures per symbol

	Calls []string // symbols fetched, in order
}

// Add appends bars to symbol and returns the source for chaining.
func (s *StaticSource) Add(symbol string, bars ...Bar) *StaticSource {
	if s.Bars == nil {
		s.Bars = make(map[string][]Bar)
	}
	s.Bars[symbol] = append(s.Bars[symbol], bars...)
	return s
}

// Fail makes every fetch of symbol fail with err.
func (s *StaticSource) Fail(symbol string, err error) *StaticSource {
	if s.Errors == nil {
		s.Errors = make(map[string]error)
	}
	s.Errors[symbol] = err
	return s
}

func (s *StaticSource) Fetch(ctx context.Context, symbol string, from, to date.Date) (PriceWindow, error) {
	s.Calls = append(s.Calls, symbol)
	if err := ctx.Err(); err != nil {
		return PriceWindow{}, err
	}
	if err, ok := s.Errors[symbol]; ok {
		return PriceWindow{}, err
	}
	w := PriceWindow{Symbol: symbol}
	span := date.Range{From: from, To: to}
	for _, b := range s.Bars[symbol] {
		if span.Contains(b.Date) {
			w.Bars = append(w.Bars, b)
		}
	}
	return w, nil
}
