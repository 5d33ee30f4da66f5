package dailyprompt

import "errors"

// Ledger errors are fatal: no report is written when one of them is returned.
var (
	// ErrNotFound is returned when the ledger file does not exist.
	ErrNotFound = errors.New("ledger not found")
	// ErrEmptyData is returned when the ledger has a header but no rows.
	ErrEmptyData = errors.New("ledger is empty")
	// ErrMissingTotals is returned when the latest date has no TOTAL row.
	ErrMissingTotals = errors.New("no TOTAL row found in the latest data")
	// ErrMalformedTotals is returned when the latest TOTAL row cash or equity is not a number.
	ErrMalformedTotals = errors.New("malformed TOTAL row")
)
