package dailyprompt

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/dailyprompt/date"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// TotalTicker is the reserved ticker of the per-date summary row.
const TotalTicker = "TOTAL"

// Ledger column names, as written by the daily portfolio update.
const (
	ColDate      = "Date"
	ColTicker    = "Ticker"
	ColCash      = "Cash Balance"
	ColEquity    = "Total Equity"
	ColShares    = "Shares"
	ColBuyPrice  = "Buy Price"
	ColStopLoss  = "Stop Loss"
	ColCostBasis = "Cost Basis"
)

// LedgerRow is one line of the ledger.
//
// Values are kept as written in the file so that holdings can be rendered
// verbatim. A TOTAL row only uses CashBalance and TotalEquity.
type LedgerRow struct {
	Date        date.Date
	Ticker      string
	CashBalance string
	TotalEquity string
	Shares      string
	BuyPrice    string
	StopLoss    string
	CostBasis   string
}

// IsTotal reports whether the row is the summary row of its date.
func (r LedgerRow) IsTotal() bool { return r.Ticker == TotalTicker }

// String formats a holding row as "ticker shares buy_price stop_loss cost_basis".
func (r LedgerRow) String() string {
	return strings.Join([]string{r.Ticker, r.Shares, r.BuyPrice, r.StopLoss, r.CostBasis}, " ")
}

// Ledger is the decoded daily ledger.
type Ledger struct {
	name string
	rows []LedgerRow
}

// Name returns the ledger name, the file base name without extension.
func (l *Ledger) Name() string { return l.name }

// Rows returns the rows with a valid date, in file order.
func (l *Ledger) Rows() []LedgerRow { return l.rows }

// Statement is the state of the portfolio at the latest ledger date.
type Statement struct {
	Date     date.Date
	Cash     decimal.Decimal
	Equity   decimal.Decimal
	Total    LedgerRow
	Holdings []LedgerRow // in ledger order
}

// LoadLedger reads the ledger CSV file at path.
func LoadLedger(path string) (*Ledger, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w at %s: %w", ErrNotFound, path, err)
	}
	if err != nil {
		return nil, fmt.Errorf("could not open ledger file %q: %w", path, err)
	}
	defer f.Close()

	ledger, err := DecodeLedger(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode ledger file %q: %w", path, err)
	}
	ledger.name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return ledger, nil
}

// DecodeLedger decodes a ledger in CSV format.
//
// Columns are matched by header name, Date and Ticker are required. Rows whose
// date cannot be parsed are dropped.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: no columns to parse", ErrEmptyData)
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		index[name] = i
	}
	for _, required := range []string{ColDate, ColTicker} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("missing column %q", required)
		}
	}

	field := func(record []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	ledger := &Ledger{}
	count := 0
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", count+1, err)
		}
		count++

		raw := field(record, ColDate)
		on, err := date.Parse(raw)
		if err != nil {
			log.Debug().Int("row", count).Str("date", raw).Msg("skipping ledger row with invalid date")
			continue
		}
		ledger.rows = append(ledger.rows, LedgerRow{
			Date:        on,
			Ticker:      field(record, ColTicker),
			CashBalance: field(record, ColCash),
			TotalEquity: field(record, ColEquity),
			Shares:      field(record, ColShares),
			BuyPrice:    field(record, ColBuyPrice),
			StopLoss:    field(record, ColStopLoss),
			CostBasis:   field(record, ColCostBasis),
		})
	}
	if count == 0 {
		return nil, ErrEmptyData
	}
	return ledger, nil
}

// LatestDate returns the most recent date in the ledger.
func (l *Ledger) LatestDate() (date.Date, bool) {
	var latest date.Date
	for _, row := range l.rows {
		if latest.IsZero() || row.Date.After(latest) {
			latest = row.Date
		}
	}
	return latest, !latest.IsZero()
}

// Latest returns the statement of the most recent date.
func (l *Ledger) Latest() (*Statement, error) {
	on, ok := l.LatestDate()
	if !ok {
		return nil, ErrMissingTotals
	}
	return l.At(on)
}

// At returns the statement of the latest ledger date on or before 'on'.
func (l *Ledger) At(on date.Date) (*Statement, error) {
	var found date.Date
	for _, row := range l.rows {
		if !row.Date.After(on) && (found.IsZero() || row.Date.After(found)) {
			found = row.Date
		}
	}
	if found.IsZero() {
		return nil, fmt.Errorf("%w on or before %s", ErrMissingTotals, on)
	}
	return l.statement(found)
}

// statement returns the statement of exactly that date.
func (l *Ledger) statement(on date.Date) (*Statement, error) {
	st := &Statement{Date: on}
	found := false
	for _, row := range l.rows {
		if row.Date != on {
			continue
		}
		if !row.IsTotal() {
			st.Holdings = append(st.Holdings, row)
			continue
		}
		if found {
			// only the first TOTAL row of a date counts.
			continue
		}
		found = true
		st.Total = row
	}
	if !found {
		return nil, fmt.Errorf("%w (%s)", ErrMissingTotals, on)
	}

	var err error
	if st.Cash, err = decimal.NewFromString(st.Total.CashBalance); err != nil {
		return nil, fmt.Errorf("%w: cash balance %q on %s: %w", ErrMalformedTotals, st.Total.CashBalance, on, err)
	}
	if st.Equity, err = decimal.NewFromString(st.Total.TotalEquity); err != nil {
		return nil, fmt.Errorf("%w: total equity %q on %s: %w", ErrMalformedTotals, st.Total.TotalEquity, on, err)
	}
	return st, nil
}

// Tickers returns the holding tickers of the statement, in ledger order.
func (s *Statement) Tickers() []string {
	tickers := make([]string, 0, len(s.Holdings))
	for _, h := range s.Holdings {
		tickers = append(tickers, h.Ticker)
	}
	return tickers
}

// EquitySeries returns the total equity of every TOTAL row, sorted by date.
//
// TOTAL rows with a blank or invalid equity are left out of the series. As in
// Latest, the first TOTAL row of a date wins.
func (l *Ledger) EquitySeries() *date.History[float64] {
	h := new(date.History[float64])
	for _, row := range l.rows {
		if !row.IsTotal() {
			continue
		}
		if _, exists := h.Get(row.Date); exists {
			continue
		}
		equity, err := decimal.NewFromString(row.TotalEquity)
		if err != nil {
			log.Debug().Stringer("date", row.Date).Str("equity", row.TotalEquity).Msg("skipping TOTAL row without equity")
			continue
		}
		h.Append(row.Date, equity.InexactFloat64())
	}
	return h
}
