package dailyprompt

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/etnz/dailyprompt/date"
	"github.com/google/go-cmp/cmp"
)

const ledgerHeader = "Date,Ticker,Shares,Buy Price,Cost Basis,Stop Loss,Current Price,Total Value,PnL,Action,Cash Balance,Total Equity\n"

// sampleLedger covers three days, a second holding is bought on the last one.
const sampleLedger = ledgerHeader +
	"2025-08-04,ABEO,6,5.77,34.62,4.9,5.77,34.62,0.0,BUY,,\n" +
	"2025-08-04,TOTAL,,,,,,34.62,0.0,,65.38,100.0\n" +
	"2025-08-05,ABEO,6,5.77,34.62,4.9,5.92,35.52,0.9,HOLD,,\n" +
	"2025-08-05,TOTAL,,,,,,35.52,0.9,,65.38,100.90\n" +
	"2025-08-06,ABEO,6,5.77,34.62,4.9,5.8,34.8,0.18,HOLD,,\n" +
	"2025-08-06,IINN,10,1.1,11.0,0.9,1.2,12.0,1.0,BUY,,\n" +
	"2025-08-06,TOTAL,,,,,,46.8,1.18,,54.380,101.180\n"

func decodeString(t *testing.T, s string) *Ledger {
	t.Helper()
	l, err := DecodeLedger(strings.NewReader(s))
	if err != nil {
		t.Fatalf("DecodeLedger() unexpected error: %v", err)
	}
	return l
}

func TestLedger_Latest(t *testing.T) {
	l := decodeString(t, sampleLedger)

	st, err := l.Latest()
	if err != nil {
		t.Fatalf("Latest() unexpected error: %v", err)
	}
	if want := date.New(2025, 8, 6); st.Date != want {
		t.Errorf("Latest().Date = %s, want %s", st.Date, want)
	}
	// literal values are kept, trailing zeros included.
	if got, want := st.Total.CashBalance, "54.380"; got != want {
		t.Errorf("cash = %q, want %q", got, want)
	}
	if got, want := st.Total.TotalEquity, "101.180"; got != want {
		t.Errorf("equity = %q, want %q", got, want)
	}
	if got, want := st.Cash.String(), "54.38"; got != want {
		t.Errorf("Cash = %s, want %s", got, want)
	}
	if got, want := st.Equity.String(), "101.18"; got != want {
		t.Errorf("Equity = %s, want %s", got, want)
	}
	if diff := cmp.Diff([]string{"ABEO", "IINN"}, st.Tickers()); diff != "" {
		t.Errorf("Tickers() mismatch (-want +got):\n%s", diff)
	}
	if got, want := st.Holdings[1].String(), "IINN 10 1.1 0.9 11.0"; got != want {
		t.Errorf("Holdings[1] = %q, want %q", got, want)
	}
}

func TestLedger_LatestErrors(t *testing.T) {
	testCases := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name:    "header only",
			content: ledgerHeader,
			wantErr: ErrEmptyData,
		},
		{
			name:    "no columns",
			content: "",
			wantErr: ErrEmptyData,
		},
		{
			name:    "latest date has no TOTAL",
			content: ledgerHeader + "2025-08-04,TOTAL,,,,,,0,0,,100,100\n2025-08-05,ABEO,6,5.77,34.62,4.9,,,,,,\n",
			wantErr: ErrMissingTotals,
		},
		{
			name:    "malformed equity",
			content: ledgerHeader + "2025-08-04,TOTAL,,,,,,0,0,,100,abc\n",
			wantErr: ErrMalformedTotals,
		},
		{
			name:    "malformed cash",
			content: ledgerHeader + "2025-08-04,TOTAL,,,,,,0,0,,,100\n",
			wantErr: ErrMalformedTotals,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l, err := DecodeLedger(strings.NewReader(tc.content))
			if err == nil {
				_, err = l.Latest()
			}
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("got error %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestLedger_DuplicateTotals(t *testing.T) {
	l := decodeString(t, ledgerHeader+
		"2025-08-04,TOTAL,,,,,,0,0,,10,100\n"+
		"2025-08-04,TOTAL,,,,,,0,0,,20,200\n")

	st, err := l.Latest()
	if err != nil {
		t.Fatalf("Latest() unexpected error: %v", err)
	}
	if got := st.Total.TotalEquity; got != "100" {
		t.Errorf("equity = %q, want the first TOTAL row", got)
	}
	if got := l.EquitySeries().Len(); got != 1 {
		t.Errorf("EquitySeries().Len() = %d, want 1", got)
	}
}

func TestDecodeLedger(t *testing.T) {
	t.Run("invalid dates are skipped", func(t *testing.T) {
		l := decodeString(t, ledgerHeader+
			"not a date,TOTAL,,,,,,0,0,,1,999\n"+
			"2025-08-04,TOTAL,,,,,,0,0,,10,100\n")
		if got := len(l.Rows()); got != 1 {
			t.Errorf("len(Rows()) = %d, want 1", got)
		}
	})
	t.Run("byte order mark", func(t *testing.T) {
		l := decodeString(t, "\ufeff"+ledgerHeader+"2025-08-04,TOTAL,,,,,,0,0,,10,100\n")
		if got, ok := l.LatestDate(); !ok || got != date.New(2025, 8, 4) {
			t.Errorf("LatestDate() = %s, %v", got, ok)
		}
	})
	t.Run("datetime column", func(t *testing.T) {
		l := decodeString(t, ledgerHeader+"2025-08-04 00:00:00,TOTAL,,,,,,0,0,,10,100\n")
		if got, _ := l.LatestDate(); got != date.New(2025, 8, 4) {
			t.Errorf("LatestDate() = %s", got)
		}
	})
	t.Run("missing ticker column", func(t *testing.T) {
		if _, err := DecodeLedger(strings.NewReader("Date,Cash Balance\n2025-08-04,1\n")); err == nil {
			t.Error("DecodeLedger() expected an error")
		}
	})
}

func TestLedger_EquitySeries(t *testing.T) {
	// rows are not in chronological order and one equity is blank.
	l := decodeString(t, ledgerHeader+
		"2025-08-06,TOTAL,,,,,,0,0,,10,102\n"+
		"2025-08-04,TOTAL,,,,,,0,0,,10,100\n"+
		"2025-08-05,TOTAL,,,,,,0,0,,10,\n"+
		"2025-08-07,TOTAL,,,,,,0,0,,10,101.5\n")

	series := l.EquitySeries()
	if diff := cmp.Diff([]float64{100, 102, 101.5}, series.Slice()); diff != "" {
		t.Errorf("EquitySeries() mismatch (-want +got):\n%s", diff)
	}
	if got, want := series.Span(), (date.Range{From: date.New(2025, 8, 4), To: date.New(2025, 8, 7)}); got != want {
		t.Errorf("Span() = %s, want %s", got, want)
	}
}

func TestLoadLedger(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadLedger(filepath.Join(dir, "missing.csv")); !errors.Is(err, ErrNotFound) {
		t.Errorf("LoadLedger(missing) error = %v, want %v", err, ErrNotFound)
	}

	path := filepath.Join(dir, "Daily Updates.csv")
	if err := os.WriteFile(path, []byte(sampleLedger), 0644); err != nil {
		t.Fatal(err)
	}
	l, err := LoadLedger(path)
	if err != nil {
		t.Fatalf("LoadLedger() unexpected error: %v", err)
	}
	if got, want := l.Name(), "Daily Updates"; got != want {
		t.Errorf("Name() = %q, want %q", got, want)
	}
}

func TestLedger_At(t *testing.T) {
	l := decodeString(t, sampleLedger)

	testCases := []struct {
		on       date.Date
		want     date.Date
		holdings int
		wantErr  error
	}{
		{on: date.New(2025, 8, 5), want: date.New(2025, 8, 5), holdings: 1},
		{on: date.New(2025, 8, 10), want: date.New(2025, 8, 6), holdings: 2},
		{on: date.New(2025, 8, 1), wantErr: ErrMissingTotals},
	}
	for _, tc := range testCases {
		st, err := l.At(tc.on)
		if tc.wantErr != nil {
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("At(%s) error = %v, want %v", tc.on, err, tc.wantErr)
			}
			continue
		}
		if err != nil {
			t.Fatalf("At(%s) unexpected error: %v", tc.on, err)
		}
		if st.Date != tc.want || len(st.Holdings) != tc.holdings {
			t.Errorf("At(%s) = %s with %d holdings, want %s with %d", tc.on, st.Date, len(st.Holdings), tc.want, tc.holdings)
		}
	}
}
