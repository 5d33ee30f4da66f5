package dailyprompt

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money is an amount in the portfolio currency (USD).
//
// The report prints amounts without thousands separator ("$10234.50"), only
// traded volumes are grouped.
type Money struct {
	value decimal.Decimal
}

func M[T float64 | int64 | decimal.Decimal](value T) Money {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return Money{value: v}
	case float64:
		return Money{value: decimal.NewFromFloat(v)}
	case int64:
		return Money{value: decimal.NewFromInt(v)}
	}
	panic("unsupported type")
}

func (m Money) Decimal() decimal.Decimal { return m.value }
func (m Money) IsZero() bool             { return m.value.IsZero() }
func (m Money) Equal(n Money) bool       { return m.value.Equal(n.value) }

// Amounts are rounded as float64 values: "10.125" prints "10.12" and "2.675",
// stored as 2.67499..., prints "2.67".

// String formats the amount with cents, "$1234.50".
func (m Money) String() string { return usd().Grapheme + m.Fixed() }

// Whole formats the amount without cents, "$1235".
func (m Money) Whole() string { return fmt.Sprintf("%s%.0f", usd().Grapheme, m.value.InexactFloat64()) }

// Fixed formats the amount with cents and no currency sign, "1234.50".
func (m Money) Fixed() string { return fmt.Sprintf("%.2f", m.value.InexactFloat64()) }

func usd() *money.Currency { return money.GetCurrency(money.USD) }

// volumeFormatter groups thousands and keeps a single decimal: "$1,234,567.0".
var volumeFormatter = func() *money.Formatter {
	cur := usd()
	return money.NewFormatter(1, cur.Decimal, cur.Thousand, cur.Grapheme, cur.Template)
}()

// FormatVolume formats a traded volume the way the report prints it. Ties
// round to even.
func FormatVolume(v decimal.Decimal) string {
	return volumeFormatter.Format(v.Shift(1).RoundBank(0).IntPart())
}
