package dailyprompt

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// TradingDays is the number of sessions used to convert annual rates to daily ones.
const TradingDays = 252

// DefaultRiskFree is the annual risk-free rate used when none is configured.
const DefaultRiskFree = 0.045

// Returns computes the simple returns between consecutive values.
//
// The first point has no return. A return that cannot be computed (0/0) is
// dropped, a division of a non zero move by zero stays infinite.
func Returns(values []float64) []float64 {
	if len(values) < 2 {
		return nil
	}
	returns := make([]float64, 0, len(values)-1)
	for i := 1; i < len(values); i++ {
		r := (values[i] - values[i-1]) / values[i-1]
		if math.IsNaN(r) {
			continue
		}
		returns = append(returns, r)
	}
	return returns
}

// DailyRate converts an annual rate into its daily compounding equivalent.
func DailyRate(annual float64) float64 {
	return math.Pow(1+annual, 1.0/TradingDays) - 1
}

// RiskStats holds the risk adjusted performance over a series of daily returns.
//
// Sharpe and Sortino are NaN when they are undefined.
type RiskStats struct {
	Periods      int     // number of returns
	PeriodReturn float64 // compounded return over the whole series
	RiskFree     float64 // risk-free return over the same periods
	StdDev       float64 // sample standard deviation of the returns
	Downside     float64 // downside deviation below the daily risk-free rate
	Sharpe       float64
	Sortino      float64
}

// HasSharpe reports whether the Sharpe ratio can be reported.
func (s RiskStats) HasSharpe() bool { return finite(s.Sharpe) }

// HasSortino reports whether the Sortino ratio can be reported.
func (s RiskStats) HasSortino() bool { return finite(s.Sortino) }

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

// ComputeRiskStats computes the Sharpe and Sortino ratios of returns over the
// whole period, against an annual risk-free rate.
//
// It returns false when there are less than two returns.
//
// The downside deviation is the root mean square of the excess returns capped
// at zero, averaged over every period and not only the losing ones.
func ComputeRiskStats(returns []float64, annualRiskFree float64) (RiskStats, bool) {
	n := len(returns)
	if n < 2 {
		return RiskStats{Periods: n, Sharpe: math.NaN(), Sortino: math.NaN()}, false
	}
	rfDaily := DailyRate(annualRiskFree)

	s := RiskStats{
		Periods:      n,
		PeriodReturn: compound(returns),
		RiskFree:     math.Pow(1+rfDaily, float64(n)) - 1,
		StdDev:       stat.StdDev(returns, nil),
		Sharpe:       math.NaN(),
		Sortino:      math.NaN(),
	}

	squares := make([]float64, n)
	for i, r := range returns {
		d := min(r-rfDaily, 0)
		squares[i] = d * d
	}
	s.Downside = math.Sqrt(stat.Mean(squares, nil))

	excess := s.PeriodReturn - s.RiskFree
	scale := math.Sqrt(float64(n))
	if s.StdDev > 0 {
		s.Sharpe = excess / (s.StdDev * scale)
	}
	if s.Downside > 0 {
		s.Sortino = excess / (s.Downside * scale)
	}
	return s, true
}

// compound returns the product of (1+r) minus one over the finite returns, or
// NaN if there is none.
func compound(returns []float64) float64 {
	product, count := 1.0, 0
	for _, r := range returns {
		if !finite(r) {
			continue
		}
		product *= 1 + r
		count++
	}
	if count == 0 {
		return math.NaN()
	}
	return product - 1
}
