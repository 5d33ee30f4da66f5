package date

import (
	"fmt"
	"time"
)

// Range represents a range of dates, boundaries included.
type Range struct{ From, To Date }

// Contains return true date is included in the range (boundaries included)
func (r Range) Contains(date Date) bool { return !date.Before(r.From) && !date.After(r.To) }

// Days returns the number of calendar days covered by the range.
func (r Range) Days() int {
	if r.To.Before(r.From) {
		return 0
	}
	return int(r.To.time().Sub(r.From.time())/Day) + 1
}

func (r Range) String() string { return fmt.Sprintf("%s..%s", r.From, r.To) }

// LastTradingDay returns the latest weekday on or before d.
//
// Saturdays and Sundays roll back to the preceding Friday. Exchange holidays are
// not known here, a price source simply returns no bar for them.
func LastTradingDay(d Date) Date {
	switch d.Weekday() {
	case time.Saturday:
		return d.Add(-1)
	case time.Sunday:
		return d.Add(-2)
	}
	return d
}

// TrailingWindow returns the range of 'days' calendar days ending on the last
// trading day on or before d.
func TrailingWindow(d Date, days int) Range {
	end := LastTradingDay(d)
	return Range{From: end.Add(-(days - 1)), To: end}
}
