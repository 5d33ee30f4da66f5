package date

import (
	"testing"
	"time"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.time() != d2.time() {
		// Note that usually time.Time are not comparable (there is a pointer for the timezone) this
		// tests also checks that the property remain true
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestParse(t *testing.T) {
	testCases := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{in: "2025-07-01", want: New(2025, time.July, 1)},
		{in: "2025-7-1", want: New(2025, time.July, 1)},
		{in: "2025-07-01 00:00:00", want: New(2025, time.July, 1)},
		{in: "2025-07-01T15:04:05Z", want: New(2025, time.July, 1)},
		{in: "", wantErr: true},
		{in: "07/01/2025", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := Parse(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("Parse(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestLastTradingDay(t *testing.T) {
	testCases := []struct {
		name string
		in   Date
		want Date
	}{
		{"Friday", New(2025, time.September, 12), New(2025, time.September, 12)},
		{"Saturday", New(2025, time.September, 13), New(2025, time.September, 12)},
		{"Sunday", New(2025, time.September, 14), New(2025, time.September, 12)},
		{"Monday", New(2025, time.September, 15), New(2025, time.September, 15)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := LastTradingDay(tc.in); got != tc.want {
				t.Errorf("LastTradingDay(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestTrailingWindow(t *testing.T) {
	got := TrailingWindow(New(2025, time.September, 14), 5)
	want := Range{From: New(2025, time.September, 8), To: New(2025, time.September, 12)}
	if got != want {
		t.Errorf("TrailingWindow() = %v, want %v", got, want)
	}
	if got.Days() != 5 {
		t.Errorf("TrailingWindow().Days() = %d, want 5", got.Days())
	}
	if !got.Contains(New(2025, time.September, 8)) || got.Contains(New(2025, time.September, 13)) {
		t.Errorf("TrailingWindow().Contains() boundaries are wrong for %v", got)
	}
}
