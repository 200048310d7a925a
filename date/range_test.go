package date

import (
	"testing"
	"time"
)

func TestRangePeriod(t *testing.T) {
	testCases := []struct {
		name string
		r    Range
		want Period
		ok   bool
	}{
		{"single day", NewRange(New(2025, time.August, 14), Daily), Daily, true},
		{"full week", NewRange(New(2025, time.August, 14), Weekly), Weekly, true},
		{"full month", NewRange(New(2025, time.August, 14), Monthly), Monthly, true},
		{"full quarter", NewRange(New(2025, time.August, 14), Quarterly), Quarterly, true},
		{"full year", NewRange(New(2025, time.August, 14), Yearly), Yearly, true},
		{"arbitrary span", Range{New(2025, time.August, 3), New(2025, time.August, 20)}, Daily, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, ok := tc.r.Period()
			if ok != tc.ok || (ok && p != tc.want) {
				t.Errorf("Period() = %s, %v, want %s, %v", p, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestRangeContains(t *testing.T) {
	r := NewRange(New(2025, time.August, 14), Monthly)
	for _, d := range []Date{r.From, r.To, New(2025, time.August, 14)} {
		if !r.Contains(d) {
			t.Errorf("Contains(%s) = false", d)
		}
	}
	for _, d := range []Date{New(2025, time.July, 31), New(2025, time.September, 1)} {
		if r.Contains(d) {
			t.Errorf("Contains(%s) = true", d)
		}
	}
}

func TestRangeIdentifier(t *testing.T) {
	testCases := []struct {
		r    Range
		want string
	}{
		{NewRange(New(2025, time.January, 16), Daily), "2025-01-16"},
		{NewRange(New(2025, time.January, 16), Weekly), "2025-W03"},
		{NewRange(New(2025, time.January, 16), Monthly), "2025-01"},
		{NewRange(New(2025, time.January, 16), Quarterly), "2025-Q1"},
		{NewRange(New(2025, time.August, 16), Quarterly), "2025-Q3"},
		{NewRange(New(2025, time.January, 16), Yearly), "2025"},
		{Range{New(2025, time.August, 3), New(2025, time.August, 20)}, "2025-08-03_2025-08-20"},
	}
	for _, tc := range testCases {
		t.Run(tc.want, func(t *testing.T) {
			if got := tc.r.Identifier(); got != tc.want {
				t.Errorf("Identifier() = %s, want %s", got, tc.want)
			}
		})
	}
}
