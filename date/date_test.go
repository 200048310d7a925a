package date

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNewNormalizes(t *testing.T) {
	testCases := []struct {
		name string
		in   Date
		want Date
	}{
		{"month zero rolls back", New(2025, 0, 1), New(2024, time.December, 1)},
		{"month thirteen rolls over", New(2024, 13, 1), New(2025, time.January, 1)},
		{"day zero is end of previous month", New(2025, time.March, 0), New(2025, time.February, 28)},
		{"day zero in leap february", New(2024, time.March, 0), New(2024, time.February, 29)},
		{"day overflow", New(2025, time.January, 32), New(2025, time.February, 1)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.in != tc.want {
				t.Errorf("got %s, want %s", tc.in, tc.want)
			}
		})
	}
}

func TestAddSub(t *testing.T) {
	d := New(2025, time.January, 15)
	if got := d.Add(20); got != New(2025, time.February, 4) {
		t.Errorf("Add(20) = %s", got)
	}
	if got := d.Add(-15); got != New(2024, time.December, 31) {
		t.Errorf("Add(-15) = %s", got)
	}
	if got := New(2025, time.March, 1).Sub(New(2025, time.January, 1)); got != 59 {
		t.Errorf("Sub() = %d, want 59", got)
	}
	if got := d.Sub(d.Add(3)); got != -3 {
		t.Errorf("Sub() = %d, want -3", got)
	}
}

func TestStartOf(t *testing.T) {
	// 2025-08-14 is a Thursday in Q3.
	d := New(2025, time.August, 14)
	testCases := []struct {
		period Period
		want   Date
	}{
		{Daily, d},
		{Weekly, New(2025, time.August, 11)},
		{Monthly, New(2025, time.August, 1)},
		{Quarterly, New(2025, time.July, 1)},
		{Yearly, New(2025, time.January, 1)},
	}
	for _, tc := range testCases {
		t.Run(tc.period.String(), func(t *testing.T) {
			if got := d.StartOf(tc.period); got != tc.want {
				t.Errorf("StartOf(%s) = %s, want %s", tc.period, got, tc.want)
			}
		})
	}

	// A Sunday belongs to the week started the previous Monday.
	sunday := New(2025, time.August, 17)
	if got := sunday.StartOf(Weekly); got != New(2025, time.August, 11) {
		t.Errorf("sunday.StartOf(weekly) = %s, want 2025-08-11", got)
	}
}

func TestEndOf(t *testing.T) {
	d := New(2025, time.August, 14)
	testCases := []struct {
		period Period
		want   Date
	}{
		{Daily, d},
		{Weekly, New(2025, time.August, 17)},
		{Monthly, New(2025, time.August, 31)},
		{Quarterly, New(2025, time.September, 30)},
		{Yearly, New(2025, time.December, 31)},
	}
	for _, tc := range testCases {
		t.Run(tc.period.String(), func(t *testing.T) {
			if got := d.EndOf(tc.period); got != tc.want {
				t.Errorf("EndOf(%s) = %s, want %s", tc.period, got, tc.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	testCases := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{"2025-01-15", New(2025, time.January, 15), false},
		{"2025-1-5", New(2025, time.January, 5), false},
		{"not-a-date", Date{}, true},
		{"2025/01/15", Date{}, true},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := Parse(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("Parse(%q) = %s, want %s", tc.in, got, tc.want)
			}
		})
	}
}

func TestJSONRoundTrip(t *testing.T) {
	d := New(2025, time.July, 3)
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `"2025-07-03"` {
		t.Errorf("marshal = %s", b)
	}
	var back Date
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatal(err)
	}
	if back != d {
		t.Errorf("round trip = %s, want %s", back, d)
	}
}
