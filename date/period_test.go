package date

import "testing"

func TestParsePeriod(t *testing.T) {
	testCases := []struct {
		in      string
		want    Period
		wantErr bool
	}{
		{"daily", Daily, false},
		{"day", Daily, false},
		{"Weekly", Weekly, false},
		{"month", Monthly, false},
		{"QUARTERLY", Quarterly, false},
		{"year", Yearly, false},
		{"fortnight", Daily, true},
		{"", Daily, true},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParsePeriod(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParsePeriod(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if err == nil && got != tc.want {
				t.Errorf("ParsePeriod(%q) = %s, want %s", tc.in, got, tc.want)
			}
		})
	}
}

func TestPeriodStringRoundTrip(t *testing.T) {
	for _, p := range Periods {
		got, err := ParsePeriod(p.String())
		if err != nil {
			t.Fatalf("ParsePeriod(%s): %v", p, err)
		}
		if got != p {
			t.Errorf("ParsePeriod(%s) = %s", p, got)
		}
	}
}

func TestPeriodsAscending(t *testing.T) {
	for i := 1; i < len(Periods); i++ {
		if Periods[i] <= Periods[i-1] {
			t.Fatalf("Periods not ascending: %v", Periods)
		}
	}
}
