package date

import (
	"errors"
	"slices"
	"time"
)

// ErrNegativeRetention is returned when a retention window is negative.
var ErrNegativeRetention = errors.New("retention window must not be negative")

// Classify returns the report periods due on a date, in ascending
// granularity. Daily is always first; a Monday adds Weekly; the first
// of a month adds Monthly, plus Quarterly on a quarter boundary and
// Yearly on January 1st. The result depends on the date alone.
func Classify(d Date) []Period {
	periods := []Period{Daily}

	if d.Weekday() == time.Monday {
		periods = append(periods, Weekly)
	}
	if d.Day() == 1 {
		periods = append(periods, Monthly)
		switch d.Month() {
		case time.January, time.April, time.July, time.October:
			periods = append(periods, Quarterly)
		}
		if d.Month() == time.January {
			periods = append(periods, Yearly)
		}
	}
	return periods
}

// IsMilestone reports whether d carries any non-daily classification.
// Milestone dates are retained forever by SelectRetained.
func IsMilestone(d Date) bool { return len(Classify(d)) > 1 }

// Comparison returns the date of the snapshot a report on d should be
// compared against. It only computes the candidate date; it does not
// guarantee a snapshot exists there.
func Comparison(d Date, p Period) Date {
	switch p {
	case Daily:
		return d.Add(-1)
	case Weekly:
		return d.Add(-7)
	case Monthly:
		// First of the previous month; Date normalization handles the
		// January to previous-December rollover.
		return New(d.Year(), d.Month()-1, 1)
	case Quarterly:
		return d.StartOf(Quarterly).Add(-1).StartOf(Quarterly)
	case Yearly:
		return New(d.Year()-1, time.January, 1)
	default:
		panic("unknown period")
	}
}

// ResolveComparison returns the comparison date for (d, p) if a
// snapshot exists for it in available, and whether it does. An absent
// comparison is a valid outcome, not an error: on first use there is
// no prior Monday to compare a weekly report against.
func ResolveComparison(d Date, p Period, available []Date) (Date, bool) {
	target := Comparison(d, p)
	if slices.Contains(available, target) {
		return target, true
	}
	return Date{}, false
}

// DueReport is one report to generate for a given day.
type DueReport struct {
	Period        Period
	Comparison    Date
	HasComparison bool
}

// ReportsDue combines Classify and ResolveComparison for a day. The
// daily report is always due, with or without a comparison snapshot.
// Weekly and coarser reports are due only when their comparison
// snapshot exists in available: there is nothing to report against
// otherwise. Results are ordered by ascending granularity so callers
// can sequence outgoing reports deterministically.
func ReportsDue(d Date, available []Date) []DueReport {
	var due []DueReport
	for _, p := range Classify(d) {
		comparison, ok := ResolveComparison(d, p, available)
		if p == Daily {
			due = append(due, DueReport{Period: p, Comparison: comparison, HasComparison: ok})
			continue
		}
		if ok {
			due = append(due, DueReport{Period: p, Comparison: comparison, HasComparison: true})
		}
	}
	return due
}

// SelectRetained returns the subset of available dates that must
// survive a cleanup run on today. A date is retained if it is today or
// yesterday (the daily comparison window), if it is within the
// retention window, or if it is a milestone. Milestones are kept
// forever: a future monthly or yearly report needs them long after the
// retention window has passed. Deleting the rest is the caller's job;
// this function performs no I/O.
func SelectRetained(available []Date, today Date, retentionDays int) ([]Date, error) {
	if retentionDays < 0 {
		return nil, ErrNegativeRetention
	}

	yesterday := today.Add(-1)
	var retained []Date
	for _, d := range available {
		switch {
		case d == today || d == yesterday:
			retained = append(retained, d)
		case today.Sub(d) <= retentionDays:
			retained = append(retained, d)
		case IsMilestone(d):
			retained = append(retained, d)
		}
	}
	return retained, nil
}
