package renderer

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/networth-report/networth"
)

// Display colors for changes.
const (
	colorGain = "#00b383"
	colorLoss = "#e53935"
	colorFlat = "#666666"
)

// Change is a formatted change ready for display, with its color.
type Change struct {
	Text  string
	Color string
}

// FormatMoney formats an amount with its currency symbol and thousands
// separators, no decimals: "$1,235", "-$15,500". With hide the amount
// is masked ("$XX") but the currency stays visible.
func FormatMoney(m networth.Money, hide bool) string {
	if hide {
		return m.Symbol() + "XX"
	}
	s := groupDigits(m.AsFloat())
	// Sign reads before the symbol.
	if rest, ok := strings.CutPrefix(s, "-"); ok {
		return "-" + m.Symbol() + rest
	}
	return m.Symbol() + s
}

// groupDigits rounds to a whole number and inserts thousands
// separators, keeping the sign.
func groupDigits(v float64) string {
	s := strconv.FormatFloat(math.Round(v), 'f', -1, 64)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// FireTier labels a net worth with its financial-independence tier, or
// "" below the first threshold.
func FireTier(amount float64) string {
	switch {
	case amount < 800_000:
		return ""
	case amount < 1_500_000:
		return "Lean FIRE"
	case amount < 2_000_000:
		return "Coast FIRE"
	case amount < 2_500_000:
		return "FIRE"
	default:
		return "Fat FIRE"
	}
}

// FormatNetWorth formats a net worth with its FIRE tier when it has
// one: "$2,600,000 (Fat FIRE)". The tier survives amount masking.
func FormatNetWorth(m networth.Money, hide bool) string {
	formatted := FormatMoney(m, hide)
	if tier := FireTier(m.AsFloat()); tier != "" {
		return fmt.Sprintf("%s (%s)", formatted, tier)
	}
	return formatted
}

// FormatChange formats a change with a direction arrow, optional
// percentage and a display color: ("↑ $1,235 (+5.20%)", green).
func FormatChange(change networth.Money, percent *networth.Percent, hide bool) Change {
	var text, color string
	switch {
	case change.IsPositive():
		text, color = "↑ "+FormatMoney(change, hide), colorGain
	case change.IsNegative():
		text, color = "↓ "+FormatMoney(change.Abs(), hide), colorLoss
	default:
		text, color = FormatMoney(change, hide), colorFlat
	}

	if percent != nil {
		switch {
		case *percent > 0:
			text = fmt.Sprintf("%s (+%.2f%%)", text, float64(*percent))
		case *percent < 0:
			text = fmt.Sprintf("%s (%.2f%%)", text, float64(*percent))
		default:
			text = fmt.Sprintf("%s (0.00%%)", text)
		}
	}
	return Change{Text: text, Color: color}
}
