package agent

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/networth-report/networth"
	"github.com/networth-report/networth/date"
)

// topMovers is how many accounts each perspective shows the model.
const topMovers = 3

// assetDelta is one asset's change between two raw snapshots,
// holdings included.
type assetDelta struct {
	Name      string
	Sheet     string
	Current   float64
	Previous  float64
	Change    float64
	Percent   *float64
	IsHolding bool
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

// physical reports whether the account is a physical asset: real
// estate, vehicles, domain names. Those have no day-to-day market
// volatility and only add noise to the narrative.
func physical(a networth.Account) bool {
	accountType := strings.ToLower(a.AccountType)
	subType := strings.ToLower(a.SubType)
	sheet := strings.ToLower(a.SheetName)

	if accountType == "property" {
		return true
	}
	if strings.Contains(sheet, "real estate") {
		return true
	}
	if subType == "primary residence" || subType == "investment property" {
		return true
	}
	if strings.Contains(subType, "vehicle") || strings.Contains(subType, "car") {
		return true
	}
	if strings.Contains(subType, "domain") || strings.Contains(strings.ToLower(a.Name), "domain") {
		return true
	}
	return false
}

// assetDeltas computes per-asset changes on the raw snapshots so that
// moves in individual holdings surface, not just their parent
// accounts. Physical assets, new accounts and unchanged accounts are
// skipped.
func assetDeltas(r *networth.ReportData) []assetDelta {
	if r.PreviousUnaggregated == nil {
		return nil
	}
	prev := make(map[string]networth.Account)
	for _, a := range r.PreviousUnaggregated.Accounts {
		prev[a.ID] = a
	}

	var deltas []assetDelta
	for _, a := range r.CurrentUnaggregated.Accounts {
		if a.Category != networth.Asset || physical(a) {
			continue
		}
		p, ok := prev[a.ID]
		if !ok {
			continue
		}
		change := a.Value.AsFloat() - p.Value.AsFloat()
		if change == 0 {
			continue
		}
		d := assetDelta{
			Name:      a.Name,
			Sheet:     a.SheetName,
			Current:   a.Value.AsFloat(),
			Previous:  p.Value.AsFloat(),
			Change:    change,
			IsHolding: a.IsHolding(),
		}
		if p.Value.AsFloat() != 0 {
			pct := change / math.Abs(p.Value.AsFloat()) * 100
			d.Percent = &pct
		}
		deltas = append(deltas, d)
	}
	return deltas
}

func roundPercent(p *networth.Percent) *float64 {
	if p == nil {
		return nil
	}
	v := round2(float64(*p))
	return &v
}

// summaryPrompt builds the report-summary prompt: the overall net
// worth change plus two perspectives on the asset moves (largest by
// amount, largest by percentage) and the top debt moves.
func summaryPrompt(r *networth.ReportData, period date.Period, hideAmounts bool) (string, error) {
	deltas := assetDeltas(r)

	byDollar := slices.Clone(deltas)
	slices.SortStableFunc(byDollar, func(a, b assetDelta) int {
		switch da, db := math.Abs(a.Change), math.Abs(b.Change); {
		case da > db:
			return -1
		case da < db:
			return 1
		}
		return 0
	})

	var byPercent []assetDelta
	for _, d := range deltas {
		if d.Percent != nil {
			byPercent = append(byPercent, d)
		}
	}
	slices.SortStableFunc(byPercent, func(a, b assetDelta) int {
		switch pa, pb := math.Abs(*a.Percent), math.Abs(*b.Percent); {
		case pa > pb:
			return -1
		case pa < pb:
			return 1
		}
		return 0
	})

	allocation := make(map[string]float64)
	for k, v := range networth.Allocation(r.CurrentUnaggregated) {
		allocation[k] = round2(v)
	}

	changePercent := 0.0
	if prev := r.Previous.NetWorth.AsFloat(); prev != 0 {
		changePercent = round2(r.NetWorthChange.AsFloat() / prev * 100)
	}

	currency := r.Current.Currency
	symbol := r.Current.NetWorth.Symbol()

	var data map[string]any
	if hideAmounts {
		var dollarMovers, percentMovers, debtMovers []map[string]any
		for _, d := range byDollar[:min(topMovers, len(byDollar))] {
			dollarMovers = append(dollarMovers, map[string]any{
				"name": d.Name, "sheet": d.Sheet,
				"percent": roundFloat(d.Percent), "is_holding": d.IsHolding,
			})
		}
		for _, d := range byPercent[:min(topMovers, len(byPercent))] {
			percentMovers = append(percentMovers, map[string]any{
				"name": d.Name, "sheet": d.Sheet,
				"percent": roundFloat(d.Percent), "is_holding": d.IsHolding,
			})
		}
		for _, d := range r.DebtChanges[:min(topMovers, len(r.DebtChanges))] {
			debtMovers = append(debtMovers, map[string]any{
				"name": d.Name, "percent": roundPercent(d.ChangePercent),
			})
		}
		data = map[string]any{
			"currency":           currency,
			"net_worth":          map[string]any{"change_percent": changePercent},
			"asset_allocation":   allocation,
			"top_dollar_movers":  dollarMovers,
			"top_percent_movers": percentMovers,
			"top_debt_movers":    debtMovers,
		}
	} else {
		var dollarMovers, percentMovers, debtMovers []map[string]any
		for _, d := range byDollar[:min(topMovers, len(byDollar))] {
			dollarMovers = append(dollarMovers, map[string]any{
				"name": d.Name, "sheet": d.Sheet,
				"current_value": round2(d.Current), "previous_value": round2(d.Previous),
				"change": round2(d.Change), "percent": roundFloat(d.Percent),
				"is_holding": d.IsHolding,
			})
		}
		for _, d := range byPercent[:min(topMovers, len(byPercent))] {
			percentMovers = append(percentMovers, map[string]any{
				"name": d.Name, "sheet": d.Sheet,
				"current_value": round2(d.Current), "change": round2(d.Change),
				"percent": roundFloat(d.Percent), "is_holding": d.IsHolding,
			})
		}
		for _, d := range r.DebtChanges[:min(topMovers, len(r.DebtChanges))] {
			debtMovers = append(debtMovers, map[string]any{
				"name":           d.Name,
				"current_value":  round2(d.Current.AsFloat()),
				"previous_value": round2(d.Previous.AsFloat()),
				"change":         round2(d.Change.AsFloat()),
				"percent":        roundPercent(d.ChangePercent),
			})
		}
		data = map[string]any{
			"currency": currency,
			"net_worth": map[string]any{
				"current":        round2(r.Current.NetWorth.AsFloat()),
				"change":         round2(r.NetWorthChange.AsFloat()),
				"change_percent": changePercent,
			},
			"asset_allocation":   allocation,
			"top_dollar_movers":  dollarMovers,
			"top_percent_movers": percentMovers,
			"top_debt_movers":    debtMovers,
		}
	}

	payload, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	if hideAmounts {
		return fmt.Sprintf(summaryNoAmountsTemplate, period, currency, payload), nil
	}
	return fmt.Sprintf(summaryTemplate, period, currency, symbol, currency, symbol, symbol, payload), nil
}

func roundFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := round2(*p)
	return &v
}

const summaryTemplate = `Analyze this %s portfolio report (currency: %s).

Format your response as:
1. First sentence: Overall net worth change summary
2. Blank line
3. "Key drivers:" followed by bullet points for top_dollar_movers (biggest impact on net worth)
4. If any top_percent_movers are NOT in top_dollar_movers AND have notable %% changes (>5%%):
   - Blank line
   - "Also notable:" followed by bullet points for those percentage movers

Note: "is_holding": true means individual stock/crypto/asset within a larger account.

CRITICAL RULES:
- Use exact names from the data
- Use %s symbol for amounts (this portfolio uses %s)
- Format amounts WITHOUT decimals (e.g., %s1,234 not %s1,234.56)
- Format percentages with 2 decimal places (e.g., 5.13%%)
- Format bullets with "• " character
- Do NOT suggest actions or what to watch
- Do NOT mention asset allocation (shown in the allocation chart)
- ONLY use data provided - do not infer
- Keep factual and concise
- Only include "Also notable:" section if there are items to show

Portfolio Data:
%s`

const summaryNoAmountsTemplate = `Analyze this %s portfolio report (currency: %s).

Format your response as:
1. First sentence: Overall net worth change summary (percentage only)
2. Blank line
3. "Key drivers:" followed by bullet points for top_dollar_movers (biggest impact on net worth)
4. If any top_percent_movers are NOT in top_dollar_movers AND have notable %% changes (>5%%):
   - Blank line
   - "Also notable:" followed by bullet points for those percentage movers

Note: "is_holding": true means individual stock/crypto/asset within a larger account.

CRITICAL RULES:
- Do NOT mention specific amounts - use only percentages
- Format bullets with "• " character
- Do NOT suggest actions or what to watch
- Do NOT mention asset allocation (shown in the allocation chart)
- ONLY use data provided - do not infer
- Keep factual and concise
- Only include "Also notable:" section if there are items to show

Portfolio Data:
%s`

// queryPrompt gives the model the full current snapshot, and when a
// comparison exists, the previous snapshot and the largest changes.
func queryPrompt(question string, r *networth.ReportData) (string, error) {
	var b strings.Builder

	current, err := json.MarshalIndent(r.Current, "", "  ")
	if err != nil {
		return "", err
	}
	b.WriteString("Current Portfolio Data:\n")
	b.Write(current)

	if r.HasComparison() {
		previous, err := json.MarshalIndent(r.Previous, "", "  ")
		if err != nil {
			return "", err
		}
		assets, err := json.MarshalIndent(r.AssetChanges[:min(10, len(r.AssetChanges))], "", "  ")
		if err != nil {
			return "", err
		}
		debts, err := json.MarshalIndent(r.DebtChanges[:min(10, len(r.DebtChanges))], "", "  ")
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "\n\nPrevious Portfolio Data:\n%s", previous)
		fmt.Fprintf(&b, "\n\nChanges:\nNet Worth Change: %s", r.NetWorthChange)
		fmt.Fprintf(&b, "\n\nTop Asset Changes (%d total):\n%s", len(r.AssetChanges), assets)
		fmt.Fprintf(&b, "\n\nTop Debt Changes (%d total):\n%s", len(r.DebtChanges), debts)
	}

	return fmt.Sprintf(queryTemplate, b.String(), question), nil
}

const queryTemplate = `You are a financial advisor analyzing portfolio data.
You have access to current and historical portfolio information.

%s

User Question: %s

Please provide a clear, helpful answer based on the portfolio data provided.
Include specific numbers and percentages where relevant.`

// trendsPrompt serializes the net worth series for trend analysis.
func trendsPrompt(history *date.History[float64], period date.Period) (string, error) {
	type metric struct {
		Date     string  `json:"date"`
		NetWorth float64 `json:"net_worth"`
	}
	var metrics []metric
	for day, value := range history.Values() {
		metrics = append(metrics, metric{Date: day.String(), NetWorth: round2(value)})
	}
	payload, err := json.MarshalIndent(metrics, "", "  ")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(trendsTemplate, period, payload), nil
}

const trendsTemplate = `You are a financial advisor. Analyze the portfolio trends below over the past %s period. Identify key patterns, growth trends, and any areas of concern.
Keep it concise (2-3 paragraphs).

Portfolio Metrics Over Time:
%s

Trend Analysis:`
