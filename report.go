package networth

import (
	"slices"
	"strings"
)

// Delta is the change in a single account between two snapshots.
type Delta struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Institution string     `json:"institution,omitempty"`
	Category    Category   `json:"category"`
	SheetName   string     `json:"sheet_name"`
	SectionName string     `json:"section_name,omitempty"`
	SubType     string     `json:"sub_type,omitempty"`
	AssetClass  string     `json:"asset_class,omitempty"`
	AccountType string     `json:"account_type,omitempty"`
	Geography   *Geography `json:"geography,omitempty"`

	Current  Money `json:"current_value"`
	Previous Money `json:"previous_value"`
	Change   Money `json:"change"`
	// ChangePercent is nil when the account is new or its previous
	// value was zero.
	ChangePercent *Percent `json:"change_percent"`
	// IsNew marks accounts absent from the previous snapshot. Their
	// full value counts as change, but commentary should not treat
	// the jump as a market move.
	IsNew bool `json:"is_new"`
}

// ReportData is everything a single report needs: the two snapshots
// (aggregated to top-level accounts), the raw unaggregated current
// snapshot for allocation and AI analysis, and the per-account deltas.
type ReportData struct {
	Current             *Snapshot
	CurrentUnaggregated *Snapshot
	Previous            *Snapshot // nil when no comparison snapshot exists
	// Raw previous snapshot, holdings included, for holding-level
	// change analysis.
	PreviousUnaggregated *Snapshot

	NetWorthChange        Money
	NetWorthChangePercent *Percent

	// Sorted by descending absolute change, ties by ID.
	AssetChanges []Delta
	DebtChanges  []Delta
}

// HasComparison reports whether the report compares against a
// previous snapshot. Without one only current values are shown.
func (r *ReportData) HasComparison() bool { return r.Previous != nil }

// CalculateDeltas computes the account-by-account changes between two
// snapshots. previous may be nil (first ever report): the result then
// carries current values with no change information. Both snapshots
// are aggregated to top-level accounts first; the unaggregated current
// snapshot is preserved on the result.
func CalculateDeltas(current, previous *Snapshot) *ReportData {
	r := &ReportData{
		CurrentUnaggregated: current,
		Current:             current.Aggregated(),
	}

	prevAccounts := make(map[string]Account)
	if previous != nil {
		r.PreviousUnaggregated = previous
		r.Previous = previous.Aggregated()
		for _, a := range r.Previous.Accounts {
			prevAccounts[a.ID] = a
		}
		r.NetWorthChange = current.NetWorth.Sub(previous.NetWorth)
		r.NetWorthChangePercent = r.NetWorthChange.PercentOf(previous.NetWorth)
	}

	for _, a := range r.Current.Accounts {
		delta := Delta{
			ID:          a.ID,
			Name:        a.Name,
			Institution: a.Institution,
			Category:    a.Category,
			SheetName:   a.SheetName,
			SectionName: a.SectionName,
			SubType:     a.SubType,
			AssetClass:  a.AssetClass,
			AccountType: a.AccountType,
			Geography:   a.Geography,
			Current:     a.Value,
		}
		if prev, ok := prevAccounts[a.ID]; ok {
			delta.Previous = prev.Value
			delta.Change = a.Value.Sub(prev.Value)
			delta.ChangePercent = delta.Change.PercentOf(prev.Value)
		} else {
			delta.Previous = M(0, current.Currency)
			delta.Change = a.Value
			delta.IsNew = previous != nil
		}

		if a.Category == Asset {
			r.AssetChanges = append(r.AssetChanges, delta)
		} else {
			r.DebtChanges = append(r.DebtChanges, delta)
		}
	}

	slices.SortFunc(r.AssetChanges, compareDelta)
	slices.SortFunc(r.DebtChanges, compareDelta)
	return r
}

// compareDelta orders by descending absolute change, ties broken by ID
// so two snapshots always produce the same report.
func compareDelta(a, b Delta) int {
	av, bv := a.Change.Abs(), b.Change.Abs()
	switch {
	case av.GreaterThan(bv):
		return -1
	case bv.GreaterThan(av):
		return 1
	default:
		return strings.Compare(a.ID, b.ID)
	}
}
