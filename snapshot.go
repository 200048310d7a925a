package networth

import (
	"strings"
	"time"

	"github.com/networth-report/networth/date"
)

// Category splits accounts into the two sides of the balance sheet.
type Category string

const (
	Asset Category = "asset"
	Debt  Category = "debt"
)

// Geography locates an asset for regional allocation.
type Geography struct {
	Country string `json:"country"`
	Region  string `json:"region"`
}

// Account is the state of a single account at snapshot time. Holdings
// inside an investment account appear as their own entries whose ID is
// "<parentID>_<holdingID>"; the parent carries the aggregate value.
type Account struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Institution string     `json:"institution,omitempty"`
	Value       Money      `json:"value"`
	Category    Category   `json:"category"`
	SheetName   string     `json:"sheet_name"`
	SectionName string     `json:"section_name,omitempty"`
	SubType     string     `json:"sub_type,omitempty"`
	AssetClass  string     `json:"asset_class,omitempty"`
	AccountType string     `json:"account_type,omitempty"`
	Geography   *Geography `json:"geography,omitempty"`
}

// IsHolding reports whether the account is a holding inside a parent
// account rather than a top-level account.
func (a Account) IsHolding() bool { return strings.Contains(a.ID, "_") }

// Snapshot is a complete view of the portfolio at a single point in
// time. It is immutable once persisted: reports are computed by
// comparing two snapshots, never by mutating one.
type Snapshot struct {
	Timestamp     time.Time `json:"timestamp"`
	PortfolioID   string    `json:"portfolio_id"`
	PortfolioName string    `json:"portfolio_name"`
	Currency      string    `json:"currency"`
	NetWorth      Money     `json:"net_worth"`
	TotalAssets   Money     `json:"total_assets"`
	TotalDebts    Money     `json:"total_debts"`
	Accounts      []Account `json:"accounts"`
}

// On returns the calendar day of the snapshot.
func (s *Snapshot) On() date.Date {
	return date.New(s.Timestamp.Year(), s.Timestamp.Month(), s.Timestamp.Day())
}

// Aggregated returns a copy of the snapshot keeping only top-level
// accounts with a non-zero value. Raw provider data lists both parent
// accounts and every holding inside them; showing both would double
// count. The unaggregated snapshot is still what allocation and AI
// analysis want, so the receiver is left untouched.
func (s *Snapshot) Aggregated() *Snapshot {
	filtered := *s
	filtered.Accounts = make([]Account, 0, len(s.Accounts))
	for _, a := range s.Accounts {
		if a.IsHolding() || a.Value.IsZero() {
			continue
		}
		filtered.Accounts = append(filtered.Accounts, a)
	}
	return &filtered
}
