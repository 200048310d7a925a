package networth

import "strings"

// Allocation category names, also the keys of the Allocation result.
const (
	Stocks     = "Stocks"
	Bonds      = "Bonds"
	Crypto     = "Crypto"
	RealEstate = "Real Estate"
	Cash       = "Cash"
	Other      = "Other"
)

// AllocationOrder is the display order of allocation categories.
var AllocationOrder = []string{Stocks, Bonds, Crypto, RealEstate, Cash, Other}

// subTypeCategory maps the provider's subType (and assetClass) labels
// to allocation categories.
var subTypeCategory = map[string]string{
	"stock":               Stocks,
	"etf":                 Stocks,
	"bond":                Bonds,
	"cash":                Cash,
	"crypto":              Crypto,
	"cryptocurrency":      Crypto,
	"real estate":         RealEstate,
	"property":            RealEstate,
	"primary residence":   RealEstate,
	"investment property": RealEstate,
}

// bondFundKeywords distinguishes bond funds from stock funds by name
// when the provider only says "mutual fund".
var bondFundKeywords = []string{
	"bond", "fixed income", "yield", "yld", "floating rate",
	"floating-rate", "high income", "high-income", "high-inc",
	"income fund", "income builder", "mortgage", "treasury",
	"municipal", "corporate debt", "balanced income",
}

// Allocation computes the asset allocation of a snapshot as
// percentages per category. It wants the UNAGGREGATED snapshot: leaf
// holdings carry the precise subType metadata, while parent accounts
// only hold aggregates, so parents with children are skipped to avoid
// double counting. Returns an empty map when the portfolio holds no
// positive assets.
func Allocation(s *Snapshot) map[string]float64 {
	hasChildren := make(map[string]bool)
	for _, a := range s.Accounts {
		if a.Category != Asset {
			continue
		}
		if i := strings.Index(a.ID, "_"); i >= 0 {
			hasChildren[a.ID[:i]] = true
		}
	}

	totals := make(map[string]float64)
	for _, a := range s.Accounts {
		if a.Category != Asset || a.Value.IsZero() {
			continue
		}
		if !a.IsHolding() && hasChildren[a.ID] {
			continue
		}
		totals[categorize(a)] += a.Value.AsFloat()
	}

	var total float64
	for _, v := range totals {
		total += v
	}
	if total <= 0 {
		return map[string]float64{}
	}
	allocation := make(map[string]float64, len(totals))
	for k, v := range totals {
		if v > 0 {
			allocation[k] = v / total * 100
		}
	}
	return allocation
}

// categorize places one account into an allocation category, trying
// the provider's structured metadata first and falling back to name
// and sheet heuristics for manually entered or pre-metadata accounts.
func categorize(a Account) string {
	subType := strings.ToLower(a.SubType)
	assetClass := strings.ToLower(a.AssetClass)
	accountType := strings.ToLower(a.AccountType)
	sheet := strings.ToLower(a.SheetName)
	name := strings.ToLower(a.Name)

	category := subTypeCategory[subType]

	// Mutual funds need the name to tell bond funds from stock funds.
	if subType == "mutual fund" || assetClass == "fund" {
		category = Stocks
		for _, kw := range bondFundKeywords {
			if strings.Contains(name, kw) {
				category = Bonds
				break
			}
		}
	}

	if category == "" {
		category = subTypeCategory[assetClass]
	}
	if category == "" {
		switch assetClass {
		case "stock":
			category = Stocks
		case "crypto":
			category = Crypto
		}
	}
	if category == "" {
		switch {
		case strings.Contains(sheet, "crypto"):
			category = Crypto
		case strings.Contains(sheet, "real estate"), accountType == "property":
			category = RealEstate
		}
	}

	// Last resort: parse names, for old snapshots without metadata.
	if category == "" {
		switch {
		case strings.Contains(name, "crypto"):
			category = Crypto
		case strings.Contains(name, "bond"):
			category = Bonds
		case strings.Contains(sheet, "real estate"), strings.Contains(sheet, "property"):
			category = RealEstate
		case strings.Contains(sheet, "bank"),
			strings.Contains(name, "cash"),
			strings.Contains(name, "checking"),
			strings.Contains(name, "savings"):
			category = Cash
		default:
			for _, kw := range []string{"investment", "brokerage", "ira", "401k", "stock", "equity"} {
				if strings.Contains(sheet, kw) || strings.Contains(name, kw) {
					return Stocks
				}
			}
		}
	}

	if category == "" {
		return Other
	}
	return category
}
