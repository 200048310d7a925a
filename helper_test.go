package networth

import "time"

// USD is a helper for tests to create dollar money from a const.
func USD(v float64) Money { return M(v, "USD") }

// EUR is a helper for tests to create euro money from a const.
func EUR(v float64) Money { return M(v, "EUR") }

// testSnapshot builds a minimal snapshot on a given day with the given
// accounts, deriving the totals from them.
func testSnapshot(day time.Time, accounts ...Account) *Snapshot {
	s := &Snapshot{
		Timestamp:     day,
		PortfolioID:   "portfolio-1",
		PortfolioName: "Test Portfolio",
		Currency:      "USD",
		NetWorth:      USD(0),
		TotalAssets:   USD(0),
		TotalDebts:    USD(0),
		Accounts:      accounts,
	}
	for _, a := range accounts {
		if a.IsHolding() {
			continue
		}
		switch a.Category {
		case Asset:
			s.TotalAssets = s.TotalAssets.Add(a.Value)
		case Debt:
			s.TotalDebts = s.TotalDebts.Add(a.Value)
		}
	}
	s.NetWorth = s.TotalAssets.Sub(s.TotalDebts)
	return s
}

// asset and debt build test accounts with sensible defaults.

func asset(id, name string, value Money) Account {
	return Account{ID: id, Name: name, Value: value, Category: Asset, SheetName: "Investments"}
}

func debt(id, name string, value Money) Account {
	return Account{ID: id, Name: name, Value: value, Category: Debt, SheetName: "Liabilities"}
}
