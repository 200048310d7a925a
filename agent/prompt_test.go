package agent

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/networth-report/networth"
	"github.com/networth-report/networth/date"
)

func usd(v float64) networth.Money { return networth.M(v, "USD") }

func account(id, name string, value networth.Money) networth.Account {
	return networth.Account{
		ID:        id,
		Name:      name,
		Value:     value,
		Category:  networth.Asset,
		SheetName: "Investments",
	}
}

func snapshot(accounts ...networth.Account) *networth.Snapshot {
	s := &networth.Snapshot{
		Timestamp:     time.Date(2025, 8, 14, 6, 0, 0, 0, time.UTC),
		PortfolioID:   "portfolio-1",
		PortfolioName: "Test Portfolio",
		Currency:      "USD",
		NetWorth:      usd(0),
		TotalAssets:   usd(0),
		TotalDebts:    usd(0),
		Accounts:      accounts,
	}
	for _, a := range accounts {
		if a.IsHolding() {
			continue
		}
		switch a.Category {
		case networth.Asset:
			s.TotalAssets = s.TotalAssets.Add(a.Value)
		case networth.Debt:
			s.TotalDebts = s.TotalDebts.Add(a.Value)
		}
	}
	s.NetWorth = s.TotalAssets.Sub(s.TotalDebts)
	return s
}

func TestPhysical(t *testing.T) {
	tests := []struct {
		name string
		acc  networth.Account
		want bool
	}{
		{"brokerage", networth.Account{Name: "Brokerage", SheetName: "Investments"}, false},
		{"property type", networth.Account{Name: "Condo", AccountType: "property"}, true},
		{"real estate sheet", networth.Account{Name: "Condo", SheetName: "Real Estate"}, true},
		{"primary residence", networth.Account{Name: "Home", SubType: "Primary Residence"}, true},
		{"vehicle", networth.Account{Name: "Tesla", SubType: "Vehicle"}, true},
		{"domain name", networth.Account{Name: "example.com domain", SheetName: "Other"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := physical(tt.acc); got != tt.want {
				t.Errorf("physical(%s) = %v, want %v", tt.acc.Name, got, tt.want)
			}
		})
	}
}

func TestAssetDeltas(t *testing.T) {
	condo := account("condo", "Condo", usd(500_000))
	condo.AccountType = "property"

	current := snapshot(
		account("broker", "Brokerage", usd(11_000)),
		account("broker_aapl", "AAPL", usd(6_000)),
		account("fresh", "New Account", usd(1_000)),
		account("idle", "Idle Cash", usd(2_000)),
		condo,
	)
	previous := snapshot(
		account("broker", "Brokerage", usd(10_000)),
		account("broker_aapl", "AAPL", usd(5_000)),
		account("idle", "Idle Cash", usd(2_000)),
		account("condo", "Condo", usd(490_000)),
	)
	r := networth.CalculateDeltas(current, previous)

	deltas := assetDeltas(r)
	if len(deltas) != 2 {
		t.Fatalf("got %d deltas, want 2: %+v", len(deltas), deltas)
	}
	for _, d := range deltas {
		switch d.Name {
		case "Brokerage":
			if d.Change != 1000 || d.IsHolding {
				t.Errorf("Brokerage delta = %+v", d)
			}
			if d.Percent == nil || *d.Percent != 10 {
				t.Errorf("Brokerage percent = %v, want 10", d.Percent)
			}
		case "AAPL":
			if !d.IsHolding {
				t.Errorf("AAPL should be flagged as a holding: %+v", d)
			}
		default:
			t.Errorf("unexpected delta for %q", d.Name)
		}
	}
}

func TestAssetDeltasZeroPrevious(t *testing.T) {
	current := snapshot(account("a", "Account", usd(100)))
	previous := snapshot(account("a", "Account", usd(0)))
	r := networth.CalculateDeltas(current, previous)

	deltas := assetDeltas(r)
	if len(deltas) != 1 {
		t.Fatalf("got %d deltas, want 1", len(deltas))
	}
	if deltas[0].Percent != nil {
		t.Errorf("percent = %v, want nil for zero previous value", *deltas[0].Percent)
	}
}

func TestSummaryPrompt(t *testing.T) {
	condo := account("condo", "Condo", usd(500_000))
	condo.AccountType = "property"
	current := snapshot(
		account("broker", "Brokerage", usd(11_000)),
		account("broker_aapl", "AAPL", usd(6_000)),
		condo,
	)
	previous := snapshot(
		account("broker", "Brokerage", usd(10_000)),
		account("broker_aapl", "AAPL", usd(5_000)),
		account("condo", "Condo", usd(490_000)),
	)
	r := networth.CalculateDeltas(current, previous)

	prompt, err := summaryPrompt(r, date.Daily, false)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"daily portfolio report (currency: USD)",
		"top_dollar_movers",
		"top_percent_movers",
		"asset_allocation",
		`"Brokerage"`,
		`"AAPL"`,
		"Use $ symbol for amounts",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	// Physical assets have no place in the mover lists.
	if strings.Contains(prompt, `"Condo"`) {
		t.Error("prompt should not mention physical assets")
	}
}

func TestSummaryPromptHideAmounts(t *testing.T) {
	current := snapshot(account("broker", "Brokerage", usd(11_000)))
	previous := snapshot(account("broker", "Brokerage", usd(10_000)))
	r := networth.CalculateDeltas(current, previous)

	prompt, err := summaryPrompt(r, date.Weekly, true)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(prompt, "weekly portfolio report") {
		t.Error("prompt missing period")
	}
	if !strings.Contains(prompt, "Do NOT mention specific amounts") {
		t.Error("prompt missing the no-amounts rule")
	}
	if strings.Contains(prompt, "current_value") {
		t.Error("prompt should not carry amounts when they are hidden")
	}
}

func TestQueryPrompt(t *testing.T) {
	current := snapshot(account("broker", "Brokerage", usd(11_000)))
	previous := snapshot(account("broker", "Brokerage", usd(10_000)))
	r := networth.CalculateDeltas(current, previous)

	prompt, err := queryPrompt("How did my brokerage do?", r)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"Current Portfolio Data:",
		"Previous Portfolio Data:",
		"Net Worth Change:",
		"User Question: How did my brokerage do?",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestQueryPromptWithoutComparison(t *testing.T) {
	r := networth.CalculateDeltas(snapshot(account("broker", "Brokerage", usd(11_000))), nil)

	prompt, err := queryPrompt("What do I own?", r)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(prompt, "Previous Portfolio Data:") {
		t.Error("prompt should not mention a previous snapshot when there is none")
	}
}

func TestTrendsPrompt(t *testing.T) {
	var h date.History[float64]
	h.Append(date.New(2025, time.August, 11), 100_000)
	h.Append(date.New(2025, time.August, 12), 101_500)

	prompt, err := trendsPrompt(&h, date.Weekly)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"past weekly period", "2025-08-11", "101500"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestTrendsRequiresHistory(t *testing.T) {
	var h date.History[float64]
	h.Append(date.Today(), 100_000)

	a := &Analyst{}
	got, err := a.Trends(context.Background(), &h, date.Weekly)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "Not enough historical data") {
		t.Errorf("got %q", got)
	}
}
