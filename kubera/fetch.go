package kubera

import (
	"fmt"
	"strconv"
	"time"

	"github.com/networth-report/networth"
)

// Portfolio is one entry of the account's portfolio list.
type Portfolio struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Currency string `json:"currency"`
}

// rawAccount is an asset or debt row as the API returns it.
type rawAccount struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Value       networth.Money      `json:"value"`
	SheetName   string              `json:"sheetName"`
	SectionName string              `json:"sectionName"`
	SubType     string              `json:"subType"`
	AssetClass  string              `json:"assetClass"`
	Type        string              `json:"type"`
	Geography   *networth.Geography `json:"geography"`
	Connection  struct {
		ProviderName string `json:"providerName"`
	} `json:"connection"`
}

// rawPortfolio is the detailed portfolio payload. Older API versions
// used singular keys for the account lists.
type rawPortfolio struct {
	Assets     []rawAccount `json:"assets"`
	Asset      []rawAccount `json:"asset"`
	Debts      []rawAccount `json:"debts"`
	Debt       []rawAccount `json:"debt"`
	NetWorth   float64      `json:"netWorth"`
	AssetTotal float64      `json:"assetTotal"`
	DebtTotal  float64      `json:"debtTotal"`
}

func (p *rawPortfolio) assets() []rawAccount {
	if p.Assets != nil {
		return p.Assets
	}
	return p.Asset
}

func (p *rawPortfolio) debts() []rawAccount {
	if p.Debts != nil {
		return p.Debts
	}
	return p.Debt
}

// Portfolios lists the portfolios the credentials give access to.
func (c *Client) Portfolios() ([]Portfolio, error) {
	var list []Portfolio
	if err := jwget(c.http, c.baseURL+portfolioPath, &list); err != nil {
		return nil, fmt.Errorf("cannot list portfolios: %w", err)
	}
	return list, nil
}

// FetchSnapshot fetches the current snapshot of a portfolio. The
// portfolio may be named by its ID, by its index in the portfolio list
// ("0", "1", ...), or left empty to use the first one.
func (c *Client) FetchSnapshot(portfolioID string) (*networth.Snapshot, error) {
	portfolios, err := c.Portfolios()
	if err != nil {
		return nil, err
	}
	if len(portfolios) == 0 {
		return nil, fmt.Errorf("no portfolios found")
	}

	info, err := resolve(portfolios, portfolioID)
	if err != nil {
		return nil, err
	}

	var detail rawPortfolio
	if err := jwget(c.http, c.baseURL+portfolioPath+"/"+info.ID, &detail); err != nil {
		return nil, fmt.Errorf("cannot fetch portfolio %q: %w", info.ID, err)
	}

	currency := info.Currency
	if currency == "" {
		currency = "USD"
	}

	snapshot := &networth.Snapshot{
		Timestamp:     time.Now().UTC(),
		PortfolioID:   info.ID,
		PortfolioName: info.Name,
		Currency:      currency,
		NetWorth:      networth.M(detail.NetWorth, currency),
		TotalAssets:   networth.M(detail.AssetTotal, currency),
		TotalDebts:    networth.M(detail.DebtTotal, currency),
	}
	for _, a := range detail.assets() {
		snapshot.Accounts = append(snapshot.Accounts, newAccount(a, networth.Asset))
	}
	for _, d := range detail.debts() {
		snapshot.Accounts = append(snapshot.Accounts, newAccount(d, networth.Debt))
	}
	return snapshot, nil
}

func newAccount(raw rawAccount, category networth.Category) networth.Account {
	return networth.Account{
		ID:          raw.ID,
		Name:        raw.Name,
		Institution: raw.Connection.ProviderName,
		Value:       raw.Value,
		Category:    category,
		SheetName:   raw.SheetName,
		SectionName: raw.SectionName,
		SubType:     raw.SubType,
		AssetClass:  raw.AssetClass,
		AccountType: raw.Type,
		Geography:   raw.Geography,
	}
}

// resolve finds a portfolio by ID or list index; an empty query means
// the first portfolio.
func resolve(portfolios []Portfolio, query string) (Portfolio, error) {
	if query == "" {
		return portfolios[0], nil
	}
	for _, p := range portfolios {
		if p.ID == query {
			return p, nil
		}
	}
	if i, err := strconv.Atoi(query); err == nil && i >= 0 && i < len(portfolios) {
		return portfolios[i], nil
	}
	return Portfolio{}, fmt.Errorf("portfolio %q not found", query)
}
