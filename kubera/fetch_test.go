package kubera

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/networth-report/networth"
)

const listPayload = `{
  "data": [
    {"id": "p-aaa", "name": "Family", "currency": "USD"},
    {"id": "p-bbb", "name": "Business", "currency": "EUR"}
  ]
}`

const detailPayload = `{
  "data": {
    "netWorth": 500,
    "assetTotal": 1500,
    "debtTotal": 1000,
    "asset": [
      {
        "id": "acc-1",
        "name": "Brokerage",
        "value": {"amount": 1500, "currency": "USD"},
        "sheetName": "Investments",
        "sectionName": "Taxable",
        "subType": "stock",
        "connection": {"providerName": "Broker Inc"}
      }
    ],
    "debt": [
      {
        "id": "loan-1",
        "name": "Mortgage",
        "value": {"amount": 1000, "currency": "USD"},
        "sheetName": "Liabilities"
      }
    ]
  }
}`

// testClient serves canned payloads, bypassing signing and caching.
func testClient(t *testing.T) *Client {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v3/data/portfolio", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(listPayload))
	})
	mux.HandleFunc("/api/v3/data/portfolio/p-aaa", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(detailPayload))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return &Client{http: srv.Client(), baseURL: srv.URL}
}

func TestFetchSnapshot(t *testing.T) {
	c := testClient(t)

	snap, err := c.FetchSnapshot("p-aaa")
	if err != nil {
		t.Fatal(err)
	}
	if snap.PortfolioID != "p-aaa" || snap.PortfolioName != "Family" || snap.Currency != "USD" {
		t.Errorf("portfolio = %s %s %s", snap.PortfolioID, snap.PortfolioName, snap.Currency)
	}
	if !snap.NetWorth.Equal(networth.M(500, "USD")) {
		t.Errorf("net worth = %s", snap.NetWorth)
	}
	if len(snap.Accounts) != 2 {
		t.Fatalf("accounts = %d, want 2", len(snap.Accounts))
	}
	a := snap.Accounts[0]
	if a.ID != "acc-1" || a.Category != networth.Asset || a.Institution != "Broker Inc" || a.SubType != "stock" {
		t.Errorf("asset = %+v", a)
	}
	if d := snap.Accounts[1]; d.Category != networth.Debt || !d.Value.Equal(networth.M(1000, "USD")) {
		t.Errorf("debt = %+v", d)
	}
}

func TestFetchSnapshotDefaultPortfolio(t *testing.T) {
	c := testClient(t)
	snap, err := c.FetchSnapshot("")
	if err != nil {
		t.Fatal(err)
	}
	if snap.PortfolioID != "p-aaa" {
		t.Errorf("default portfolio = %s, want first of the list", snap.PortfolioID)
	}
}

func TestResolve(t *testing.T) {
	portfolios := []Portfolio{{ID: "p-aaa"}, {ID: "p-bbb"}}
	testCases := []struct {
		query   string
		want    string
		wantErr bool
	}{
		{"", "p-aaa", false},
		{"p-bbb", "p-bbb", false},
		{"1", "p-bbb", false},
		{"7", "", true},
		{"p-zzz", "", true},
	}
	for _, tc := range testCases {
		got, err := resolve(portfolios, tc.query)
		if (err != nil) != tc.wantErr {
			t.Errorf("resolve(%q) error = %v, wantErr %v", tc.query, err, tc.wantErr)
			continue
		}
		if err == nil && got.ID != tc.want {
			t.Errorf("resolve(%q) = %s, want %s", tc.query, got.ID, tc.want)
		}
	}
}

func TestSignerHeaders(t *testing.T) {
	var gotToken, gotSignature, gotTimestamp string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("x-api-token")
		gotSignature = r.Header.Get("x-signature")
		gotTimestamp = r.Header.Get("x-timestamp")
		w.Write([]byte(`{"data": []}`))
	}))
	defer srv.Close()

	client := &http.Client{Transport: &signer{apiKey: "key", secret: "secret", base: http.DefaultTransport}}
	var out []Portfolio
	if err := jwget(client, srv.URL+"/api/v3/data/portfolio", &out); err != nil {
		t.Fatal(err)
	}
	if gotToken != "key" || gotSignature == "" || gotTimestamp == "" {
		t.Errorf("auth headers = %q %q %q", gotToken, gotSignature, gotTimestamp)
	}
}
