// Package kubera fetches portfolio snapshots from the Kubera API.
//
// Requests are signed with the account's API key and secret, and
// responses are cached on disk for the day: re-running a report does
// not hit the API again.
package kubera

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

const (
	baseURL       = "https://api.kubera.com"
	portfolioPath = "/api/v3/data/portfolio"
)

// Client talks to the Kubera API.
type Client struct {
	http    *http.Client
	baseURL string
}

// NewClient returns a client signing its requests with the given
// credentials.
func NewClient(apiKey, secret string) (*Client, error) {
	if apiKey == "" || secret == "" {
		return nil, fmt.Errorf("kubera: missing API key or secret")
	}
	return &Client{
		http:    daily(&signer{apiKey: apiKey, secret: secret, base: http.DefaultTransport}),
		baseURL: baseURL,
	}, nil
}

// signer is a RoundTripper adding the Kubera authentication headers:
// the signature is an HMAC-SHA256 of apikey+timestamp+method+path
// keyed with the API secret.
type signer struct {
	apiKey string
	secret string
	base   http.RoundTripper
}

func (s *signer) RoundTrip(req *http.Request) (*http.Response, error) {
	ts := strconv.FormatInt(time.Now().Unix(), 10)

	mac := hmac.New(sha256.New, []byte(s.secret))
	fmt.Fprintf(mac, "%s%s%s%s", s.apiKey, ts, req.Method, req.URL.Path)
	signature := hex.EncodeToString(mac.Sum(nil))

	req = req.Clone(req.Context())
	req.Header.Set("x-api-token", s.apiKey)
	req.Header.Set("x-timestamp", ts)
	req.Header.Set("x-signature", signature)
	req.Header.Set("Accept", "application/json")
	return s.base.RoundTrip(req)
}
