// Package yahoo fetches exchange rates and security quotes from the Yahoo
// Finance chart API. It implements both provider contracts in
// pkg/types/quotes; all requests share one http client with a timeout, and a
// failed fetch returns an error so callers keep their prior cached values.
package yahoo

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"tallybook/pkg/types/quotes"
)

var (
	_ quotes.RateFetcher  = (*Client)(nil)
	_ quotes.QuoteFetcher = (*Client)(nil)
)

const defaultBaseURL = "https://query1.finance.yahoo.com/v8/finance/chart"

type Client struct {
	BaseURL string
	// Proxy, when set, is prefixed to every request URL to route around
	// upstream access restrictions.
	Proxy  string
	Client *http.Client
}

func NewClient() *Client {
	return &Client{
		BaseURL: defaultBaseURL,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta chartMeta `json:"meta"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

type chartMeta struct {
	RegularMarketPrice float64 `json:"regularMarketPrice"`
	RegularMarketTime  int64   `json:"regularMarketTime"`
	Currency           string  `json:"currency"`
	Symbol             string  `json:"symbol"`
}

func (c *Client) fetchMeta(symbol string) (*chartMeta, error) {
	endpoint := fmt.Sprintf("%s/%s?interval=1d&range=1d", c.BaseURL, url.PathEscape(symbol))
	if c.Proxy != "" {
		endpoint = c.Proxy + url.QueryEscape(endpoint)
	}

	resp, err := c.Client.Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d for %s", resp.StatusCode, symbol)
	}

	var result chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response for %s: %w", symbol, err)
	}

	if result.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo API error for %s: %s", symbol, result.Chart.Error.Description)
	}
	if len(result.Chart.Result) == 0 || result.Chart.Result[0].Meta.RegularMarketPrice == 0 {
		return nil, fmt.Errorf("no price found for %s", symbol)
	}

	meta := result.Chart.Result[0].Meta
	return &meta, nil
}

func metaTime(meta *chartMeta) time.Time {
	if meta.RegularMarketTime == 0 {
		return time.Now()
	}
	return time.Unix(meta.RegularMarketTime, 0)
}
