// Package quotes defines the boundary contracts for market data providers:
// exchange-rate tables anchored to the base currency, and per-ticker quotes.
package quotes

import "time"

// Market hints how a ticker should be normalized for the upstream provider.
type Market string

const (
	MarketDomestic Market = "TW"
	MarketForeign  Market = "US"
	MarketCrypto   Market = "CRYPTO"
)

// Quote is one price observation for a ticker.
type Quote struct {
	Symbol    string
	Price     float64
	Currency  string
	Timestamp time.Time
}

// RateResult is a base-anchored exchange-rate table: currency code to units
// of that currency per 1 unit of base.
type RateResult struct {
	Rates     map[string]float64
	Timestamp time.Time
}

// RateFetcher fetches the current exchange-rate table. On failure callers
// keep their last known table.
type RateFetcher interface {
	FetchRates() (*RateResult, error)
}

// QuoteFetcher fetches the latest quote for a ticker.
type QuoteFetcher interface {
	FetchQuote(ticker string, market Market) (*Quote, error)
}
