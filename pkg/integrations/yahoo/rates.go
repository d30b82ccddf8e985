package yahoo

import (
	"fmt"

	"tallybook/pkg/types/quotes"
)

// Yahoo's "TWD=X" / "JPY=X" symbols quote USD against the named currency.
const (
	symbolUSDTWD = "TWD=X"
	symbolUSDJPY = "JPY=X"
)

// FetchRates derives a TWD-anchored rate table from the USD crosses:
// 1 TWD = 1/usdTwd USD and 1 TWD = usdJpy/usdTwd JPY.
func (c *Client) FetchRates() (*quotes.RateResult, error) {
	usdTwd, err := c.fetchMeta(symbolUSDTWD)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch USD/TWD: %w", err)
	}
	usdJpy, err := c.fetchMeta(symbolUSDJPY)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch USD/JPY: %w", err)
	}

	ts := metaTime(usdTwd)
	if jt := metaTime(usdJpy); jt.After(ts) {
		ts = jt
	}

	return &quotes.RateResult{
		Rates: map[string]float64{
			"TWD": 1,
			"USD": 1 / usdTwd.RegularMarketPrice,
			"JPY": usdJpy.RegularMarketPrice / usdTwd.RegularMarketPrice,
		},
		Timestamp: ts,
	}, nil
}
