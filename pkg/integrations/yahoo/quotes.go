package yahoo

import (
	"strings"

	"tallybook/pkg/types/quotes"
)

// FetchQuote fetches the latest quote for a ticker, normalizing it for the
// upstream provider per the market hint. Domestic tickers get the .TW suffix
// with an OTC (.TWO) fallback; crypto tickers get a -USD pair suffix.
func (c *Client) FetchQuote(ticker string, market quotes.Market) (*quotes.Quote, error) {
	symbol := normalizeTicker(ticker, market)

	meta, err := c.fetchMeta(symbol)
	if err != nil {
		if market == quotes.MarketDomestic && strings.HasSuffix(symbol, ".TW") {
			otc := strings.TrimSuffix(symbol, ".TW") + ".TWO"
			if otcMeta, otcErr := c.fetchMeta(otc); otcErr == nil {
				meta = otcMeta
				err = nil
			}
		}
		if err != nil {
			return nil, err
		}
	}

	return &quotes.Quote{
		Symbol:    meta.Symbol,
		Price:     meta.RegularMarketPrice,
		Currency:  meta.Currency,
		Timestamp: metaTime(meta),
	}, nil
}

func normalizeTicker(ticker string, market quotes.Market) string {
	symbol := strings.ToUpper(strings.TrimSpace(ticker))

	switch market {
	case quotes.MarketDomestic:
		if !strings.HasSuffix(symbol, ".TW") && !strings.HasSuffix(symbol, ".TWO") {
			symbol += ".TW"
		}
	case quotes.MarketCrypto:
		if !strings.Contains(symbol, "-") && !strings.HasSuffix(symbol, "USD") {
			symbol += "-USD"
		}
	}
	return symbol
}
