package service

import (
	"context"
	"log/slog"
	"time"

	"tallybook/internal/models"
	"tallybook/pkg/types/cache"
	"tallybook/pkg/types/quotes"

	"github.com/pkg/errors"
)

var ErrInvalidMarketDataConfig = errors.New("invalid market data service config")

// HoldingRepository is the slice of the repository the market data service
// needs.
type HoldingRepository interface {
	GetHoldingsByType(scope string, types ...models.HoldingType) ([]models.Holding, error)
	UpdateHoldingPrice(scope, id string, price float64, at time.Time) error
}

// MarketDataService refreshes security prices for stock and crypto holdings
// on demand. The 24h change is derived against the previous stored price and
// kept only in the cache; it resets when the process restarts.
type MarketDataService struct {
	ctx     context.Context
	logger  *slog.Logger
	fetcher quotes.QuoteFetcher
	repo    HoldingRepository
	changes cache.Cache[string, float64]
}

type MarketDataOption func(*MarketDataService)

func WithMarketDataContext(ctx context.Context) MarketDataOption {
	return func(s *MarketDataService) {
		s.ctx = ctx
	}
}

func WithMarketDataLogger(l *slog.Logger) MarketDataOption {
	return func(s *MarketDataService) {
		s.logger = l
	}
}

func WithMarketDataFetcher(f quotes.QuoteFetcher) MarketDataOption {
	return func(s *MarketDataService) {
		s.fetcher = f
	}
}

func WithMarketDataRepo(r HoldingRepository) MarketDataOption {
	return func(s *MarketDataService) {
		s.repo = r
	}
}

func WithMarketDataChangeCache(c cache.Cache[string, float64]) MarketDataOption {
	return func(s *MarketDataService) {
		s.changes = c
	}
}

func (s *MarketDataService) IsValid() error {
	switch {
	case s.ctx == nil:
		return errors.Wrap(ErrInvalidMarketDataConfig, "ctx cannot be nil")
	case s.logger == nil:
		return errors.Wrap(ErrInvalidMarketDataConfig, "logger cannot be nil")
	case s.fetcher == nil:
		return errors.Wrap(ErrInvalidMarketDataConfig, "quote fetcher cannot be nil")
	case s.repo == nil:
		return errors.Wrap(ErrInvalidMarketDataConfig, "repo cannot be nil")
	case s.changes == nil:
		return errors.Wrap(ErrInvalidMarketDataConfig, "change cache cannot be nil")
	default:
		return nil
	}
}

func NewMarketDataService(opts ...MarketDataOption) (*MarketDataService, error) {
	s := &MarketDataService{}

	for _, opt := range opts {
		opt(s)
	}

	return s, s.IsValid()
}

// RefreshHoldings updates the stored price of every stock/crypto holding in
// the scope that has a ticker. A failed quote leaves that holding's prior
// price cached; other holdings still refresh.
func (s *MarketDataService) RefreshHoldings(scope string) ([]models.Holding, error) {
	holdings, err := s.repo.GetHoldingsByType(scope, models.TypeStock, models.TypeCrypto)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load holdings")
	}

	updated := make([]models.Holding, 0, len(holdings))
	for _, h := range holdings {
		if h.Ticker == "" {
			continue
		}

		quote, err := s.fetcher.FetchQuote(h.Ticker, marketFor(h))
		if err != nil {
			s.logger.Warn("quote refresh failed, keeping prior price",
				"holding", h.Name, "ticker", h.Ticker, "error", err)
			continue
		}

		if h.Price > 0 {
			change := (quote.Price - h.Price) / h.Price * 100
			s.changes.Set(h.ID, change)
			h.Change24h = change
		}
		h.Price = quote.Price
		ts := quote.Timestamp
		h.LastUpdated = &ts

		if err := s.repo.UpdateHoldingPrice(scope, h.ID, quote.Price, quote.Timestamp); err != nil {
			s.logger.Error("failed to persist refreshed price", "holding", h.Name, "error", err)
			continue
		}
		updated = append(updated, h)
	}

	s.logger.Info("holding prices refreshed", "scope", scope, "updated", len(updated))
	return updated, nil
}

// Change24h returns the cached daily change for a holding, zero when no
// refresh has happened this session.
func (s *MarketDataService) Change24h(holdingID string) float64 {
	change, _ := s.changes.Get(holdingID)
	return change
}

func marketFor(h models.Holding) quotes.Market {
	switch {
	case h.Type == models.TypeCrypto:
		return quotes.MarketCrypto
	case h.Currency == "USD":
		return quotes.MarketForeign
	default:
		return quotes.MarketDomestic
	}
}
