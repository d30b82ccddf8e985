package controller

import (
	"log/slog"

	"tallybook/internal/automation"
	"tallybook/internal/currency"
	"tallybook/internal/identity"
	"tallybook/internal/models"
	"tallybook/internal/repo"

	"github.com/gin-gonic/gin"
)

// ScopeKey is the gin context key under which the identity middleware stores
// the caller's identity.Scope.
const ScopeKey = "scope"

// RateSource hands out the current exchange-rate table.
type RateSource interface {
	Rates() currency.RateTable
	Snapshot() currency.Snapshot
	Refresh() error
}

// MarketData refreshes security prices and remembers the per-holding daily
// change for the current session.
type MarketData interface {
	RefreshHoldings(scope string) ([]models.Holding, error)
	Change24h(holdingID string) float64
}

type Controller struct {
	repo   *repo.Repository
	logger *slog.Logger
	rates  RateSource
	market MarketData
	engine *automation.Engine
}

type Option func(*Controller)

func WithRepository(r *repo.Repository) Option {
	return func(c *Controller) {
		c.repo = r
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = l
	}
}

func WithRateSource(r RateSource) Option {
	return func(c *Controller) {
		c.rates = r
	}
}

func WithMarketData(m MarketData) Option {
	return func(c *Controller) {
		c.market = m
	}
}

func WithAutomationEngine(e *automation.Engine) Option {
	return func(c *Controller) {
		c.engine = e
	}
}

func (c *Controller) IsValid() error {
	switch {
	case c.repo == nil:
		return ErrNilRepository
	case c.logger == nil:
		return ErrNilLogger
	case c.rates == nil:
		return ErrNilRateSource
	case c.engine == nil:
		return ErrNilEngine
	default:
		return nil
	}
}

func New(opts ...Option) (*Controller, error) {
	c := &Controller{}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.IsValid(); err != nil {
		return nil, err
	}
	return c, nil
}

// scopeOf resolves the caller's persistence scope. Requests without an
// identity fall back to the shared guest scope.
func scopeOf(ctx *gin.Context) string {
	if v, ok := ctx.Get(ScopeKey); ok {
		if s, ok := v.(identity.Scope); ok {
			return s.Key()
		}
	}
	return identity.Guest().Key()
}
