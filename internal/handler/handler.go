package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"tallybook/internal/automation"
	"tallybook/internal/controller"
	"tallybook/internal/identity"
	"tallybook/internal/repo"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// UserHeader carries the caller's user id. Requests without it run in the
// shared guest scope.
const UserHeader = "X-User-ID"

var (
	ErrNilEngine      = errors.New("engine is required")
	ErrNilRepository  = errors.New("repository is required")
	ErrNilLogger      = errors.New("logger is required")
	ErrNilRateSource  = errors.New("rate source is required")
	ErrNilAutomation  = errors.New("automation engine is required")
	ErrNilRateChannel = errors.New("rate channel is required")
)

type Handler struct {
	engine     *gin.Engine
	repository *repo.Repository
	logger     *slog.Logger
	rates      controller.RateSource
	market     controller.MarketData
	automation *automation.Engine
	rateCh     <-chan []byte
	rateCHSet  bool
}

func (h *Handler) IsValid() error {
	switch {
	case h.engine == nil:
		return ErrNilEngine
	case h.repository == nil:
		return ErrNilRepository
	case h.logger == nil:
		return ErrNilLogger
	case h.rates == nil:
		return ErrNilRateSource
	case h.automation == nil:
		return ErrNilAutomation
	case h.rateCHSet && h.rateCh == nil:
		return ErrNilRateChannel
	default:
		return nil
	}
}

type Option func(*Handler)

func WithEngine(engine *gin.Engine) Option {
	return func(h *Handler) {
		h.engine = engine
	}
}

func WithRepository(repository *repo.Repository) Option {
	return func(h *Handler) {
		h.repository = repository
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) {
		h.logger = l
	}
}

func WithRateSource(r controller.RateSource) Option {
	return func(h *Handler) {
		h.rates = r
	}
}

func WithMarketData(m controller.MarketData) Option {
	return func(h *Handler) {
		h.market = m
	}
}

func WithAutomationEngine(e *automation.Engine) Option {
	return func(h *Handler) {
		h.automation = e
	}
}

func WithRateChannel(ch <-chan []byte) Option {
	return func(h *Handler) {
		h.rateCh = ch
		h.rateCHSet = true
	}
}

func New(opts ...Option) (*Handler, error) {
	h := &Handler{}
	for _, opt := range opts {
		opt(h)
	}
	if err := h.IsValid(); err != nil {
		return nil, err
	}
	return h, nil
}

// identityMiddleware resolves the caller's scope from the user header.
func identityMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		scope := identity.Guest()
		if id := strings.TrimSpace(ctx.GetHeader(UserHeader)); id != "" {
			scope = identity.Authenticated(id)
		}
		ctx.Set(controller.ScopeKey, scope)
		ctx.Next()
	}
}

func (h *Handler) Setup() error {
	ctrl, err := controller.New(
		controller.WithRepository(h.repository),
		controller.WithLogger(h.logger),
		controller.WithRateSource(h.rates),
		controller.WithMarketData(h.market),
		controller.WithAutomationEngine(h.automation),
	)
	if err != nil {
		return err
	}

	h.engine.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	h.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := h.engine.Group("/api")
	api.Use(identityMiddleware())

	holdings := api.Group("/holdings")
	holdings.GET("", ctrl.ListHoldings)
	holdings.POST("", ctrl.CreateHolding)
	holdings.POST("/refresh", ctrl.RefreshHoldingPrices)
	holdings.GET("/:id", ctrl.GetHolding)
	holdings.PUT("/:id", ctrl.UpdateHolding)
	holdings.DELETE("/:id", ctrl.DeleteHolding)

	transactions := api.Group("/transactions")
	transactions.GET("", ctrl.ListTransactions)
	transactions.POST("", ctrl.CreateTransaction)
	transactions.GET("/:id", ctrl.GetTransaction)
	transactions.PUT("/:id", ctrl.UpdateTransaction)
	transactions.DELETE("/:id", ctrl.DeleteTransaction)

	categories := api.Group("/categories")
	categories.GET("", ctrl.ListCategories)
	categories.POST("", ctrl.CreateCategory)
	categories.GET("/suggest", ctrl.SuggestCategory)
	categories.PUT("/:id", ctrl.UpdateCategory)
	categories.DELETE("/:id", ctrl.DeleteCategory)

	automations := api.Group("/automations")
	automations.GET("", ctrl.ListAutomations)
	automations.POST("", ctrl.CreateAutomation)
	automations.POST("/run", ctrl.RunAutomations)
	automations.GET("/:id", ctrl.GetAutomation)
	automations.PUT("/:id", ctrl.UpdateAutomation)
	automations.DELETE("/:id", ctrl.DeleteAutomation)

	logs := api.Group("/logs")
	logs.GET("", ctrl.ListSystemLogs)
	logs.DELETE("", ctrl.ClearSystemLogs)

	portfolio := api.Group("/portfolio")
	portfolio.GET("/networth", ctrl.NetWorth)
	portfolio.GET("/sections", ctrl.PortfolioSections)
	portfolio.GET("/allocation", ctrl.PortfolioAllocation)

	rates := api.Group("/rates")
	rates.GET("", ctrl.GetRates)
	rates.POST("/refresh", ctrl.RefreshRates)
	if h.rateCh != nil {
		rates.GET("/stream", controller.SSERates(h.rateCh))
	}

	return nil
}
