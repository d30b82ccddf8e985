package controller

import (
	"net/http"

	"tallybook/internal/models"
	"tallybook/internal/repo"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// ListHoldings godoc
// @Summary List all holdings
// @Description Get every holding in the caller's scope, oldest first
// @Tags holdings
// @Produce json
// @Success 200 {array} models.Holding
// @Failure 500 {object} controller.APIError
// @Router /api/holdings [get]
func (c *Controller) ListHoldings(ctx *gin.Context) {
	scope := scopeOf(ctx)

	holdings, err := c.repo.GetAllHoldings(scope)
	if err != nil {
		internalError(ctx, "failed to fetch holdings")
		return
	}

	c.overlayChanges(holdings)
	ctx.JSON(http.StatusOK, holdings)
}

// GetHolding godoc
// @Summary Get a holding by ID
// @Tags holdings
// @Produce json
// @Param id path string true "Holding ID"
// @Success 200 {object} models.Holding
// @Failure 404 {object} controller.APIError
// @Router /api/holdings/{id} [get]
func (c *Controller) GetHolding(ctx *gin.Context) {
	scope := scopeOf(ctx)

	holding, err := c.repo.GetHoldingByID(scope, ctx.Param("id"))
	if err != nil {
		notFound(ctx, "holding not found")
		return
	}

	if c.market != nil {
		holding.Change24h = c.market.Change24h(holding.ID)
	}
	ctx.JSON(http.StatusOK, holding)
}

// CreateHolding godoc
// @Summary Create a new holding
// @Tags holdings
// @Accept json
// @Produce json
// @Param holding body models.Holding true "Holding data"
// @Success 201 {object} models.Holding
// @Failure 400 {object} controller.APIError
// @Failure 500 {object} controller.APIError
// @Router /api/holdings [post]
func (c *Controller) CreateHolding(ctx *gin.Context) {
	scope := scopeOf(ctx)

	var holding models.Holding
	if err := ctx.ShouldBindJSON(&holding); err != nil {
		badRequestWithDetails(ctx, "invalid input", err.Error())
		return
	}
	if !holding.Type.Valid() {
		badRequest(ctx, "invalid holding type")
		return
	}

	holding.Scope = scope
	if err := c.repo.CreateHolding(&holding); err != nil {
		internalError(ctx, "failed to create holding")
		return
	}

	ctx.JSON(http.StatusCreated, holding)
}

// UpdateHolding godoc
// @Summary Update a holding
// @Tags holdings
// @Accept json
// @Produce json
// @Param id path string true "Holding ID"
// @Param holding body models.Holding true "Holding data"
// @Success 200 {object} models.Holding
// @Failure 400 {object} controller.APIError
// @Failure 404 {object} controller.APIError
// @Failure 500 {object} controller.APIError
// @Router /api/holdings/{id} [put]
func (c *Controller) UpdateHolding(ctx *gin.Context) {
	scope := scopeOf(ctx)

	existing, err := c.repo.GetHoldingByID(scope, ctx.Param("id"))
	if err != nil {
		notFound(ctx, "holding not found")
		return
	}

	var in models.Holding
	if err := ctx.ShouldBindJSON(&in); err != nil {
		badRequestWithDetails(ctx, "invalid input", err.Error())
		return
	}
	if !in.Type.Valid() {
		badRequest(ctx, "invalid holding type")
		return
	}

	existing.Name = in.Name
	existing.Ticker = in.Ticker
	existing.Type = in.Type
	existing.Price = in.Price
	existing.Quantity = in.Quantity
	existing.Currency = in.Currency
	existing.Color = in.Color
	existing.BillDay = in.BillDay

	if err := c.repo.UpdateHolding(existing); err != nil {
		internalError(ctx, "failed to update holding")
		return
	}

	ctx.JSON(http.StatusOK, existing)
}

// DeleteHolding godoc
// @Summary Delete a holding
// @Tags holdings
// @Param id path string true "Holding ID"
// @Success 204
// @Failure 500 {object} controller.APIError
// @Router /api/holdings/{id} [delete]
func (c *Controller) DeleteHolding(ctx *gin.Context) {
	scope := scopeOf(ctx)

	if err := c.repo.DeleteHolding(scope, ctx.Param("id")); err != nil && !errors.Is(err, repo.ErrNotFound) {
		internalError(ctx, "failed to delete holding")
		return
	}

	ctx.Status(http.StatusNoContent)
}

// RefreshHoldingPrices godoc
// @Summary Refresh security prices
// @Description Fetch fresh quotes for every stock and crypto holding with a ticker
// @Tags holdings
// @Produce json
// @Success 200 {array} models.Holding
// @Failure 500 {object} controller.APIError
// @Failure 503 {object} controller.APIError
// @Router /api/holdings/refresh [post]
func (c *Controller) RefreshHoldingPrices(ctx *gin.Context) {
	if c.market == nil {
		serviceUnavailable(ctx, "market data service not available")
		return
	}

	updated, err := c.market.RefreshHoldings(scopeOf(ctx))
	if err != nil {
		internalError(ctx, "failed to refresh prices")
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

func (c *Controller) overlayChanges(holdings []models.Holding) {
	if c.market == nil {
		return
	}
	for i := range holdings {
		holdings[i].Change24h = c.market.Change24h(holdings[i].ID)
	}
}
