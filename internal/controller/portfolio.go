package controller

import (
	"net/http"

	"tallybook/internal/currency"
	"tallybook/internal/models"
	"tallybook/internal/valuation"

	"github.com/gin-gonic/gin"
)

func displayCurrency(ctx *gin.Context) currency.Code {
	if v := ctx.Query("currency"); v != "" {
		return currency.Code(v)
	}
	return currency.Base
}

// NetWorth godoc
// @Summary Get total net worth
// @Description Total of every holding, liabilities included, in the display currency
// @Tags portfolio
// @Produce json
// @Param currency query string false "Display currency (default TWD)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} controller.APIError
// @Failure 500 {object} controller.APIError
// @Router /api/portfolio/networth [get]
func (c *Controller) NetWorth(ctx *gin.Context) {
	holdings, err := c.repo.GetAllHoldings(scopeOf(ctx))
	if err != nil {
		internalError(ctx, "failed to fetch holdings")
		return
	}

	display := displayCurrency(ctx)
	rates := c.rates.Rates()

	total, err := valuation.NetWorth(holdings, display, rates)
	if err != nil {
		badRequest(ctx, "unsupported display currency")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"net_worth": total,
		"currency":  display,
	})
}

// PortfolioSections godoc
// @Summary Get per-section subtotals
// @Description Subtotal of each holding type in the display currency
// @Tags portfolio
// @Produce json
// @Param currency query string false "Display currency (default TWD)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} controller.APIError
// @Failure 500 {object} controller.APIError
// @Router /api/portfolio/sections [get]
func (c *Controller) PortfolioSections(ctx *gin.Context) {
	holdings, err := c.repo.GetAllHoldings(scopeOf(ctx))
	if err != nil {
		internalError(ctx, "failed to fetch holdings")
		return
	}

	display := displayCurrency(ctx)
	rates := c.rates.Rates()

	sections := make(map[models.HoldingType]float64, 5)
	for _, t := range []models.HoldingType{
		models.TypeCash,
		models.TypeStock,
		models.TypeCreditCard,
		models.TypeCrypto,
		models.TypeOther,
	} {
		subtotal, err := valuation.Subtotal(holdings, display, rates, t)
		if err != nil {
			badRequest(ctx, "unsupported display currency")
			return
		}
		sections[t] = subtotal
	}

	total, err := valuation.NetWorth(holdings, display, rates)
	if err != nil {
		badRequest(ctx, "unsupported display currency")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"net_worth": total,
		"currency":  display,
		"sections":  sections,
	})
}

// PortfolioAllocation godoc
// @Summary Get asset allocation
// @Description Allocation percentages across holding types; only positive positions contribute
// @Tags portfolio
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} controller.APIError
// @Router /api/portfolio/allocation [get]
func (c *Controller) PortfolioAllocation(ctx *gin.Context) {
	holdings, err := c.repo.GetAllHoldings(scopeOf(ctx))
	if err != nil {
		internalError(ctx, "failed to fetch holdings")
		return
	}

	slices, err := valuation.Allocation(holdings, c.rates.Rates())
	if err != nil {
		internalError(ctx, "failed to compute allocation")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"allocation": slices,
	})
}
