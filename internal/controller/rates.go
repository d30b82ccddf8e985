package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetRates godoc
// @Summary Get the current exchange-rate snapshot
// @Description Rate table anchored to TWD, with the provider timestamp
// @Tags rates
// @Produce json
// @Success 200 {object} currency.Snapshot
// @Router /api/rates [get]
func (c *Controller) GetRates(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.rates.Snapshot())
}

// RefreshRates godoc
// @Summary Refresh exchange rates
// @Description Fetch fresh rates from the upstream provider; on failure the last known table stays in place
// @Tags rates
// @Produce json
// @Success 200 {object} currency.Snapshot
// @Failure 502 {object} controller.APIError
// @Router /api/rates/refresh [post]
func (c *Controller) RefreshRates(ctx *gin.Context) {
	if err := c.rates.Refresh(); err != nil {
		errorResponse(ctx, http.StatusBadGateway, "rate refresh failed")
		return
	}
	ctx.JSON(http.StatusOK, c.rates.Snapshot())
}
