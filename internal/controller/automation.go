package controller

import (
	"net/http"
	"time"

	"tallybook/internal/models"
	"tallybook/internal/repo"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// ListAutomations godoc
// @Summary List automation rules
// @Tags automations
// @Produce json
// @Success 200 {array} models.Automation
// @Failure 500 {object} controller.APIError
// @Router /api/automations [get]
func (c *Controller) ListAutomations(ctx *gin.Context) {
	automations, err := c.repo.GetAllAutomations(scopeOf(ctx))
	if err != nil {
		internalError(ctx, "failed to fetch automations")
		return
	}
	ctx.JSON(http.StatusOK, automations)
}

// GetAutomation godoc
// @Summary Get an automation rule by ID
// @Tags automations
// @Produce json
// @Param id path string true "Automation ID"
// @Success 200 {object} models.Automation
// @Failure 404 {object} controller.APIError
// @Router /api/automations/{id} [get]
func (c *Controller) GetAutomation(ctx *gin.Context) {
	automation, err := c.repo.GetAutomationByID(scopeOf(ctx), ctx.Param("id"))
	if err != nil {
		notFound(ctx, "automation not found")
		return
	}
	ctx.JSON(http.StatusOK, automation)
}

// CreateAutomation godoc
// @Summary Create an automation rule
// @Tags automations
// @Accept json
// @Produce json
// @Param automation body models.Automation true "Automation data"
// @Success 201 {object} models.Automation
// @Failure 400 {object} controller.APIError
// @Failure 500 {object} controller.APIError
// @Router /api/automations [post]
func (c *Controller) CreateAutomation(ctx *gin.Context) {
	scope := scopeOf(ctx)

	var automation models.Automation
	if err := ctx.ShouldBindJSON(&automation); err != nil {
		badRequestWithDetails(ctx, "invalid input", err.Error())
		return
	}
	if !automation.Type.Valid() {
		badRequest(ctx, "invalid automation type")
		return
	}
	if automation.Amount <= 0 {
		badRequest(ctx, "amount must be positive")
		return
	}

	automation.Scope = scope
	if err := c.repo.CreateAutomation(&automation); err != nil {
		internalError(ctx, "failed to create automation")
		return
	}

	ctx.JSON(http.StatusCreated, automation)
}

// UpdateAutomation godoc
// @Summary Update an automation rule
// @Tags automations
// @Accept json
// @Produce json
// @Param id path string true "Automation ID"
// @Param automation body models.Automation true "Automation data"
// @Success 200 {object} models.Automation
// @Failure 400 {object} controller.APIError
// @Failure 404 {object} controller.APIError
// @Failure 500 {object} controller.APIError
// @Router /api/automations/{id} [put]
func (c *Controller) UpdateAutomation(ctx *gin.Context) {
	scope := scopeOf(ctx)

	existing, err := c.repo.GetAutomationByID(scope, ctx.Param("id"))
	if err != nil {
		notFound(ctx, "automation not found")
		return
	}

	var in models.Automation
	if err := ctx.ShouldBindJSON(&in); err != nil {
		badRequestWithDetails(ctx, "invalid input", err.Error())
		return
	}
	if !in.Type.Valid() {
		badRequest(ctx, "invalid automation type")
		return
	}

	existing.Name = in.Name
	existing.Type = in.Type
	existing.Amount = in.Amount
	existing.Currency = in.Currency
	existing.DayOfMonth = in.DayOfMonth
	existing.Category = in.Category
	existing.TransactionKind = in.TransactionKind
	existing.TargetAssetID = in.TargetAssetID
	existing.SourceAssetID = in.SourceAssetID
	existing.InvestAssetID = in.InvestAssetID
	existing.Active = in.Active

	if err := c.repo.UpdateAutomation(existing); err != nil {
		internalError(ctx, "failed to update automation")
		return
	}

	ctx.JSON(http.StatusOK, existing)
}

// DeleteAutomation godoc
// @Summary Delete an automation rule
// @Tags automations
// @Param id path string true "Automation ID"
// @Success 204
// @Failure 500 {object} controller.APIError
// @Router /api/automations/{id} [delete]
func (c *Controller) DeleteAutomation(ctx *gin.Context) {
	if err := c.repo.DeleteAutomation(scopeOf(ctx), ctx.Param("id")); err != nil && !errors.Is(err, repo.ErrNotFound) {
		internalError(ctx, "failed to delete automation")
		return
	}
	ctx.Status(http.StatusNoContent)
}

// RunAutomations godoc
// @Summary Run all active automation rules
// @Description Simulate every active rule against the current balances, then persist the resulting holdings, transactions and audit logs
// @Tags automations
// @Produce json
// @Success 200 {object} automation.Result
// @Failure 500 {object} controller.APIError
// @Router /api/automations/run [post]
func (c *Controller) RunAutomations(ctx *gin.Context) {
	scope := scopeOf(ctx)

	rules, err := c.repo.GetAllAutomations(scope)
	if err != nil {
		internalError(ctx, "failed to fetch automations")
		return
	}
	holdings, err := c.repo.GetAllHoldings(scope)
	if err != nil {
		internalError(ctx, "failed to fetch holdings")
		return
	}

	result := c.engine.Run(rules, holdings, c.rates.Rates())

	for i := range result.Transactions {
		result.Transactions[i].Scope = scope
	}
	for i := range result.Logs {
		result.Logs[i].Scope = scope
	}

	if err := c.repo.SaveHoldings(scope, result.Holdings); err != nil {
		internalError(ctx, "failed to persist holdings")
		return
	}
	if err := c.repo.CreateTransactions(result.Transactions); err != nil {
		internalError(ctx, "failed to persist transactions")
		return
	}
	if err := c.repo.CreateSystemLogs(result.Logs); err != nil {
		internalError(ctx, "failed to persist logs")
		return
	}
	if err := c.repo.MarkAutomationsRun(scope, time.Now()); err != nil {
		c.logger.Error("failed to stamp automation run time", "error", err)
	}

	ctx.JSON(http.StatusOK, result)
}
