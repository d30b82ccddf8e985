package controller

import (
	"net/http"
	"strconv"
	"time"

	"tallybook/internal/currency"
	"tallybook/internal/ledger"
	"tallybook/internal/models"
	"tallybook/internal/repo"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// TransactionRequest is the write payload for ledger events. Amount is in
// Currency (base when empty); it is converted to the base currency before
// storage.
type TransactionRequest struct {
	Kind          models.TransactionKind `json:"kind" binding:"required"`
	Date          time.Time              `json:"date"`
	Amount        float64                `json:"amount" binding:"required"`
	Currency      string                 `json:"currency"`
	Category      string                 `json:"category"`
	Note          string                 `json:"note"`
	SourceAssetID string                 `json:"source_asset_id"`
}

// ListTransactions godoc
// @Summary List transactions
// @Description List ledger events newest first, with optional filters and pagination
// @Tags transactions
// @Produce json
// @Param kind query string false "INCOME or EXPENSE"
// @Param category query string false "Category label"
// @Param source_asset_id query string false "Source holding ID"
// @Param start query string false "Start date (RFC3339)"
// @Param end query string false "End date (RFC3339)"
// @Param limit query int false "Page size (default 50, max 200)"
// @Param offset query int false "Page offset"
// @Success 200 {object} repo.TransactionListResult
// @Failure 400 {object} controller.APIError
// @Failure 500 {object} controller.APIError
// @Router /api/transactions [get]
func (c *Controller) ListTransactions(ctx *gin.Context) {
	scope := scopeOf(ctx)

	filter := repo.TransactionFilter{
		Kind:          models.TransactionKind(ctx.Query("kind")),
		Category:      ctx.Query("category"),
		SourceAssetID: ctx.Query("source_asset_id"),
	}

	if v := ctx.Query("start"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			badRequest(ctx, "invalid start date")
			return
		}
		filter.StartDate = &t
	}
	if v := ctx.Query("end"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			badRequest(ctx, "invalid end date")
			return
		}
		filter.EndDate = &t
	}
	if v := ctx.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Limit = n
		}
	}
	if v := ctx.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Offset = n
		}
	}

	result, err := c.repo.ListTransactions(scope, filter)
	if err != nil {
		internalError(ctx, "failed to fetch transactions")
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// GetTransaction godoc
// @Summary Get a transaction by ID
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} models.Transaction
// @Failure 404 {object} controller.APIError
// @Router /api/transactions/{id} [get]
func (c *Controller) GetTransaction(ctx *gin.Context) {
	scope := scopeOf(ctx)

	tx, err := c.repo.GetTransactionByID(scope, ctx.Param("id"))
	if err != nil {
		notFound(ctx, "transaction not found")
		return
	}

	ctx.JSON(http.StatusOK, tx)
}

// CreateTransaction godoc
// @Summary Record a transaction
// @Description Record a ledger event and mirror it onto the source holding's balance
// @Tags transactions
// @Accept json
// @Produce json
// @Param transaction body controller.TransactionRequest true "Transaction data"
// @Success 201 {object} models.Transaction
// @Failure 400 {object} controller.APIError
// @Failure 404 {object} controller.APIError
// @Failure 500 {object} controller.APIError
// @Router /api/transactions [post]
func (c *Controller) CreateTransaction(ctx *gin.Context) {
	scope := scopeOf(ctx)

	var req TransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequestWithDetails(ctx, "invalid input", err.Error())
		return
	}

	amountBase, err := c.toBase(req)
	if err != nil {
		badRequest(ctx, err.Error())
		return
	}

	tx := models.Transaction{
		Scope:         scope,
		Kind:          req.Kind,
		Date:          req.Date,
		Amount:        amountBase,
		Category:      req.Category,
		Note:          req.Note,
		SourceAssetID: req.SourceAssetID,
	}
	if tx.Date.IsZero() {
		tx.Date = time.Now()
	}

	if req.SourceAssetID != "" {
		holding, err := c.repo.GetHoldingByID(scope, req.SourceAssetID)
		if err != nil {
			notFound(ctx, "source holding not found")
			return
		}
		if err := ledger.Apply(holding, req.Kind, amountBase, c.rates.Rates()); err != nil {
			badRequest(ctx, "currency conversion failed")
			return
		}
		if err := c.repo.UpdateHoldingQuantity(scope, holding.ID, holding.Quantity); err != nil {
			internalError(ctx, "failed to update holding balance")
			return
		}
		tx.SourceAssetName = holding.Name
	}

	if err := c.repo.CreateTransaction(&tx); err != nil {
		internalError(ctx, "failed to create transaction")
		return
	}

	ctx.JSON(http.StatusCreated, tx)
}

// UpdateTransaction godoc
// @Summary Update a transaction
// @Description Rewrite a ledger event, reversing its old effect on the source holding before applying the new one
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID"
// @Param transaction body controller.TransactionRequest true "Transaction data"
// @Success 200 {object} models.Transaction
// @Failure 400 {object} controller.APIError
// @Failure 404 {object} controller.APIError
// @Failure 500 {object} controller.APIError
// @Router /api/transactions/{id} [put]
func (c *Controller) UpdateTransaction(ctx *gin.Context) {
	scope := scopeOf(ctx)

	existing, err := c.repo.GetTransactionByID(scope, ctx.Param("id"))
	if err != nil {
		notFound(ctx, "transaction not found")
		return
	}

	var req TransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequestWithDetails(ctx, "invalid input", err.Error())
		return
	}

	amountBase, err := c.toBase(req)
	if err != nil {
		badRequest(ctx, err.Error())
		return
	}

	rates := c.rates.Rates()

	if existing.SourceAssetID != "" {
		if err := c.revertFromHolding(scope, existing, rates); err != nil {
			internalError(ctx, "failed to revert holding balance")
			return
		}
	}

	existing.Kind = req.Kind
	existing.Amount = amountBase
	existing.Category = req.Category
	existing.Note = req.Note
	existing.SourceAssetID = req.SourceAssetID
	existing.SourceAssetName = ""
	if !req.Date.IsZero() {
		existing.Date = req.Date
	}

	if req.SourceAssetID != "" {
		holding, err := c.repo.GetHoldingByID(scope, req.SourceAssetID)
		if err != nil {
			notFound(ctx, "source holding not found")
			return
		}
		if err := ledger.Apply(holding, req.Kind, amountBase, rates); err != nil {
			badRequest(ctx, "currency conversion failed")
			return
		}
		if err := c.repo.UpdateHoldingQuantity(scope, holding.ID, holding.Quantity); err != nil {
			internalError(ctx, "failed to update holding balance")
			return
		}
		existing.SourceAssetName = holding.Name
	}

	if err := c.repo.UpdateTransaction(existing); err != nil {
		internalError(ctx, "failed to update transaction")
		return
	}

	ctx.JSON(http.StatusOK, existing)
}

// DeleteTransaction godoc
// @Summary Delete a transaction
// @Description Delete a ledger event and reverse its effect on the source holding
// @Tags transactions
// @Param id path string true "Transaction ID"
// @Success 204
// @Failure 404 {object} controller.APIError
// @Failure 500 {object} controller.APIError
// @Router /api/transactions/{id} [delete]
func (c *Controller) DeleteTransaction(ctx *gin.Context) {
	scope := scopeOf(ctx)

	existing, err := c.repo.GetTransactionByID(scope, ctx.Param("id"))
	if err != nil {
		notFound(ctx, "transaction not found")
		return
	}

	if existing.SourceAssetID != "" {
		if err := c.revertFromHolding(scope, existing, c.rates.Rates()); err != nil {
			internalError(ctx, "failed to revert holding balance")
			return
		}
	}

	if err := c.repo.DeleteTransaction(scope, existing.ID); err != nil {
		internalError(ctx, "failed to delete transaction")
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (c *Controller) toBase(req TransactionRequest) (float64, error) {
	if !req.Kind.Valid() {
		return 0, errors.New("invalid transaction kind")
	}
	if req.Amount <= 0 {
		return 0, errors.New("amount must be positive")
	}

	code := currency.Code(req.Currency)
	if code == "" {
		code = currency.Base
	}

	amountBase, err := c.rates.Rates().ToBase(req.Amount, code)
	if err != nil {
		return 0, errors.New("unsupported currency")
	}
	return amountBase, nil
}

// revertFromHolding undoes a stored transaction's effect on its source
// holding. A vanished holding is tolerated; the event history stays intact.
func (c *Controller) revertFromHolding(scope string, tx *models.Transaction, rates currency.RateTable) error {
	holding, err := c.repo.GetHoldingByID(scope, tx.SourceAssetID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil
		}
		return err
	}
	if err := ledger.Reverse(holding, tx.Kind, tx.Amount, rates); err != nil {
		return err
	}
	return c.repo.UpdateHoldingQuantity(scope, holding.ID, holding.Quantity)
}
