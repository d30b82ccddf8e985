package controller

import (
	"net/http"

	"tallybook/internal/models"
	"tallybook/internal/repo"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// ListCategories godoc
// @Summary List categories
// @Tags categories
// @Produce json
// @Success 200 {array} models.Category
// @Failure 500 {object} controller.APIError
// @Router /api/categories [get]
func (c *Controller) ListCategories(ctx *gin.Context) {
	categories, err := c.repo.GetAllCategories(scopeOf(ctx))
	if err != nil {
		internalError(ctx, "failed to fetch categories")
		return
	}
	ctx.JSON(http.StatusOK, categories)
}

// CreateCategory godoc
// @Summary Create a category
// @Description Create a category; unknown icon names fall back to the generic icon
// @Tags categories
// @Accept json
// @Produce json
// @Param category body models.Category true "Category data"
// @Success 201 {object} models.Category
// @Failure 400 {object} controller.APIError
// @Failure 409 {object} controller.APIError
// @Failure 500 {object} controller.APIError
// @Router /api/categories [post]
func (c *Controller) CreateCategory(ctx *gin.Context) {
	scope := scopeOf(ctx)

	var category models.Category
	if err := ctx.ShouldBindJSON(&category); err != nil {
		badRequestWithDetails(ctx, "invalid input", err.Error())
		return
	}

	if _, err := c.repo.GetCategoryByLabel(scope, category.Label); err == nil {
		errorResponse(ctx, http.StatusConflict, "category label already exists")
		return
	}

	category.Scope = scope
	category.Icon = models.ResolveIcon(category.Icon).Name

	if err := c.repo.CreateCategory(&category); err != nil {
		internalError(ctx, "failed to create category")
		return
	}

	ctx.JSON(http.StatusCreated, category)
}

// UpdateCategory godoc
// @Summary Update a category
// @Tags categories
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Param category body models.Category true "Category data"
// @Success 200 {object} models.Category
// @Failure 400 {object} controller.APIError
// @Failure 404 {object} controller.APIError
// @Failure 500 {object} controller.APIError
// @Router /api/categories/{id} [put]
func (c *Controller) UpdateCategory(ctx *gin.Context) {
	scope := scopeOf(ctx)

	existing, err := c.repo.GetCategoryByID(scope, ctx.Param("id"))
	if err != nil {
		notFound(ctx, "category not found")
		return
	}

	var in models.Category
	if err := ctx.ShouldBindJSON(&in); err != nil {
		badRequestWithDetails(ctx, "invalid input", err.Error())
		return
	}

	existing.Label = in.Label
	existing.Icon = models.ResolveIcon(in.Icon).Name
	existing.Color = in.Color
	existing.Keywords = in.Keywords

	if err := c.repo.UpdateCategory(existing); err != nil {
		internalError(ctx, "failed to update category")
		return
	}

	ctx.JSON(http.StatusOK, existing)
}

// DeleteCategory godoc
// @Summary Delete a category
// @Description Delete a category; transactions keep their label
// @Tags categories
// @Param id path string true "Category ID"
// @Success 204
// @Failure 500 {object} controller.APIError
// @Router /api/categories/{id} [delete]
func (c *Controller) DeleteCategory(ctx *gin.Context) {
	if err := c.repo.DeleteCategory(scopeOf(ctx), ctx.Param("id")); err != nil && !errors.Is(err, repo.ErrNotFound) {
		internalError(ctx, "failed to delete category")
		return
	}
	ctx.Status(http.StatusNoContent)
}

// SuggestCategory godoc
// @Summary Suggest a category for a note
// @Description Match the note text against category keywords; first match wins
// @Tags categories
// @Produce json
// @Param note query string true "Transaction note text"
// @Success 200 {object} models.Category
// @Failure 400 {object} controller.APIError
// @Failure 404 {object} controller.APIError
// @Router /api/categories/suggest [get]
func (c *Controller) SuggestCategory(ctx *gin.Context) {
	note := ctx.Query("note")
	if note == "" {
		badRequest(ctx, "note is required")
		return
	}

	categories, err := c.repo.GetAllCategories(scopeOf(ctx))
	if err != nil {
		internalError(ctx, "failed to fetch categories")
		return
	}

	for _, category := range categories {
		if category.Keywords.Match(note) {
			ctx.JSON(http.StatusOK, category)
			return
		}
	}

	notFound(ctx, "no matching category")
}
