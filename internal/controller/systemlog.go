package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ListSystemLogs godoc
// @Summary List automation audit logs
// @Tags logs
// @Produce json
// @Param limit query int false "Max entries (default 100)"
// @Success 200 {array} models.SystemLog
// @Failure 500 {object} controller.APIError
// @Router /api/logs [get]
func (c *Controller) ListSystemLogs(ctx *gin.Context) {
	limit := 0
	if v := ctx.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	logs, err := c.repo.ListSystemLogs(scopeOf(ctx), limit)
	if err != nil {
		internalError(ctx, "failed to fetch logs")
		return
	}

	ctx.JSON(http.StatusOK, logs)
}

// ClearSystemLogs godoc
// @Summary Clear automation audit logs
// @Tags logs
// @Success 204
// @Failure 500 {object} controller.APIError
// @Router /api/logs [delete]
func (c *Controller) ClearSystemLogs(ctx *gin.Context) {
	if err := c.repo.ClearSystemLogs(scopeOf(ctx)); err != nil {
		internalError(ctx, "failed to clear logs")
		return
	}
	ctx.Status(http.StatusNoContent)
}
