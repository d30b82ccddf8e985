package controller

import (
	"io"

	"github.com/gin-gonic/gin"
)

// SSERates godoc
// @Summary Stream exchange-rate updates
// @Description Server-Sent Events stream; one event per successful rate refresh
// @Tags rates
// @Produce text/event-stream
// @Success 200 {string} string "SSE stream"
// @Router /api/rates/stream [get]
func SSERates(rateCh <-chan []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/event-stream")
		c.Header("Cache-Control", "no-cache")
		c.Header("Connection", "keep-alive")

		c.Stream(func(w io.Writer) bool {
			select {
			case msg, ok := <-rateCh:
				if !ok {
					return false
				}
				c.SSEvent("rates", string(msg))
				c.Writer.Flush()
				return true
			case <-c.Request.Context().Done():
				return false
			}
		})
	}
}
