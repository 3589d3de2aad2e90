package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"friend-service/internal/telemetry"
)

// RegisterDebugRoutes wires debug-only endpoints.
func RegisterDebugRoutes(router *gin.Engine, emitter *telemetry.Emitter, enabled bool) {
	if !enabled {
		return
	}

	router.GET("/debug/event-test", func(c *gin.Context) {
		if emitter == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "event emitter not configured"})
			return
		}
		emitter.Emit(c.Request.Context(), "debug.event_test", requestIDFromContext(c), userIDFromContext(c), nil)
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
