package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Healthz reports liveness and, when a database is attached, its reachability.
func (h *Handler) Healthz(c *gin.Context) {
	if h.db != nil {
		sqlDB, err := h.db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "pickups": len(h.store.Pickups())})
}
