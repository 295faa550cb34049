package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetVAPIDPublicKey returns the key browsers need to create a push
// subscription.
func (h *Handler) GetVAPIDPublicKey(c *gin.Context) {
	if !h.pushAvailable(c) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"public_key": h.webpush.VAPIDPublicKey})
}
