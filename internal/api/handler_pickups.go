package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"smartwaste-backend/internal/model"
	"smartwaste-backend/internal/store"
)

const recentPickups = 4

// ListPickups returns all pickups, optionally filtered by ?status=.
func (h *Handler) ListPickups(c *gin.Context) {
	status := c.DefaultQuery("status", "all")
	if status == "all" {
		c.JSON(http.StatusOK, h.store.Pickups())
		return
	}

	s := model.PickupStatus(status)
	if !s.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
		return
	}
	c.JSON(http.StatusOK, h.store.PickupsByStatus(s))
}

// GetActivePickup returns the pickup shown on the home screen.
func (h *Handler) GetActivePickup(c *gin.Context) {
	active := h.store.ActivePickup()
	if active == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no active pickup"})
		return
	}
	c.JSON(http.StatusOK, active)
}

// GetRecentPickups returns the first few pickups in list order.
func (h *Handler) GetRecentPickups(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Recent(recentPickups))
}

type pickupDetail struct {
	model.Pickup
	Progress []model.ProgressStep `json:"progress,omitempty"`
}

// GetPickup returns a single pickup with its progress timeline.
func (h *Handler) GetPickup(c *gin.Context) {
	p, ok := h.store.PickupByID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "pickup not found"})
		return
	}
	c.JSON(http.StatusOK, pickupDetail{Pickup: p, Progress: p.Progress()})
}

// CancelPickup cancels a pickup. An unknown id is a no-op.
func (h *Handler) CancelPickup(c *gin.Context) {
	p, found := h.store.CancelPickup(c.Param("id"))
	if !found {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, p)
}

type advanceStatusRequest struct {
	Status model.PickupStatus `json:"status" binding:"required"`
}

// AdvanceStatus lets an operator move a pickup through its lifecycle.
func (h *Handler) AdvanceStatus(c *gin.Context) {
	var req advanceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.store.AdvanceStatus(c.Param("id"), req.Status)
	switch {
	case errors.Is(err, store.ErrPickupNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "pickup not found"})
	case errors.Is(err, store.ErrUnknownStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, p)
	}
}
