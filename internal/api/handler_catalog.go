package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smartwaste-backend/internal/catalog"
	"smartwaste-backend/internal/model"
)

type catalogResponse struct {
	*catalog.Catalog
	Dates []catalog.Day `json:"dates"`
}

// GetCatalog returns the static catalog and the selectable dates.
func (h *Handler) GetCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, catalogResponse{
		Catalog: h.catalog,
		Dates:   catalog.NextDays(h.now(), catalog.DateWindowDays),
	})
}

// GetUser returns the signed-in user's profile.
func (h *Handler) GetUser(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.User())
}

type summaryResponse struct {
	TotalSpent int           `json:"totalSpent"`
	Completed  int           `json:"completed"`
	Upcoming   int           `json:"upcoming"`
	EcoPoints  int           `json:"ecoPoints"`
	Active     *model.Pickup `json:"active"`
}

// GetSummary returns the home and profile screen figures.
func (h *Handler) GetSummary(c *gin.Context) {
	c.JSON(http.StatusOK, summaryResponse{
		TotalSpent: h.store.TotalSpent(),
		Completed:  h.store.CountByStatus(model.StatusCompleted),
		Upcoming:   h.store.CountByStatus(model.StatusPending, model.StatusConfirmed),
		EcoPoints:  h.store.User().EcoPoints,
		Active:     h.store.ActivePickup(),
	})
}
