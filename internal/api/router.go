package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"smartwaste-backend/config"
	"smartwaste-backend/internal/mw"
	"smartwaste-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(cfg config.ServerConfig, h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(mw.RequestLogger(h.logger), gin.Recovery())

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst, cfg.RequestIPHeader)

	// Cached reads are dropped on every store mutation.
	ttl := time.Duration(cfg.CacheTTLSeconds) * time.Second
	responses := mw.NewResponseCache(ttl, 2*ttl)
	caching := mw.Cache(responses, ttl)
	h.store.Subscribe(func(store.Event) { responses.Invalidate() })

	r.GET("/healthz", h.Healthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.GET("/catalog", caching, h.GetCatalog)
		api.GET("/user", caching, h.GetUser)
		api.GET("/summary", caching, h.GetSummary)

		api.GET("/pickups", caching, h.ListPickups)
		api.GET("/pickups/active", caching, h.GetActivePickup)
		api.GET("/pickups/recent", caching, h.GetRecentPickups)
		api.GET("/pickups/:id", caching, h.GetPickup)
		api.POST("/pickups/:id/cancel", h.CancelPickup)

		api.POST("/wizard", h.CreateWizard)
		api.GET("/wizard/:sid", h.GetWizard)
		api.PUT("/wizard/:sid/category", h.SelectCategory)
		api.PUT("/wizard/:sid/schedule", h.SelectSchedule)
		api.PUT("/wizard/:sid/address", h.SetAddress)
		api.PUT("/wizard/:sid/notes", h.SetNotes)
		api.PUT("/wizard/:sid/payment", h.SelectPayment)
		api.POST("/wizard/:sid/next", h.NextStep)
		api.POST("/wizard/:sid/back", h.PreviousStep)
		api.POST("/wizard/:sid/submit", h.SubmitWizard)
		api.POST("/wizard/:sid/reset", h.ResetWizard)

		api.GET("/subscriptions", h.GetSubscription)
		api.PUT("/subscriptions", h.PutSubscription)
		api.DELETE("/subscriptions", h.DeleteSubscription)
		api.GET("/vapid_public_key", h.GetVAPIDPublicKey)

		if cfg.AdminEnabled {
			api.POST("/admin/pickups/:id/status", h.AdvanceStatus)
		}
	}

	return r
}
