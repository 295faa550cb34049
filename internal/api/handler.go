package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"smartwaste-backend/internal/catalog"
	"smartwaste-backend/internal/store"
	"smartwaste-backend/internal/wizard"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store    *store.Store
	catalog  *catalog.Catalog
	sessions *wizard.Sessions
	db       *gorm.DB
	webpush  *webpush.Options
	logger   *zap.Logger
	now      func() time.Time
}

// NewHandler creates a new API handler. db and webpushOptions may be nil when
// push notifications are not configured.
func NewHandler(s *store.Store, c *catalog.Catalog, sessions *wizard.Sessions, db *gorm.DB, webpushOptions *webpush.Options, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		store:    s,
		catalog:  c,
		sessions: sessions,
		db:       db,
		webpush:  webpushOptions,
		logger:   logger,
		now:      time.Now,
	}
}
