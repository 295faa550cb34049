package internal

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartwaste-backend/config"
	"smartwaste-backend/internal/api"
	"smartwaste-backend/internal/catalog"
	"smartwaste-backend/internal/db"
	"smartwaste-backend/internal/kv"
	"smartwaste-backend/internal/model"
	"smartwaste-backend/internal/store"
	"smartwaste-backend/internal/wizard"
)

// TestPickupLifecycle schedules a pickup through the HTTP wizard, drives it to
// completion, and verifies the list survives a restart over the same database.
func TestPickupLifecycle(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// --- Test Setup ---
	gormDB, err := db.Init(&config.DatabaseConfig{
		Driver: "sqlite",
		DSN:    "file:pickup_lifecycle?mode=memory&cache=shared",
	})
	require.NoError(t, err)
	sqlDB, _ := gormDB.DB()
	defer sqlDB.Close()

	now := func() time.Time { return time.Now() }
	storage := kv.NewGormStore(gormDB)
	appStore := store.New(storage, nil)
	appStore.Initialize(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	runDone := make(chan struct{})
	go func() {
		appStore.Run(ctx)
		close(runDone)
	}()

	cat := catalog.Default().WithPrices(map[string]int{"organic": 22})
	sessions := wizard.NewSessions(time.Minute, func() *wizard.Wizard {
		return wizard.New(cat, appStore, wizard.WithClock(now))
	})
	handler := api.NewHandler(appStore, cat, sessions, gormDB, nil, nil)
	router := api.NewRouter(config.ServerConfig{
		RateLimitPerSec: 1000,
		RateLimitBurst:  1000,
		CacheTTLSeconds: 60,
		AdminEnabled:    true,
	}, handler)

	do := func(method, target, body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(method, target, strings.NewReader(body))
		if body != "" {
			req.Header.Set("Content-Type", "application/json")
		}
		router.ServeHTTP(w, req)
		return w
	}

	// --- Schedule through the wizard ---
	w := do(http.MethodPost, "/api/wizard?type=organic", "")
	require.Equal(t, http.StatusCreated, w.Code)
	var session struct {
		SessionID string `json:"sessionId"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &session))
	base := "/api/wizard/" + session.SessionID

	date := catalog.NextDays(now(), catalog.DateWindowDays)[2].Value
	for _, step := range []struct{ method, path, body string }{
		{http.MethodPost, "/next", ""},
		{http.MethodPut, "/schedule", `{"date":"` + date + `","slotId":"2"}`},
		{http.MethodPost, "/next", ""},
		{http.MethodPut, "/address", `{"address":"7 Oxford Street, Osu, Accra"}`},
		{http.MethodPost, "/next", ""},
		{http.MethodPut, "/notes", `{"notes":"Gate code 1234"}`},
		{http.MethodPut, "/payment", `{"paymentId":"airteltigo"}`},
	} {
		w := do(step.method, base+step.path, step.body)
		require.Equal(t, http.StatusOK, w.Code, "%s %s: %s", step.method, step.path, w.Body.String())
	}

	w = do(http.MethodPost, base+"/submit", "")
	require.Equal(t, http.StatusCreated, w.Code)
	var submitted struct {
		Pickup model.Pickup `json:"pickup"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &submitted))
	created := submitted.Pickup
	assert.Equal(t, 22, created.Amount, "configured price override applies")
	assert.Equal(t, "7 Oxford Street", created.Location)
	assert.Equal(t, "AirtelTigo Money", created.PaymentMethod)
	assert.Equal(t, "Gate code 1234", created.Notes)

	// --- Drive it through the lifecycle ---
	spentBefore := appStore.TotalSpent()
	for _, status := range []model.PickupStatus{model.StatusConfirmed, model.StatusInProgress, model.StatusCompleted} {
		w := do(http.MethodPost, "/api/admin/pickups/"+created.ID+"/status", `{"status":"`+string(status)+`"}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}
	assert.Equal(t, spentBefore+22, appStore.TotalSpent())

	// --- Restart over the same database ---
	cancel()
	select {
	case <-runDone:
	case <-time.After(5 * time.Second):
		t.Fatal("store did not flush on shutdown")
	}

	restarted := store.New(storage, nil)
	restarted.Initialize(context.Background())

	restored, ok := restarted.PickupByID(created.ID)
	require.True(t, ok, "scheduled pickup is restored")
	assert.Equal(t, model.StatusCompleted, restored.Status)
	assert.Equal(t, created.ID, restarted.Pickups()[0].ID)
	assert.Len(t, restarted.Pickups(), len(store.SeedPickups())+1)
}
