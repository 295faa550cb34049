package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"smartwaste-backend/internal/model"
	"smartwaste-backend/internal/store"
)

// mockSender is a mock implementation of the NotificationSender interface.
type mockSender struct {
	SendFunc func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// Send calls the mock SendFunc.
func (m *mockSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return m.SendFunc(payload, sub, options)
}

func newTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	gormDB, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gormDB.AutoMigrate(&model.PushSubscription{}))
	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return gormDB
}

func response(status int) *http.Response {
	return &http.Response{StatusCode: status, Body: io.NopCloser(bytes.NewBufferString(""))}
}

func TestWorkerPool_Dispatch(t *testing.T) {
	wp := NewWorkerPool(1, nil, &webpush.Options{}, nil)

	wp.Dispatch(store.Event{Kind: store.EventCreated, Pickup: model.Pickup{ID: "p9"}})

	select {
	case job := <-wp.Jobs():
		assert.Equal(t, "p9", job.Pickup.ID)
	case <-time.After(1 * time.Second):
		t.Fatal("timed out waiting for job to be dispatched")
	}
}

func TestWorkerPool_DispatchDoesNotBlock(t *testing.T) {
	wp := NewWorkerPool(1, nil, &webpush.Options{}, nil)
	for i := 0; i < cap(wp.Jobs())+5; i++ {
		wp.Dispatch(store.Event{Kind: store.EventCreated})
	}
	assert.Len(t, wp.Jobs(), cap(wp.Jobs()))
}

func TestMessageFor(t *testing.T) {
	p := model.Pickup{ID: "p1", WasteType: model.WasteRecyclable, ScheduledDate: "2025-01-16", DriverName: "Kofi Mensah"}

	testCases := []struct {
		name  string
		event store.Event
		title string
		ok    bool
	}{
		{"created", store.Event{Kind: store.EventCreated, Pickup: p}, "Pickup Scheduled", true},
		{"cancelled", store.Event{Kind: store.EventCancelled, Pickup: p}, "Pickup Cancelled", true},
		{"confirmed", statusEvent(p, model.StatusConfirmed), "Pickup Confirmed", true},
		{"in progress", statusEvent(p, model.StatusInProgress), "Driver En Route", true},
		{"completed", statusEvent(p, model.StatusCompleted), "Pickup Completed", true},
		{"back to pending", statusEvent(p, model.StatusPending), "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			msg, ok := MessageFor(tc.event)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.title, msg.Title)
		})
	}

	msg, _ := MessageFor(statusEvent(p, model.StatusInProgress))
	assert.Equal(t, "Kofi Mensah is on the way to collect your waste.", msg.Body)
}

func statusEvent(p model.Pickup, status model.PickupStatus) store.Event {
	p.Status = status
	return store.Event{Kind: store.EventStatusChanged, Pickup: p}
}

func TestWorkerPool_WorkerLogic(t *testing.T) {
	gormDB := newTestDB(t, "notification_worker")
	require.NoError(t, gormDB.Create(&model.PushSubscription{
		Endpoint: "https://example.com/push",
		P256DH:   "test_p256dh",
		Auth:     "test_auth",
	}).Error)
	require.NoError(t, gormDB.Create(&model.PushSubscription{
		Endpoint: "https://example.com/expired",
		P256DH:   "test_p256dh_expired",
		Auth:     "test_auth_expired",
	}).Error)

	wp := NewWorkerPool(1, gormDB, &webpush.Options{}, nil)

	var mu sync.Mutex
	var wg sync.WaitGroup
	wg.Add(2)
	received := make(map[string]Message)
	wp.sender = &mockSender{
		SendFunc: func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
			defer wg.Done()
			var msg Message
			assert.NoError(t, json.Unmarshal(payload, &msg))
			mu.Lock()
			received[sub.Endpoint] = msg
			mu.Unlock()
			if sub.Endpoint == "https://example.com/expired" {
				return response(http.StatusGone), nil
			}
			return response(http.StatusCreated), nil
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	wp.Start(ctx)

	p := model.Pickup{ID: "p2", WasteType: model.WasteGeneral, Status: model.StatusConfirmed, ScheduledDate: "2025-01-16"}
	wp.Dispatch(store.Event{Kind: store.EventStatusChanged, Pickup: p, Previous: model.StatusPending})
	wg.Wait()

	mu.Lock()
	assert.Equal(t, "Pickup Confirmed", received["https://example.com/push"].Title)
	assert.Equal(t, "p2", received["https://example.com/push"].PickupID)
	mu.Unlock()

	assert.Eventually(t, func() bool {
		var count int64
		gormDB.Model(&model.PushSubscription{}).Count(&count)
		return count == 1
	}, time.Second, 10*time.Millisecond, "expired subscription is deleted")
}
