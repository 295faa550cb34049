package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"smartwaste-backend/internal/metrics"
	"smartwaste-backend/internal/model"
	"smartwaste-backend/internal/store"
)

// NotificationSender defines the interface for sending a web push notification.
type NotificationSender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is a real implementation of NotificationSender using the webpush library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// Message is the JSON payload delivered to the browser.
type Message struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	PickupID string `json:"pickupId"`
}

// WorkerPool delivers pickup events as push notifications.
type WorkerPool struct {
	size    int
	jobs    chan store.Event
	db      *gorm.DB
	webpush *webpush.Options
	sender  NotificationSender
	logger  *zap.Logger
}

// NewWorkerPool creates a new worker pool.
func NewWorkerPool(size int, db *gorm.DB, webpushOptions *webpush.Options, logger *zap.Logger) *WorkerPool {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WorkerPool{
		size:    size,
		jobs:    make(chan store.Event, size*16),
		db:      db,
		webpush: webpushOptions,
		sender:  &WebPushSender{},
		logger:  logger,
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	wp.logger.Debug("notification worker started", zap.Int("worker", id))
	for {
		select {
		case ev := <-wp.jobs:
			wp.sendNotificationsForEvent(ctx, ev)
		case <-ctx.Done():
			wp.logger.Debug("notification worker shutting down", zap.Int("worker", id))
			return
		}
	}
}

// Dispatch queues an event. It is a store.Listener and never blocks: when the
// queue is full the event is dropped.
func (wp *WorkerPool) Dispatch(ev store.Event) {
	select {
	case wp.jobs <- ev:
	default:
		metrics.NotificationsSentTotal.WithLabelValues("dropped").Inc()
		wp.logger.Warn("notification queue full, dropping event",
			zap.String("pickup", ev.Pickup.ID),
			zap.String("kind", string(ev.Kind)))
	}
}

// Jobs returns the jobs channel for testing.
func (wp *WorkerPool) Jobs() chan store.Event {
	return wp.jobs
}

// MessageFor builds the notification text for an event. ok is false for
// events that are not announced.
func MessageFor(ev store.Event) (Message, bool) {
	p := ev.Pickup
	msg := Message{PickupID: p.ID}
	switch ev.Kind {
	case store.EventCreated:
		msg.Title = "Pickup Scheduled"
		msg.Body = fmt.Sprintf("Your %s waste pickup for %s (%s) has been scheduled.", p.WasteType, p.ScheduledDate, p.TimeSlot)
	case store.EventCancelled:
		msg.Title = "Pickup Cancelled"
		msg.Body = fmt.Sprintf("Your %s waste pickup for %s has been cancelled.", p.WasteType, p.ScheduledDate)
	case store.EventStatusChanged:
		switch p.Status {
		case model.StatusConfirmed:
			msg.Title = "Pickup Confirmed"
			msg.Body = fmt.Sprintf("Your %s waste pickup for %s has been confirmed.", p.WasteType, p.ScheduledDate)
		case model.StatusInProgress:
			msg.Title = "Driver En Route"
			driver := p.DriverName
			if driver == "" {
				driver = "Your driver"
			}
			msg.Body = fmt.Sprintf("%s is on the way to collect your waste.", driver)
		case model.StatusCompleted:
			msg.Title = "Pickup Completed"
			msg.Body = fmt.Sprintf("Your %s waste has been collected. Thank you for keeping the city clean!", p.WasteType)
		case model.StatusCancelled:
			msg.Title = "Pickup Cancelled"
			msg.Body = fmt.Sprintf("Your %s waste pickup for %s has been cancelled.", p.WasteType, p.ScheduledDate)
		default:
			return Message{}, false
		}
	default:
		return Message{}, false
	}
	return msg, true
}

func (wp *WorkerPool) sendNotificationsForEvent(ctx context.Context, ev store.Event) {
	msg, ok := MessageFor(ev)
	if !ok {
		return
	}

	var subscriptions []model.PushSubscription
	if err := wp.db.WithContext(ctx).Find(&subscriptions).Error; err != nil {
		wp.logger.Error("failed to fetch push subscriptions", zap.Error(err))
		return
	}
	if len(subscriptions) == 0 {
		return
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		wp.logger.Error("failed to encode notification", zap.Error(err))
		return
	}

	wp.logger.Debug("sending notifications",
		zap.Int("subscriptions", len(subscriptions)),
		zap.String("pickup", ev.Pickup.ID),
		zap.String("title", msg.Title))
	for _, sub := range subscriptions {
		wp.sendNotification(ctx, sub, payload)
	}
}

// sendNotification sends a single web push notification.
func (wp *WorkerPool) sendNotification(ctx context.Context, sub model.PushSubscription, payload []byte) {
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	resp, err := wp.sender.Send(payload, wpSub, wp.webpush)
	if err != nil {
		metrics.NotificationsSentTotal.WithLabelValues("error").Inc()
		wp.logger.Warn("failed to send notification", zap.String("endpoint", sub.Endpoint), zap.Error(err))
		return
	}
	defer resp.Body.Close()

	// Handle expired subscriptions
	if resp.StatusCode == http.StatusGone {
		metrics.NotificationsSentTotal.WithLabelValues("expired").Inc()
		wp.logger.Info("subscription expired, deleting", zap.String("endpoint", sub.Endpoint))
		if err := wp.db.WithContext(ctx).Delete(&sub).Error; err != nil {
			wp.logger.Warn("failed to delete expired subscription", zap.String("endpoint", sub.Endpoint), zap.Error(err))
		}
		return
	}
	metrics.NotificationsSentTotal.WithLabelValues("sent").Inc()
}
