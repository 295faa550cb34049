package statussync

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"smartwaste-backend/config"
	"smartwaste-backend/internal/store"
)

const publishBuffer = 64

// MessageWriter is the subset of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher forwards store events to a Kafka topic.
type Publisher struct {
	writer MessageWriter
	events chan store.Event
	logger *zap.Logger
}

// NewWriter builds a kafka-go writer for the events topic.
func NewWriter(cfg config.SyncConfig) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.EventsTopic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}
}

func NewPublisher(writer MessageWriter, logger *zap.Logger) *Publisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Publisher{
		writer: writer,
		events: make(chan store.Event, publishBuffer),
		logger: logger,
	}
}

// Publish is a store.Listener. It drops the event when the buffer is full.
func (p *Publisher) Publish(ev store.Event) {
	select {
	case p.events <- ev:
	default:
		p.logger.Warn("event buffer full, dropping event",
			zap.String("pickup", ev.Pickup.ID),
			zap.String("kind", string(ev.Kind)))
	}
}

// Run writes buffered events until ctx is cancelled, then closes the writer.
func (p *Publisher) Run(ctx context.Context) {
	defer func() {
		if err := p.writer.Close(); err != nil {
			p.logger.Warn("failed to close kafka writer", zap.Error(err))
		}
	}()

	for {
		select {
		case ev := <-p.events:
			p.write(ctx, ev)
		case <-ctx.Done():
			return
		}
	}
}

func (p *Publisher) write(ctx context.Context, ev store.Event) {
	value, err := json.Marshal(ev)
	if err != nil {
		p.logger.Error("failed to encode event", zap.Error(err))
		return
	}
	msg := kafka.Message{Key: []byte(ev.Pickup.ID), Value: value}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Warn("failed to publish event",
			zap.String("pickup", ev.Pickup.ID),
			zap.Error(err))
	}
}
