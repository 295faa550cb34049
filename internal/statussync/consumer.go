package statussync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"smartwaste-backend/config"
	"smartwaste-backend/internal/model"
)

// MessageReader is the subset of *kafka.Reader the consumer needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// StatusAdvancer applies an external status change to a pickup.
type StatusAdvancer interface {
	AdvanceStatus(id string, status model.PickupStatus) (model.Pickup, error)
}

// StatusMessage is an operator status update for one pickup.
type StatusMessage struct {
	ID     string             `json:"id"`
	Status model.PickupStatus `json:"status"`
}

// Consumer reads status updates from Kafka and applies them to the store.
type Consumer struct {
	reader MessageReader
	target StatusAdvancer
	logger *zap.Logger
}

// NewReader builds a kafka-go reader for the status topic.
func NewReader(cfg config.SyncConfig) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Brokers,
		Topic:    cfg.StatusTopic,
		GroupID:  cfg.GroupID,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
}

func NewConsumer(reader MessageReader, target StatusAdvancer, logger *zap.Logger) *Consumer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Consumer{reader: reader, target: target, logger: logger}
}

// Run consumes until ctx is cancelled or the reader is closed.
// Messages that cannot be applied are logged and committed.
func (c *Consumer) Run(ctx context.Context) error {
	defer func() {
		if err := c.reader.Close(); err != nil {
			c.logger.Warn("failed to close kafka reader", zap.Error(err))
		}
	}()

	c.logger.Info("status consumer started")
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) || ctx.Err() != nil {
				c.logger.Info("status consumer stopped")
				return nil
			}
			return fmt.Errorf("fetch message: %w", err)
		}

		if err := c.apply(msg); err != nil {
			c.logger.Warn("skipping status message",
				zap.Int64("offset", msg.Offset),
				zap.ByteString("value", msg.Value),
				zap.Error(err))
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			return fmt.Errorf("commit message: %w", err)
		}
	}
}

func (c *Consumer) apply(msg kafka.Message) error {
	var update StatusMessage
	if err := json.Unmarshal(msg.Value, &update); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	p, err := c.target.AdvanceStatus(update.ID, update.Status)
	if err != nil {
		return err
	}
	c.logger.Info("pickup status updated",
		zap.String("pickup", p.ID),
		zap.String("status", string(p.Status)))
	return nil
}
