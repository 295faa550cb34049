package store

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"smartwaste-backend/internal/kv"
	"smartwaste-backend/internal/metrics"
	"smartwaste-backend/internal/model"
)

const writeTimeout = 5 * time.Second

// persister writes pickup list snapshots in the background. Only the latest
// pending snapshot is kept since every write replaces the stored list.
type persister struct {
	storage kv.Store
	pending chan []model.Pickup
	logger  *zap.Logger
}

func newPersister(storage kv.Store, logger *zap.Logger) *persister {
	return &persister{
		storage: storage,
		pending: make(chan []model.Pickup, 1),
		logger:  logger,
	}
}

// enqueue never blocks; an unwritten older snapshot is replaced.
func (p *persister) enqueue(snapshot []model.Pickup) {
	for {
		select {
		case p.pending <- snapshot:
			return
		default:
		}
		select {
		case <-p.pending:
		default:
		}
	}
}

func (p *persister) run(ctx context.Context) {
	// In-flight writes outlive cancellation so the last snapshot lands.
	writeCtx := context.WithoutCancel(ctx)
	for {
		select {
		case snapshot := <-p.pending:
			p.write(writeCtx, snapshot)
		case <-ctx.Done():
			select {
			case snapshot := <-p.pending:
				p.write(writeCtx, snapshot)
			default:
			}
			return
		}
	}
}

// write failures are logged and counted; the in-memory state stays
// authoritative.
func (p *persister) write(ctx context.Context, snapshot []model.Pickup) {
	data, err := json.Marshal(snapshot)
	if err != nil {
		metrics.PersistErrorsTotal.Inc()
		p.logger.Error("failed to encode pickups", zap.Error(err))
		return
	}
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	if err := p.storage.Put(ctx, PickupsKey, data); err != nil {
		metrics.PersistErrorsTotal.Inc()
		p.logger.Warn("failed to persist pickups", zap.Error(err))
		return
	}
	p.logger.Debug("pickups persisted", zap.Int("count", len(snapshot)))
}
