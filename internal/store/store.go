package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"smartwaste-backend/internal/kv"
	"smartwaste-backend/internal/metrics"
	"smartwaste-backend/internal/model"
)

// PickupsKey is the local storage key holding the serialized pickup list.
const PickupsKey = "smartwaste_pickups"

// EcoPointsPerPickup is awarded to the user for every scheduled pickup.
const EcoPointsPerPickup = 50

var (
	ErrPickupNotFound = errors.New("pickup not found")
	ErrUnknownStatus  = errors.New("unknown pickup status")
)

// Store is the single source of truth for the user profile and the pickup
// list. The list is kept most-recent-first.
type Store struct {
	mu      sync.RWMutex
	user    model.UserProfile
	pickups []model.Pickup

	listenerMu sync.Mutex
	listeners  []listenerEntry
	nextID     int

	persist *persister
	logger  *zap.Logger
	now     func() time.Time
	newID   func() string
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the creation timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides pickup id assignment.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// WithSeed replaces the built-in seed data.
func WithSeed(user model.UserProfile, pickups []model.Pickup) Option {
	return func(s *Store) {
		s.user = user
		s.pickups = clonePickups(pickups)
	}
}

// New creates a store holding the seed data. A nil storage disables
// persistence.
func New(storage kv.Store, logger *zap.Logger, opts ...Option) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{
		user:    SeedUser(),
		pickups: SeedPickups(),
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
		newID:   newPickupID,
	}
	for _, opt := range opts {
		opt(s)
	}
	if storage != nil {
		s.persist = newPersister(storage, logger)
	}
	metrics.PickupsStored.Set(float64(len(s.pickups)))
	return s
}

// newPickupID derives an id from a time-ordered UUID.
func newPickupID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return "p" + uuid.NewString()
	}
	return "p" + id.String()
}

// Initialize replaces the seed list with the persisted one, if any. A missing
// or unreadable value keeps the seed data.
func (s *Store) Initialize(ctx context.Context) {
	if s.persist == nil {
		return
	}
	data, found, err := s.persist.storage.Get(ctx, PickupsKey)
	if err != nil {
		s.logger.Warn("could not read saved pickups, using seed data", zap.Error(err))
		return
	}
	if !found || len(data) == 0 {
		s.logger.Debug("no saved pickups, using seed data")
		return
	}

	var saved []model.Pickup
	if err := json.Unmarshal(data, &saved); err != nil {
		s.logger.Warn("saved pickups are not decodable, using seed data", zap.Error(err))
		return
	}

	s.mu.Lock()
	s.pickups = saved
	s.mu.Unlock()
	metrics.PickupsStored.Set(float64(len(saved)))
	s.logger.Info("restored saved pickups", zap.Int("count", len(saved)))
}

// Run writes queued snapshots to local storage until ctx is cancelled.
func (s *Store) Run(ctx context.Context) {
	if s.persist == nil {
		return
	}
	s.persist.run(ctx)
}

// AddPickup creates a pending pickup from the draft and puts it first in the
// list. The amount is taken from the draft unchanged.
func (s *Store) AddPickup(draft model.PickupDraft) model.Pickup {
	p := model.Pickup{
		ID:            s.newID(),
		WasteType:     draft.WasteType,
		Status:        model.StatusPending,
		ScheduledDate: draft.ScheduledDate,
		TimeSlot:      draft.TimeSlot,
		Location:      draft.Location,
		Address:       draft.Address,
		Amount:        draft.Amount,
		PaymentMethod: draft.PaymentMethod,
		DriverName:    draft.DriverName,
		DriverPhone:   draft.DriverPhone,
		DriverRating:  draft.DriverRating,
		Notes:         draft.Notes,
		CreatedAt:     s.now(),
	}

	s.mu.Lock()
	s.pickups = append([]model.Pickup{p}, s.pickups...)
	s.user.TotalPickups++
	s.user.EcoPoints += EcoPointsPerPickup
	s.queueSnapshotLocked()
	count := len(s.pickups)
	s.mu.Unlock()

	metrics.PickupsScheduledTotal.WithLabelValues(string(p.WasteType)).Inc()
	metrics.PickupsStored.Set(float64(count))
	s.logger.Info("pickup scheduled",
		zap.String("id", p.ID),
		zap.String("waste_type", string(p.WasteType)),
		zap.Int("amount", p.Amount))

	s.notify(Event{Kind: EventCreated, Pickup: p})
	return p
}

// CancelPickup marks the pickup cancelled in place. An unknown id is a no-op
// and reports false. Cancelling twice leaves the pickup cancelled.
func (s *Store) CancelPickup(id string) (model.Pickup, bool) {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		s.logger.Debug("cancel for unknown pickup ignored", zap.String("id", id))
		return model.Pickup{}, false
	}
	previous := s.pickups[i].Status
	changed := previous != model.StatusCancelled
	s.pickups[i].Status = model.StatusCancelled
	p := s.pickups[i]
	s.queueSnapshotLocked()
	s.mu.Unlock()

	if changed {
		metrics.PickupsCancelledTotal.Inc()
		s.logger.Info("pickup cancelled", zap.String("id", id))
		s.notify(Event{Kind: EventCancelled, Pickup: p, Previous: previous})
	}
	return p, true
}

// AdvanceStatus sets a pickup's status on behalf of an external system such as
// a dispatch backend. Nothing inside the service calls it on its own.
func (s *Store) AdvanceStatus(id string, status model.PickupStatus) (model.Pickup, error) {
	if !status.Valid() {
		return model.Pickup{}, fmt.Errorf("%w: %q", ErrUnknownStatus, status)
	}

	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return model.Pickup{}, fmt.Errorf("%w: %s", ErrPickupNotFound, id)
	}
	previous := s.pickups[i].Status
	s.pickups[i].Status = status
	p := s.pickups[i]
	s.queueSnapshotLocked()
	s.mu.Unlock()

	if previous != status {
		metrics.StatusChangesTotal.WithLabelValues(string(status)).Inc()
		s.logger.Info("pickup status advanced",
			zap.String("id", id),
			zap.String("from", string(previous)),
			zap.String("to", string(status)))
		s.notify(Event{Kind: EventStatusChanged, Pickup: p, Previous: previous})
	}
	return p, nil
}

// ActivePickup returns the first live pickup in list order, or nil.
func (s *Store) ActivePickup() *model.Pickup {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.pickups {
		if p.Status.Live() {
			active := p
			return &active
		}
	}
	return nil
}

// PickupsByStatus returns the pickups in the given status, in list order.
func (s *Store) PickupsByStatus(status model.PickupStatus) []model.Pickup {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Pickup, 0)
	for _, p := range s.pickups {
		if p.Status == status {
			out = append(out, p)
		}
	}
	return out
}

// CountByStatus counts pickups in any of the given statuses.
func (s *Store) CountByStatus(statuses ...model.PickupStatus) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, p := range s.pickups {
		for _, st := range statuses {
			if p.Status == st {
				n++
				break
			}
		}
	}
	return n
}

// TotalSpent sums the amount of completed pickups.
func (s *Store) TotalSpent() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0
	for _, p := range s.pickups {
		if p.Status == model.StatusCompleted {
			total += p.Amount
		}
	}
	return total
}

// Pickups returns a copy of the full list.
func (s *Store) Pickups() []model.Pickup {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clonePickups(s.pickups)
}

// Recent returns at most n pickups from the head of the list.
func (s *Store) Recent(n int) []model.Pickup {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if n > len(s.pickups) {
		n = len(s.pickups)
	}
	if n < 0 {
		n = 0
	}
	return clonePickups(s.pickups[:n])
}

// PickupByID looks up a single pickup.
func (s *Store) PickupByID(id string) (model.Pickup, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexLocked(id); i >= 0 {
		return s.pickups[i], true
	}
	return model.Pickup{}, false
}

// User returns a copy of the user profile.
func (s *Store) User() model.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *Store) indexLocked(id string) int {
	for i := range s.pickups {
		if s.pickups[i].ID == id {
			return i
		}
	}
	return -1
}

// queueSnapshotLocked must be called with mu held so snapshots are queued in
// mutation order.
func (s *Store) queueSnapshotLocked() {
	if s.persist == nil {
		return
	}
	s.persist.enqueue(clonePickups(s.pickups))
}

func clonePickups(in []model.Pickup) []model.Pickup {
	out := make([]model.Pickup, len(in))
	copy(out, in)
	return out
}
