package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartwaste-backend/internal/model"
)

// memKV is an in-memory kv.Store used to observe persistence.
type memKV struct {
	mu     sync.Mutex
	data   map[string][]byte
	puts   int
	getErr error
	putErr error
}

func newMemKV() *memKV {
	return &memKV{data: make(map[string][]byte)}
}

func (m *memKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memKV) Put(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.puts++
	if m.putErr != nil {
		return m.putErr
	}
	m.data[key] = value
	return nil
}

func (m *memKV) stored(t *testing.T) []model.Pickup {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.data[PickupsKey]
	if !ok {
		return nil
	}
	var out []model.Pickup
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("new-%d", n)
	}
}

func draft(wasteType model.WasteType, amount int) model.PickupDraft {
	return model.PickupDraft{
		WasteType:     wasteType,
		ScheduledDate: "2025-02-01",
		TimeSlot:      "10:00 AM - 12:00 PM",
		Location:      "12 Ring Road",
		Address:       "12 Ring Road, Osu",
		Amount:        amount,
		PaymentMethod: "MTN MoMo",
	}
}

func pickup(id string, status model.PickupStatus, amount int) model.Pickup {
	return model.Pickup{ID: id, WasteType: model.WasteGeneral, Status: status, Amount: amount}
}

func TestStore_AddPickup(t *testing.T) {
	fixed := time.Date(2025, 1, 30, 9, 0, 0, 0, time.UTC)
	s := New(nil, nil,
		WithSeed(SeedUser(), nil),
		WithClock(func() time.Time { return fixed }),
		WithIDGenerator(sequentialIDs()))
	before := s.User()

	created := s.AddPickup(draft(model.WasteRecyclable, 15))

	assert.Equal(t, "new-1", created.ID)
	assert.Equal(t, model.StatusPending, created.Status)
	assert.Equal(t, fixed, created.CreatedAt)
	assert.Equal(t, 15, created.Amount)
	assert.Equal(t, "12 Ring Road", created.Location)

	after := s.User()
	assert.Equal(t, before.TotalPickups+1, after.TotalPickups)
	assert.Equal(t, before.EcoPoints+50, after.EcoPoints)
}

func TestStore_AddPickupOrdering(t *testing.T) {
	s := New(nil, nil, WithSeed(SeedUser(), nil), WithIDGenerator(sequentialIDs()))
	user := s.User()

	types := []model.WasteType{model.WasteGeneral, model.WasteEWaste, model.WasteMedical, model.WasteOrganic}
	for _, wt := range types {
		s.AddPickup(draft(wt, 10))
	}

	list := s.Pickups()
	require.Len(t, list, len(types))
	for i, p := range list {
		assert.Equal(t, types[len(types)-1-i], p.WasteType, "most recent first")
	}
	assert.Equal(t, fmt.Sprintf("new-%d", len(types)), list[0].ID)
	assert.Equal(t, user.TotalPickups+len(types), s.User().TotalPickups)
	assert.Equal(t, user.EcoPoints+50*len(types), s.User().EcoPoints)
}

func TestStore_DefaultIDsAreUnique(t *testing.T) {
	s := New(nil, nil, WithSeed(SeedUser(), nil))
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		p := s.AddPickup(draft(model.WasteGeneral, 25))
		assert.False(t, seen[p.ID])
		assert.Equal(t, byte('p'), p.ID[0])
		seen[p.ID] = true
	}
}

func TestStore_CancelPickup(t *testing.T) {
	s := New(nil, nil, WithSeed(SeedUser(), nil), WithIDGenerator(sequentialIDs()))
	created := s.AddPickup(draft(model.WasteOrganic, 20))

	cancelled, found := s.CancelPickup(created.ID)
	require.True(t, found)

	expected := created
	expected.Status = model.StatusCancelled
	assert.Equal(t, expected, cancelled)
	stored, _ := s.PickupByID(created.ID)
	assert.Equal(t, expected, stored)

	// Cancelling again is idempotent.
	again, found := s.CancelPickup(created.ID)
	assert.True(t, found)
	assert.Equal(t, expected, again)
	assert.Len(t, s.Pickups(), 1, "history is retained")
}

func TestStore_CancelUnknownPickup(t *testing.T) {
	s := New(nil, nil)
	before := s.Pickups()

	_, found := s.CancelPickup("does-not-exist")

	assert.False(t, found)
	assert.Equal(t, before, s.Pickups())
}

func TestStore_TotalSpent(t *testing.T) {
	s := New(nil, nil, WithSeed(SeedUser(), []model.Pickup{
		pickup("a", model.StatusCompleted, 20),
		pickup("b", model.StatusCancelled, 60),
	}))
	assert.Equal(t, 20, s.TotalSpent())

	seeded := New(nil, nil)
	assert.Equal(t, 550, seeded.TotalSpent())
}

func TestStore_ActivePickup(t *testing.T) {
	testCases := []struct {
		name     string
		pickups  []model.Pickup
		expected string
	}{
		{
			name: "first live pickup in list order",
			pickups: []model.Pickup{
				pickup("done", model.StatusCompleted, 10),
				pickup("moving", model.StatusInProgress, 10),
				pickup("waiting", model.StatusPending, 10),
			},
			expected: "moving",
		},
		{
			name: "confirmed counts as live",
			pickups: []model.Pickup{
				pickup("gone", model.StatusCancelled, 10),
				pickup("ok", model.StatusConfirmed, 10),
			},
			expected: "ok",
		},
		{
			name: "no live pickup",
			pickups: []model.Pickup{
				pickup("gone", model.StatusCancelled, 10),
				pickup("done", model.StatusCompleted, 10),
			},
		},
		{
			name: "empty list",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := New(nil, nil, WithSeed(SeedUser(), tc.pickups))
			active := s.ActivePickup()
			if tc.expected == "" {
				assert.Nil(t, active)
				return
			}
			require.NotNil(t, active)
			assert.Equal(t, tc.expected, active.ID)
		})
	}
}

func TestStore_NewPickupBecomesActive(t *testing.T) {
	s := New(nil, nil)
	require.Equal(t, "p1", s.ActivePickup().ID)

	created := s.AddPickup(draft(model.WasteGeneral, 25))
	assert.Equal(t, created.ID, s.ActivePickup().ID)
}

func TestStore_PickupsByStatus(t *testing.T) {
	s := New(nil, nil)

	completed := s.PickupsByStatus(model.StatusCompleted)
	assert.Len(t, completed, 17)
	assert.Equal(t, "p3", completed[0].ID)
	assert.Equal(t, "p20", completed[len(completed)-1].ID)

	cancelled := s.PickupsByStatus(model.StatusCancelled)
	require.Len(t, cancelled, 1)
	assert.Equal(t, "p14", cancelled[0].ID)

	assert.Empty(t, s.PickupsByStatus(model.StatusPending))
	assert.Equal(t, 1, s.CountByStatus(model.StatusPending, model.StatusConfirmed))
}

func TestStore_Recent(t *testing.T) {
	s := New(nil, nil)
	recent := s.Recent(4)
	require.Len(t, recent, 4)
	assert.Equal(t, []string{"p1", "p2", "p3", "p4"}, []string{recent[0].ID, recent[1].ID, recent[2].ID, recent[3].ID})

	small := New(nil, nil, WithSeed(SeedUser(), []model.Pickup{pickup("only", model.StatusPending, 1)}))
	assert.Len(t, small.Recent(4), 1)
}

func TestStore_SnapshotsAreCopies(t *testing.T) {
	s := New(nil, nil)
	list := s.Pickups()
	list[0].Status = model.StatusCancelled

	p, _ := s.PickupByID("p1")
	assert.Equal(t, model.StatusInProgress, p.Status)
}

func TestStore_AdvanceStatus(t *testing.T) {
	s := New(nil, nil)

	p, err := s.AdvanceStatus("p2", model.StatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, model.StatusInProgress, p.Status)

	_, err = s.AdvanceStatus("p2", model.PickupStatus("teleported"))
	assert.True(t, errors.Is(err, ErrUnknownStatus))

	_, err = s.AdvanceStatus("nope", model.StatusCompleted)
	assert.True(t, errors.Is(err, ErrPickupNotFound))

	_, err = s.AdvanceStatus("p2", model.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, 550+25, s.TotalSpent())
}

func TestStore_Listeners(t *testing.T) {
	s := New(nil, nil, WithSeed(SeedUser(), nil), WithIDGenerator(sequentialIDs()))

	var events []Event
	unsubscribe := s.Subscribe(func(ev Event) {
		// Listeners may read back from the store.
		_ = s.ActivePickup()
		events = append(events, ev)
	})

	created := s.AddPickup(draft(model.WasteGeneral, 25))
	_, err := s.AdvanceStatus(created.ID, model.StatusConfirmed)
	require.NoError(t, err)
	s.CancelPickup(created.ID)
	s.CancelPickup(created.ID) // no second event
	s.CancelPickup("missing")  // no event

	require.Len(t, events, 3)
	assert.Equal(t, EventCreated, events[0].Kind)
	assert.Equal(t, EventStatusChanged, events[1].Kind)
	assert.Equal(t, model.StatusPending, events[1].Previous)
	assert.Equal(t, model.StatusConfirmed, events[1].Pickup.Status)
	assert.Equal(t, EventCancelled, events[2].Kind)

	unsubscribe()
	s.AddPickup(draft(model.WasteGeneral, 25))
	assert.Len(t, events, 3)
}

func TestStore_PersistsAfterMutations(t *testing.T) {
	storage := newMemKV()
	s := New(storage, nil, WithSeed(SeedUser(), nil), WithIDGenerator(sequentialIDs()))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	s.AddPickup(draft(model.WasteGeneral, 25))
	s.AddPickup(draft(model.WasteEWaste, 40))
	s.CancelPickup("new-1")

	assert.Eventually(t, func() bool {
		stored := storage.stored(t)
		return len(stored) == 2 && stored[1].Status == model.StatusCancelled
	}, time.Second, 10*time.Millisecond)

	cancel()
	<-done

	stored := storage.stored(t)
	assert.Equal(t, "new-2", stored[0].ID)
	assert.Equal(t, model.StatusPending, stored[0].Status)
}

func TestStore_FlushesOnShutdown(t *testing.T) {
	storage := newMemKV()
	s := New(storage, nil, WithSeed(SeedUser(), nil), WithIDGenerator(sequentialIDs()))
	s.AddPickup(draft(model.WasteGeneral, 25))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s.Run(ctx)

	assert.Len(t, storage.stored(t), 1)
}

func TestStore_WriteFailureIsNotSurfaced(t *testing.T) {
	storage := newMemKV()
	storage.putErr = errors.New("disk full")
	s := New(storage, nil, WithSeed(SeedUser(), nil))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx)

	created := s.AddPickup(draft(model.WasteGeneral, 25))

	assert.Eventually(t, func() bool {
		storage.mu.Lock()
		defer storage.mu.Unlock()
		return storage.puts > 0
	}, time.Second, 10*time.Millisecond)

	p, found := s.PickupByID(created.ID)
	assert.True(t, found)
	assert.Equal(t, model.StatusPending, p.Status)
}

func TestStore_Initialize(t *testing.T) {
	saved := []model.Pickup{
		pickup("saved-2", model.StatusPending, 25),
		pickup("saved-1", model.StatusCompleted, 40),
	}
	raw, err := json.Marshal(saved)
	require.NoError(t, err)

	testCases := []struct {
		name        string
		setup       func(m *memKV)
		expectedIDs []string
	}{
		{
			name:        "restores saved list",
			setup:       func(m *memKV) { m.data[PickupsKey] = raw },
			expectedIDs: []string{"saved-2", "saved-1"},
		},
		{
			name:        "empty storage keeps seed",
			setup:       func(m *memKV) {},
			expectedIDs: nil,
		},
		{
			name:        "read error keeps seed",
			setup:       func(m *memKV) { m.getErr = errors.New("locked") },
			expectedIDs: nil,
		},
		{
			name:        "corrupt value keeps seed",
			setup:       func(m *memKV) { m.data[PickupsKey] = []byte("{not json") },
			expectedIDs: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			storage := newMemKV()
			tc.setup(storage)
			s := New(storage, nil)

			s.Initialize(context.Background())

			list := s.Pickups()
			if tc.expectedIDs == nil {
				assert.Len(t, list, 20)
				assert.Equal(t, "p1", list[0].ID)
				return
			}
			ids := make([]string, len(list))
			for i, p := range list {
				ids[i] = p.ID
			}
			assert.Equal(t, tc.expectedIDs, ids)
			assert.Equal(t, 40, s.TotalSpent())
		})
	}
}
