package store

import "smartwaste-backend/internal/model"

// EventKind names the mutation that produced an Event.
type EventKind string

const (
	EventCreated       EventKind = "created"
	EventCancelled     EventKind = "cancelled"
	EventStatusChanged EventKind = "status_changed"
)

// Event is delivered to listeners after a mutation has been applied.
type Event struct {
	Kind     EventKind          `json:"kind"`
	Pickup   model.Pickup       `json:"pickup"`
	Previous model.PickupStatus `json:"previous,omitempty"`
}

// Listener is called synchronously after each mutation, outside the store
// lock. Listeners re-read derived views from the store as needed and must
// not block.
type Listener func(Event)

type listenerEntry struct {
	id int
	fn Listener
}

// Subscribe registers l and returns a function that removes it.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	s.listenerMu.Lock()
	defer s.listenerMu.Unlock()

	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, listenerEntry{id: id, fn: l})

	return func() {
		s.listenerMu.Lock()
		defer s.listenerMu.Unlock()
		for i, entry := range s.listeners {
			if entry.id == id {
				s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) notify(ev Event) {
	s.listenerMu.Lock()
	listeners := make([]listenerEntry, len(s.listeners))
	copy(listeners, s.listeners)
	s.listenerMu.Unlock()

	for _, entry := range listeners {
		entry.fn(ev)
	}
}
