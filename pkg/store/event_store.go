package store

import (
	"bytes"
	"encoding/json"
	"log"
	"sync"

	"github.com/dormakabaservicesfr-a11y/Daycousu2/pkg/models"
)

// EventStore maintains the local ordered event collection, reconciling
// incoming replication notifications into it. Notifications may arrive
// redundantly, out of order, or with partially-applied multi-field
// writes; each one is treated as an independent idempotent
// upsert-or-delete and the last applied notification per key wins.
type EventStore struct {
	mu sync.RWMutex

	// Ordered collection: updates keep their position, inserts append
	events []*models.Event

	// Map of event ID to position in events
	index map[string]int

	// Called after every applied change (not for discarded duplicates)
	onChange func(id string)
}

func NewEventStore() *EventStore {
	return &EventStore{
		index: make(map[string]int),
	}
}

// SetOnChange registers a callback fired with the record key after each
// applied upsert or delete. Discarded duplicate notifications do not fire.
func (s *EventStore) SetOnChange(fn func(id string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// Apply reconciles one replication notification into the collection.
// A null or absent value removes the record for key; any other value is
// decoded defensively and upserted. Returns true if the collection
// changed.
func (s *EventStore) Apply(key string, value json.RawMessage) bool {
	if len(value) == 0 || bytes.Equal(value, []byte("null")) {
		return s.remove(key)
	}

	candidate, err := models.DecodeEvent(key, value)
	if err != nil {
		// Malformed or legacy record shape: ignore, never crash
		log.Printf("Ignoring malformed record for key %s: %v", key, err)
		return false
	}

	return s.upsert(candidate)
}

func (s *EventStore) upsert(candidate *models.Event) bool {
	s.mu.Lock()

	if pos, ok := s.index[candidate.ID]; ok {
		existing := s.events[pos]
		if existing.Equal(candidate) {
			// Redundant notification (typically an echoed self-write):
			// discard to avoid re-render storms and feedback loops
			s.mu.Unlock()
			return false
		}
		// Replace in place, preserving array position
		s.events[pos] = candidate
	} else {
		s.index[candidate.ID] = len(s.events)
		s.events = append(s.events, candidate)
	}

	onChange := s.onChange
	s.mu.Unlock()

	if onChange != nil {
		onChange(candidate.ID)
	}
	return true
}

func (s *EventStore) remove(key string) bool {
	s.mu.Lock()

	pos, ok := s.index[key]
	if !ok {
		s.mu.Unlock()
		return false
	}

	s.events = append(s.events[:pos], s.events[pos+1:]...)
	delete(s.index, key)
	for i := pos; i < len(s.events); i++ {
		s.index[s.events[i].ID] = i
	}

	onChange := s.onChange
	s.mu.Unlock()

	if onChange != nil {
		onChange(key)
	}
	return true
}

// Get returns a copy of the record for id
func (s *EventStore) Get(id string) (models.Event, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pos, ok := s.index[id]
	if !ok {
		return models.Event{}, false
	}
	return s.events[pos].Clone(), true
}

// Events returns a copy of the whole collection in insertion order
func (s *EventStore) Events() []models.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.Event, 0, len(s.events))
	for _, e := range s.events {
		result = append(result, e.Clone())
	}
	return result
}

// EventsForMonth returns the records grouped under one of the twelve
// recognized months, in insertion order. Records carrying any other
// month value are invisible by design.
func (s *EventStore) EventsForMonth(month string) []models.Event {
	if !models.IsKnownMonth(month) {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []models.Event
	for _, e := range s.events {
		if e.Month == month {
			result = append(result, e.Clone())
		}
	}
	return result
}

// UsedIcons returns every icon currently on the board, for the oracle's
// exclusion list
func (s *EventStore) UsedIcons() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	icons := make([]string, 0, len(s.events))
	for _, e := range s.events {
		if e.Icon != "" {
			icons = append(icons, e.Icon)
		}
	}
	return icons
}

// Len returns the number of records in the collection
func (s *EventStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}
