// Package events provides the append-only ledger of simulation events.
// The ledger is supplemental history for clients and debugging; the
// persisted snapshot, not the ledger, is the source of truth on restore.
package events

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/marissaabao/tamagotchi/internal/domain/pet"
)

// EventType defines the category of a simulation event.
type EventType string

const (
	EventTypeTimeTick    EventType = "TIME_TICK"
	EventTypeHatch       EventType = "HATCH"
	EventTypeRestart     EventType = "RESTART"
	EventTypeFeed        EventType = "FEED"
	EventTypePlay        EventType = "PLAY"
	EventTypeNap         EventType = "NAP"
	EventTypeClean       EventType = "CLEAN"
	EventTypeStageChange EventType = "STAGE_CHANGE"
)

// PetEvent is an immutable record of one state-affecting simulation event.
type PetEvent struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Stage     pet.Stage `json:"stage"`
	Age       int       `json:"age"`
	Detail    string    `json:"detail,omitempty"`
}

// EventPersister defines how an event is durably stored. Writes are
// best-effort; a failing persister never blocks the simulation.
type EventPersister interface {
	Append(event PetEvent) error
}

// EventLog is the in-memory append-only log of simulation events.
type EventLog struct {
	mu        sync.RWMutex
	events    []PetEvent
	persister EventPersister
}

// NewEventLog creates a new event log with an optional persister.
func NewEventLog(persister EventPersister) *EventLog {
	return &EventLog{
		events:    make([]PetEvent, 0),
		persister: persister,
	}
}

// Append adds a new event to the log. Events are immutable once appended.
// Persister failures are swallowed here; the persister itself is expected
// to log and count them.
func (el *EventLog) Append(event PetEvent) {
	el.mu.Lock()
	defer el.mu.Unlock()
	el.events = append(el.events, event)

	if el.persister != nil {
		_ = el.persister.Append(event)
	}
}

// Replay returns the full in-memory history of events.
func (el *EventLog) Replay() []PetEvent {
	el.mu.RLock()
	defer el.mu.RUnlock()
	out := make([]PetEvent, len(el.events))
	copy(out, el.events)
	return out
}

// GetByType returns all events of a given type.
func (el *EventLog) GetByType(t EventType) []PetEvent {
	el.mu.RLock()
	defer el.mu.RUnlock()

	var result []PetEvent
	for _, e := range el.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// NewEventID creates a unique event identifier.
func NewEventID() string {
	return uuid.NewString()
}
