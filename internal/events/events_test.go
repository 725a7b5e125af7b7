package events

import (
	"errors"
	"testing"
	"time"

	"github.com/marissaabao/tamagotchi/internal/domain/pet"
)

type recordingPersister struct {
	appended []PetEvent
	fail     bool
}

func (p *recordingPersister) Append(event PetEvent) error {
	if p.fail {
		return errors.New("disk full")
	}
	p.appended = append(p.appended, event)
	return nil
}

func makeEvent(t EventType, age int) PetEvent {
	return PetEvent{
		ID:        NewEventID(),
		Timestamp: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Type:      t,
		Stage:     pet.StageAlive,
		Age:       age,
	}
}

func TestAppendAndReplay(t *testing.T) {
	p := &recordingPersister{}
	el := NewEventLog(p)

	el.Append(makeEvent(EventTypeTimeTick, 1))
	el.Append(makeEvent(EventTypeFeed, 1))
	el.Append(makeEvent(EventTypeTimeTick, 2))

	history := el.Replay()
	if len(history) != 3 {
		t.Fatalf("expected 3 events, got %d", len(history))
	}
	if len(p.appended) != 3 {
		t.Fatalf("expected 3 persisted events, got %d", len(p.appended))
	}
}

func TestGetByType(t *testing.T) {
	el := NewEventLog(nil)
	el.Append(makeEvent(EventTypeTimeTick, 1))
	el.Append(makeEvent(EventTypeFeed, 1))
	el.Append(makeEvent(EventTypeTimeTick, 2))

	ticks := el.GetByType(EventTypeTimeTick)
	if len(ticks) != 2 {
		t.Fatalf("expected 2 tick events, got %d", len(ticks))
	}
	if none := el.GetByType(EventTypeRestart); none != nil {
		t.Fatalf("expected no restart events, got %d", len(none))
	}
}

func TestFailingPersisterDoesNotBlockAppend(t *testing.T) {
	el := NewEventLog(&recordingPersister{fail: true})

	el.Append(makeEvent(EventTypeTimeTick, 1))

	if got := len(el.Replay()); got != 1 {
		t.Fatalf("expected event retained in memory despite persister failure, got %d", got)
	}
}

func TestReplayReturnsCopy(t *testing.T) {
	el := NewEventLog(nil)
	el.Append(makeEvent(EventTypeHatch, 0))

	history := el.Replay()
	history[0].Type = EventTypeRestart

	if el.Replay()[0].Type != EventTypeHatch {
		t.Fatalf("expected internal log unaffected by mutation of Replay result")
	}
}

func TestNewEventIDUnique(t *testing.T) {
	if NewEventID() == NewEventID() {
		t.Fatalf("expected unique event IDs")
	}
}
