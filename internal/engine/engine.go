// Package engine contains the pet simulation loop and lifecycle state
// machine. This is the heartbeat of the game.
//
// ARCHITECTURAL RULE: all mutation goes through the engine's mutex and
// runs to completion. The tick loop, the hatch timer, and player commands
// never interleave inside a state change. Both timers are owned by the
// current lifecycle session and are cancelled on every stage-exit path,
// so a stale timer can never mutate state after a restart.
package engine

import (
	"sync"
	"time"

	"github.com/marissaabao/tamagotchi/internal/domain/pet"
	"github.com/marissaabao/tamagotchi/internal/events"
	"github.com/marissaabao/tamagotchi/internal/platform/clock"
	"github.com/marissaabao/tamagotchi/internal/platform/logger"
	"github.com/marissaabao/tamagotchi/internal/platform/metrics"
)

// State is the read-only view of the engine handed to the presentation
// boundary after every change.
type State struct {
	Stage      pet.Stage      `json:"stage"`
	StageLabel string         `json:"stage_label"`
	Age        int            `json:"age"`
	Pet        pet.Attributes `json:"pet"`
}

// StateChangeHook is invoked synchronously at the end of every
// state-affecting handler (tick, action, stage transition). Hooks must not
// call back into the engine.
type StateChangeHook func(s State)

// Engine owns the pet's attributes and life stage. Single writer: every
// mutation holds the mutex for the whole handler.
type Engine struct {
	mu       sync.Mutex
	clk      clock.Clock
	logger   *logger.Logger
	eventLog *events.EventLog

	stage pet.Stage
	age   int
	attrs pet.Attributes

	hatchTimer *time.Timer
	tickStop   chan struct{}

	hooks []StateChangeHook
}

// NewEngine creates an engine in the fresh egg state.
func NewEngine(clk clock.Clock, log *logger.Logger, eventLog *events.EventLog) *Engine {
	return &Engine{
		clk:      clk,
		logger:   log,
		eventLog: eventLog,
		stage:    pet.StageEgg,
		attrs:    pet.NewAttributes(clk.Now()),
	}
}

// OnStateChange registers a hook. Call before the engine starts serving
// commands; registration is not synchronized with handlers.
func (e *Engine) OnStateChange(fn StateChangeHook) {
	e.hooks = append(e.hooks, fn)
}

// Restore seeds the engine from persisted state. A restored alive pet
// resumes ticking; a restored hatching egg restarts its hatch timer so it
// cannot get stuck mid-hatch.
func (e *Engine) Restore(stage pet.Stage, age int, attrs pet.Attributes) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.cancelTimersLocked()
	e.stage = stage
	e.age = age
	e.attrs = attrs

	switch stage {
	case pet.StageAlive:
		e.startTickLoopLocked()
	case pet.StageHatching:
		e.startHatchTimerLocked()
	}
	e.logger.Info("Engine state restored: stage=" + string(stage))
}

// State returns a snapshot of the current engine state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stateLocked()
}

// Dispatch routes a named command from the presentation boundary. Unknown
// commands return false; known commands invalid for the current stage are
// silent no-ops per the lifecycle rules.
func (e *Engine) Dispatch(command string) bool {
	switch command {
	case "hatch":
		e.Hatch()
	case "restart":
		e.Restart()
	case "feed":
		e.Feed()
	case "play":
		e.Play()
	case "nap":
		e.Nap()
	case "clean":
		e.Clean()
	default:
		return false
	}
	return true
}

// Hatch moves a fresh egg into the hatching stage and arms the one-shot
// hatch timer. No-op outside the egg stage.
func (e *Engine) Hatch() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stage != pet.StageEgg {
		return
	}

	e.age = 0
	e.attrs = pet.NewAttributes(e.clk.Now())
	e.stage = pet.StageHatching
	e.startHatchTimerLocked()

	e.appendEventLocked(events.EventTypeHatch, "")
	e.logger.Event("HATCH", "Egg is hatching")
	e.notifyLocked()
}

// Restart returns the simulation to a fresh egg from any stage, cancelling
// whatever timer the outgoing session owned.
func (e *Engine) Restart() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.cancelTimersLocked()
	e.stage = pet.StageEgg
	e.age = 0
	e.attrs = pet.NewAttributes(e.clk.Now())

	e.appendEventLocked(events.EventTypeRestart, "")
	e.logger.Event("RESTART", "Back to a fresh egg")
	e.notifyLocked()
}

// The four care actions. Valid only while alive; silent no-ops otherwise.

func (e *Engine) Feed() { e.applyAction(pet.ActionFeed, events.EventTypeFeed) }

func (e *Engine) Play() { e.applyAction(pet.ActionPlay, events.EventTypePlay) }

func (e *Engine) Nap() { e.applyAction(pet.ActionNap, events.EventTypeNap) }

func (e *Engine) Clean() { e.applyAction(pet.ActionClean, events.EventTypeClean) }

func (e *Engine) applyAction(action pet.Action, eventType events.EventType) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stage != pet.StageAlive {
		return
	}

	e.attrs = e.attrs.Apply(action)
	e.attrs.LastUpdated = e.clk.Now().UnixMilli()
	metrics.Get().RecordAction()

	e.appendEventLocked(eventType, "")
	e.notifyLocked()
}

// Shutdown cancels all timers. The engine stays readable but no further
// ticks or hatch completions will fire.
func (e *Engine) Shutdown() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cancelTimersLocked()
}

// tick advances the simulation by one interval: age up, decay, then the
// death check. The check runs strictly after decay so the pet receives its
// final tick's decay before dying.
func (e *Engine) tick() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stage != pet.StageAlive {
		return
	}

	e.age++
	e.attrs = pet.Decay(e.attrs, pet.TickInterval.Seconds())
	e.attrs.LastUpdated = e.clk.Now().UnixMilli()
	metrics.Get().RecordTick()
	e.appendEventLocked(events.EventTypeTimeTick, "")

	if e.age >= pet.MaxAge {
		e.stopTickLoopLocked()
		e.stage = pet.StageDead
		metrics.Get().RecordStageChange()
		e.appendEventLocked(events.EventTypeStageChange, string(pet.StageDead))
		e.logger.Event("DEATH", "Pet reached max age")
	}

	e.notifyLocked()
}

// completeHatch fires when the hatch timer elapses. Re-checks the stage
// under the lock: a restart may have raced the timer.
func (e *Engine) completeHatch() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stage != pet.StageHatching {
		return
	}

	e.hatchTimer = nil
	e.stage = pet.StageAlive
	e.startTickLoopLocked()
	metrics.Get().RecordStageChange()

	e.appendEventLocked(events.EventTypeStageChange, string(pet.StageAlive))
	e.logger.Event("ALIVE", "Pet hatched")
	e.notifyLocked()
}

func (e *Engine) startHatchTimerLocked() {
	e.hatchTimer = time.AfterFunc(pet.HatchDuration, e.completeHatch)
}

func (e *Engine) startTickLoopLocked() {
	stop := make(chan struct{})
	e.tickStop = stop
	go func() {
		ticker := time.NewTicker(pet.TickInterval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				e.tick()
			}
		}
	}()
}

func (e *Engine) stopTickLoopLocked() {
	if e.tickStop != nil {
		close(e.tickStop)
		e.tickStop = nil
	}
}

func (e *Engine) cancelTimersLocked() {
	if e.hatchTimer != nil {
		e.hatchTimer.Stop()
		e.hatchTimer = nil
	}
	e.stopTickLoopLocked()
}

func (e *Engine) stateLocked() State {
	return State{
		Stage:      e.stage,
		StageLabel: e.stage.Label(),
		Age:        e.age,
		Pet:        e.attrs,
	}
}

func (e *Engine) appendEventLocked(t events.EventType, detail string) {
	if e.eventLog == nil {
		return
	}
	e.eventLog.Append(events.PetEvent{
		ID:        events.NewEventID(),
		Timestamp: e.clk.Now(),
		Type:      t,
		Stage:     e.stage,
		Age:       e.age,
		Detail:    detail,
	})
}

func (e *Engine) notifyLocked() {
	s := e.stateLocked()
	for _, fn := range e.hooks {
		fn(s)
	}
}
