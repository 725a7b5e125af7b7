package storage

import (
	"context"

	"github.com/marissaabao/tamagotchi/internal/domain/pet"
	"github.com/marissaabao/tamagotchi/internal/platform/clock"
	"github.com/marissaabao/tamagotchi/internal/platform/logger"
)

// InitialState is what the engine is seeded with on startup.
type InitialState struct {
	Stage pet.Stage
	Age   int
	Pet   pet.Attributes
}

// Restorer turns whatever is (or is not) in the snapshot slot into a valid
// initial state. It never returns an error to the caller: anything
// missing, unreadable, or from another schema version falls back to a
// fresh egg.
type Restorer struct {
	snapshots *SnapshotRepository
	clk       clock.Clock
	logger    *logger.Logger
}

func NewRestorer(snapshots *SnapshotRepository, clk clock.Clock, log *logger.Logger) *Restorer {
	return &Restorer{snapshots: snapshots, clk: clk, logger: log}
}

// Restore loads the persisted snapshot and computes the state to resume
// from.
//
// A non-alive snapshot is restored verbatim with its timestamp refreshed:
// an egg or a dead pet does not age while the server is down. An alive
// snapshot receives one lump catch-up decay for the whole elapsed
// wall-clock span. Age is deliberately NOT advanced for missed ticks;
// only attributes are caught up, so a long absence penalizes neglect
// without killing the pet outright.
func (r *Restorer) Restore(ctx context.Context) InitialState {
	now := r.clk.Now()
	fresh := InitialState{
		Stage: pet.StageEgg,
		Age:   0,
		Pet:   pet.NewAttributes(now),
	}

	snap, err := r.snapshots.Load(ctx)
	if err != nil {
		r.logger.Warn("Snapshot unreadable, starting from a fresh egg: " + err.Error())
		return fresh
	}
	if snap == nil {
		r.logger.Info("No saved snapshot, starting from a fresh egg")
		return fresh
	}
	if snap.Version != SnapshotVersion {
		r.logger.Warn("Snapshot version mismatch, starting from a fresh egg")
		return fresh
	}

	stage := pet.Stage(snap.Stage)
	if !stage.Valid() || snap.Age < 0 {
		r.logger.Warn("Snapshot malformed, starting from a fresh egg")
		return fresh
	}

	attrs := snap.Pet
	if stage != pet.StageAlive {
		attrs.LastUpdated = now.UnixMilli()
		return InitialState{Stage: stage, Age: snap.Age, Pet: attrs}
	}

	elapsedSeconds := (now.UnixMilli() - attrs.LastUpdated) / 1000
	if elapsedSeconds < 0 {
		elapsedSeconds = 0
	}
	attrs = pet.Decay(attrs, float64(elapsedSeconds))
	attrs.LastUpdated = now.UnixMilli()

	return InitialState{Stage: pet.StageAlive, Age: snap.Age, Pet: attrs}
}
