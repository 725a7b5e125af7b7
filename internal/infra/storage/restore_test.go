package storage

import (
	"context"
	"testing"
	"time"

	"github.com/marissaabao/tamagotchi/internal/domain/pet"
	"github.com/marissaabao/tamagotchi/internal/platform/logger"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	return f.now
}

func newRestorerForTest(t *testing.T, now time.Time) (*Restorer, *SnapshotRepository, *fakeClock) {
	t.Helper()
	repo := openTestDB(t)
	clk := &fakeClock{now: now}
	return NewRestorer(repo, clk, logger.NewLogger()), repo, clk
}

func assertFreshEgg(t *testing.T, got InitialState, now time.Time) {
	t.Helper()
	if got.Stage != pet.StageEgg || got.Age != 0 {
		t.Fatalf("expected fresh egg, got %+v", got)
	}
	want := pet.NewAttributes(now)
	if got.Pet != want {
		t.Fatalf("expected default attributes %+v, got %+v", want, got.Pet)
	}
}

func TestRestoreMissingSnapshot(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	r, _, _ := newRestorerForTest(t, now)
	assertFreshEgg(t, r.Restore(context.Background()), now)
}

func TestRestoreVersionMismatch(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	r, repo, _ := newRestorerForTest(t, now)

	old := Snapshot{Version: 1, Stage: string(pet.StageAlive), Age: 12,
		Pet: pet.Attributes{Hunger: 90, Happiness: 90, Energy: 90, Cleanliness: 90, LastUpdated: now.UnixMilli()}}
	if err := repo.Save(context.Background(), old); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	assertFreshEgg(t, r.Restore(context.Background()), now)
}

func TestRestoreMalformedStage(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	r, repo, _ := newRestorerForTest(t, now)

	bad := Snapshot{Version: SnapshotVersion, Stage: "zombie", Age: 3}
	if err := repo.Save(context.Background(), bad); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	assertFreshEgg(t, r.Restore(context.Background()), now)
}

func TestRestoreNonAliveVerbatim(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	r, repo, _ := newRestorerForTest(t, now)

	// Saved an hour ago; a dead pet must not decay while the app is closed.
	saved := Snapshot{Version: SnapshotVersion, Stage: string(pet.StageDead), Age: pet.MaxAge,
		Pet: pet.Attributes{Hunger: 10, Happiness: 20, Energy: 30, Cleanliness: 40,
			LastUpdated: now.Add(-time.Hour).UnixMilli()}}
	if err := repo.Save(context.Background(), saved); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got := r.Restore(context.Background())
	if got.Stage != pet.StageDead || got.Age != pet.MaxAge {
		t.Fatalf("expected dead snapshot restored verbatim, got %+v", got)
	}
	if got.Pet.Hunger != 10 || got.Pet.Happiness != 20 || got.Pet.Energy != 30 || got.Pet.Cleanliness != 40 {
		t.Fatalf("expected attributes untouched, got %+v", got.Pet)
	}
	if got.Pet.LastUpdated != now.UnixMilli() {
		t.Fatalf("expected LastUpdated refreshed to now")
	}
}

func TestRestoreAliveCatchUpDecay(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	r, repo, _ := newRestorerForTest(t, now)

	savedAttrs := pet.Attributes{Hunger: 90, Happiness: 90, Energy: 90, Cleanliness: 90,
		LastUpdated: now.Add(-100 * time.Second).UnixMilli()}
	saved := Snapshot{Version: SnapshotVersion, Stage: string(pet.StageAlive), Age: 5, Pet: savedAttrs}
	if err := repo.Save(context.Background(), saved); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got := r.Restore(context.Background())
	if got.Stage != pet.StageAlive {
		t.Fatalf("expected alive, got %s", got.Stage)
	}
	// Age is frozen across the gap; only attributes are caught up.
	if got.Age != 5 {
		t.Fatalf("expected age unchanged at 5, got %d", got.Age)
	}
	want := pet.Decay(savedAttrs, 100)
	if got.Pet.Hunger != want.Hunger || got.Pet.Happiness != want.Happiness ||
		got.Pet.Energy != want.Energy || got.Pet.Cleanliness != want.Cleanliness {
		t.Fatalf("expected 100s catch-up decay %+v, got %+v", want, got.Pet)
	}
	if got.Pet.LastUpdated != now.UnixMilli() {
		t.Fatalf("expected LastUpdated stamped to now")
	}
}

func TestRestoreAliveLongAbsenceFloorsAttributes(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	r, repo, _ := newRestorerForTest(t, now)

	saved := Snapshot{Version: SnapshotVersion, Stage: string(pet.StageAlive), Age: 2,
		Pet: pet.Attributes{Hunger: 100, Happiness: 100, Energy: 100, Cleanliness: 100,
			LastUpdated: now.Add(-time.Hour).UnixMilli()}}
	if err := repo.Save(context.Background(), saved); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got := r.Restore(context.Background())
	if got.Pet.Hunger != 0 || got.Pet.Happiness != 0 || got.Pet.Energy != 0 || got.Pet.Cleanliness != 0 {
		t.Fatalf("expected all attributes floored after an hour, got %+v", got.Pet)
	}
	if got.Age != 2 || got.Stage != pet.StageAlive {
		t.Fatalf("expected age and stage preserved, got %+v", got)
	}
}

func TestRestoreAliveZeroElapsed(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	r, repo, _ := newRestorerForTest(t, now)

	savedAttrs := pet.Attributes{Hunger: 55, Happiness: 66, Energy: 77, Cleanliness: 88,
		LastUpdated: now.UnixMilli()}
	saved := Snapshot{Version: SnapshotVersion, Stage: string(pet.StageAlive), Age: 9, Pet: savedAttrs}
	if err := repo.Save(context.Background(), saved); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got := r.Restore(context.Background())
	if got.Pet != savedAttrs || got.Age != 9 || got.Stage != pet.StageAlive {
		t.Fatalf("expected zero-elapsed restore unchanged, got %+v", got)
	}
}

func TestRestoreAliveClockSkew(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	r, repo, _ := newRestorerForTest(t, now)

	// LastUpdated in the future: elapsed clamps to zero, no decay.
	savedAttrs := pet.Attributes{Hunger: 55, Happiness: 66, Energy: 77, Cleanliness: 88,
		LastUpdated: now.Add(time.Hour).UnixMilli()}
	saved := Snapshot{Version: SnapshotVersion, Stage: string(pet.StageAlive), Age: 4, Pet: savedAttrs}
	if err := repo.Save(context.Background(), saved); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got := r.Restore(context.Background())
	if got.Pet.Hunger != 55 || got.Pet.Happiness != 66 || got.Pet.Energy != 77 || got.Pet.Cleanliness != 88 {
		t.Fatalf("expected no decay for future timestamp, got %+v", got.Pet)
	}
	if got.Pet.LastUpdated != now.UnixMilli() {
		t.Fatalf("expected LastUpdated stamped back to now")
	}
}
