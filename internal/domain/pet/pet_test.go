package pet

import (
	"testing"
	"time"
)

func TestNewAttributesStartingValues(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	a := NewAttributes(start)

	if a.Hunger != StartingHunger || a.Happiness != StartingHappiness ||
		a.Energy != StartingEnergy || a.Cleanliness != StartingCleanliness {
		t.Fatalf("unexpected starting attributes: %+v", a)
	}
	if a.LastUpdated != start.UnixMilli() {
		t.Fatalf("expected LastUpdated %d got %d", start.UnixMilli(), a.LastUpdated)
	}
}

func TestApplyActionDeltas(t *testing.T) {
	base := Attributes{Hunger: 50, Happiness: 50, Energy: 50, Cleanliness: 50}

	cases := []struct {
		action                                 Action
		hunger, happiness, energy, cleanliness float64
	}{
		{ActionFeed, 65, 50, 50, 45},
		{ActionPlay, 44, 68, 40, 44},
		{ActionNap, 45, 54, 70, 50},
		{ActionClean, 50, 53, 50, 72},
	}

	for _, c := range cases {
		got := base.Apply(c.action)
		if got.Hunger != c.hunger || got.Happiness != c.happiness ||
			got.Energy != c.energy || got.Cleanliness != c.cleanliness {
			t.Fatalf("%s: expected (%v,%v,%v,%v) got %+v",
				c.action, c.hunger, c.happiness, c.energy, c.cleanliness, got)
		}
	}
}

func TestApplyClampsAtCeiling(t *testing.T) {
	a := Attributes{Hunger: 95, Happiness: 99, Energy: 95, Cleanliness: 90}
	got := a.Apply(ActionFeed)
	if got.Hunger != 100 {
		t.Fatalf("expected hunger clamped to 100, got %v", got.Hunger)
	}
	got = a.Apply(ActionClean)
	if got.Cleanliness != 100 || got.Happiness != 100 {
		t.Fatalf("expected cleanliness and happiness clamped to 100, got %+v", got)
	}
}

func TestApplyClampsAtFloor(t *testing.T) {
	a := Attributes{Hunger: 2, Happiness: 0, Energy: 3, Cleanliness: 1}
	got := a.Apply(ActionPlay)
	if got.Hunger != 0 || got.Energy != 0 || got.Cleanliness != 0 {
		t.Fatalf("expected floored stats, got %+v", got)
	}
	if got.Happiness != 18 {
		t.Fatalf("expected happiness 18, got %v", got.Happiness)
	}
}

func TestApplyUnknownActionIsNoop(t *testing.T) {
	a := Attributes{Hunger: 50, Happiness: 50, Energy: 50, Cleanliness: 50}
	if got := a.Apply(Action("snuggle")); got != a {
		t.Fatalf("expected no change for unknown action, got %+v", got)
	}
}
