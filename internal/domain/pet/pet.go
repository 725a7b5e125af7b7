// Package pet defines the core domain model for the virtual pet.
// This package is PURE and must NOT import any infrastructure packages
// (network, events, storage, platform).
package pet

import "time"

// Attributes holds the pet's wellbeing stats. Every value is kept inside
// [MinStat, MaxStat] by clamping on each write; observable state is never
// left out of range, not even transiently.
type Attributes struct {
	Hunger      float64 `json:"hunger"`
	Happiness   float64 `json:"happiness"`
	Energy      float64 `json:"energy"`
	Cleanliness float64 `json:"cleanliness"`

	// LastUpdated is the epoch-millisecond timestamp of the last decay or
	// action application. Stamped by the caller, never by Decay itself.
	LastUpdated int64 `json:"lastUpdated"`
}

// NewAttributes creates the fresh stat block used at hatch and restart time.
func NewAttributes(now time.Time) Attributes {
	return Attributes{
		Hunger:      StartingHunger,
		Happiness:   StartingHappiness,
		Energy:      StartingEnergy,
		Cleanliness: StartingCleanliness,
		LastUpdated: now.UnixMilli(),
	}
}

// Action identifies one of the four care interactions.
type Action string

const (
	ActionFeed  Action = "feed"
	ActionPlay  Action = "play"
	ActionNap   Action = "nap"
	ActionClean Action = "clean"
)

type actionEffect struct {
	hunger      float64
	happiness   float64
	energy      float64
	cleanliness float64
}

var actionEffects = map[Action]actionEffect{
	ActionFeed:  {hunger: +15, cleanliness: -5},
	ActionPlay:  {hunger: -6, happiness: +18, energy: -10, cleanliness: -6},
	ActionNap:   {hunger: -5, happiness: +4, energy: +20},
	ActionClean: {happiness: +3, cleanliness: +22},
}

// Apply returns the attributes after one care action, with every stat
// clamped. Unknown actions leave the attributes untouched. LastUpdated is
// the caller's job, same as for Decay.
func (a Attributes) Apply(action Action) Attributes {
	eff, ok := actionEffects[action]
	if !ok {
		return a
	}
	a.Hunger = clamp(a.Hunger + eff.hunger)
	a.Happiness = clamp(a.Happiness + eff.happiness)
	a.Energy = clamp(a.Energy + eff.energy)
	a.Cleanliness = clamp(a.Cleanliness + eff.cleanliness)
	return a
}

func clamp(v float64) float64 {
	if v < MinStat {
		return MinStat
	}
	if v > MaxStat {
		return MaxStat
	}
	return v
}
