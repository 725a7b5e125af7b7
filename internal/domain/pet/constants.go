package pet

import "time"

// Simulation constants. These are the whole tuning surface of the game.
const (
	MaxStat = 100.0
	MinStat = 0.0

	// TickInterval is the real-time period between simulation ticks while
	// the pet is alive.
	TickInterval = 5000 * time.Millisecond

	// HatchDuration is how long the egg stays in the hatching stage before
	// the pet comes alive.
	HatchDuration = 1200 * time.Millisecond

	// MaxAge is the number of ticks a pet lives. Once age reaches this the
	// pet dies at the end of that tick.
	MaxAge = 24

	// Decay rates, in stat points lost per real second while alive.
	HungerDecayPerSecond      = 0.25
	HappinessDecayPerSecond   = 0.30
	EnergyDecayPerSecond      = 0.18
	CleanlinessDecayPerSecond = 0.22

	// Starting values for a freshly hatched (or restarted) pet.
	StartingHunger      = 80.0
	StartingHappiness   = 80.0
	StartingEnergy      = 80.0
	StartingCleanliness = 80.0
)
