package pet

import "math"

// Decay applies time-based stat loss for elapsedSeconds and returns the
// result with every stat clamped. Pure and deterministic.
//
// Negative or non-finite elapsed time is treated as zero, which defends
// against wall-clock skew on resume. Once a stat saturates at a bound,
// further decay of that stat is a no-op; that is the intended saturation
// policy. LastUpdated is left untouched.
func Decay(a Attributes, elapsedSeconds float64) Attributes {
	if elapsedSeconds < 0 || math.IsNaN(elapsedSeconds) || math.IsInf(elapsedSeconds, 0) {
		elapsedSeconds = 0
	}
	a.Hunger = clamp(a.Hunger - HungerDecayPerSecond*elapsedSeconds)
	a.Happiness = clamp(a.Happiness - HappinessDecayPerSecond*elapsedSeconds)
	a.Energy = clamp(a.Energy - EnergyDecayPerSecond*elapsedSeconds)
	a.Cleanliness = clamp(a.Cleanliness - CleanlinessDecayPerSecond*elapsedSeconds)
	return a
}
