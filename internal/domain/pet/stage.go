package pet

// Stage is the pet's life stage. The progression is
// egg -> hatching -> alive -> dead, with a single cycle-back edge
// dead -> egg via restart.
type Stage string

const (
	StageEgg      Stage = "egg"
	StageHatching Stage = "hatching"
	StageAlive    Stage = "alive"
	StageDead     Stage = "dead"
)

// Valid reports whether s is one of the four known stages. Used when
// restoring persisted state that may be corrupted.
func (s Stage) Valid() bool {
	switch s {
	case StageEgg, StageHatching, StageAlive, StageDead:
		return true
	}
	return false
}

// Label returns the human-readable stage name shown to clients.
func (s Stage) Label() string {
	switch s {
	case StageEgg:
		return "Egg"
	case StageHatching:
		return "Hatching..."
	case StageAlive:
		return "Alive"
	case StageDead:
		return "Dead"
	}
	return "Unknown"
}
