package state

// Mode controls what the input decoder and the simulator do each tick
type Mode int

const (
	// ModeWait ignores input and does not simulate
	ModeWait Mode = iota
	// ModeIdle simulates and records input but every decoded action is idle
	ModeIdle
	// ModeFight runs the full simulation
	ModeFight
)

// String returns the string representation of the mode
func (m Mode) String() string {
	switch m {
	case ModeWait:
		return "Wait"
	case ModeIdle:
		return "Idle"
	case ModeFight:
		return "Fight"
	default:
		return "Unknown"
	}
}

// Phase is the position of a match in the round lifecycle
type Phase int

const (
	PhaseNone Phase = iota
	PhasePreRound
	PhaseRound
	PhaseEndRound
	PhaseFightOver
)

// String returns the string representation of the phase
func (p Phase) String() string {
	switch p {
	case PhaseNone:
		return "None"
	case PhasePreRound:
		return "PreRound"
	case PhaseRound:
		return "Round"
	case PhaseEndRound:
		return "EndRound"
	case PhaseFightOver:
		return "FightOver"
	default:
		return "Unknown"
	}
}

// Mode returns the simulation mode used during the phase
func (p Phase) Mode() Mode {
	switch p {
	case PhasePreRound, PhaseEndRound, PhaseFightOver:
		return ModeIdle
	case PhaseRound:
		return ModeFight
	default:
		return ModeWait
	}
}
