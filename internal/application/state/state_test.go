package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMode_String(t *testing.T) {
	tests := []struct {
		mode     Mode
		expected string
	}{
		{ModeWait, "Wait"},
		{ModeIdle, "Idle"},
		{ModeFight, "Fight"},
		{Mode(99), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.mode.String())
		})
	}
}

func TestPhase_String(t *testing.T) {
	tests := []struct {
		phase    Phase
		expected string
	}{
		{PhaseNone, "None"},
		{PhasePreRound, "PreRound"},
		{PhaseRound, "Round"},
		{PhaseEndRound, "EndRound"},
		{PhaseFightOver, "FightOver"},
		{Phase(-1), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.phase.String())
		})
	}
}

func TestPhase_Mode(t *testing.T) {
	assert.Equal(t, ModeWait, PhaseNone.Mode())
	assert.Equal(t, ModeIdle, PhasePreRound.Mode())
	assert.Equal(t, ModeFight, PhaseRound.Mode())
	assert.Equal(t, ModeIdle, PhaseEndRound.Mode())
	assert.Equal(t, ModeIdle, PhaseFightOver.Mode())
}

func TestModeConstants(t *testing.T) {
	// Verify the iota ordering
	assert.Equal(t, Mode(0), ModeWait)
	assert.Equal(t, Mode(1), ModeIdle)
	assert.Equal(t, Mode(2), ModeFight)
}
