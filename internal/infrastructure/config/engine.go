package config

import (
	"fmt"

	"gopkg.in/ini.v1"
)

// EngineConfig is the root config for engine.ini
type EngineConfig struct {
	Rollback RollbackConfig `ini:"Rollback"`
	Round    RoundConfig    `ini:"Round"`
	Combat   CombatConfig   `ini:"Combat"`
	Display  DisplayConfig  `ini:"Display"`
}

type RollbackConfig struct {
	MaxRollback    int  `ini:"MaxRollback"`
	Delay          int  `ini:"Delay"`
	Buffer         int  `ini:"Buffer"`
	SyncTest       bool `ini:"SyncTest"`
	AlwaysRollback bool `ini:"AlwaysRollback"`
}

type RoundConfig struct {
	PreRoundFrames int  `ini:"PreRoundFrames"`
	EndRoundFrames int  `ini:"EndRoundFrames"`
	SkipPreRound   bool `ini:"SkipPreRound"`
	RoundsToWin    int  `ini:"RoundsToWin"`
}

// CombatConfig holds the simulator tunables
type CombatConfig struct {
	ChipRatio        float64 `ini:"ChipRatio"`
	PushbackTotal    float64 `ini:"PushbackTotal"`
	AntiTeleport     float64 `ini:"AntiTeleport"`
	GrabTechHitstop  int     `ini:"GrabTechHitstop"`
	GrabTechPushback float64 `ini:"GrabTechPushback"`
}

// DisplayConfig is only read by the sandbox window
type DisplayConfig struct {
	ScreenWidth   int     `ini:"ScreenWidth"`
	ScreenHeight  int     `ini:"ScreenHeight"`
	Scale         int     `ini:"Scale"`
	Framerate     int     `ini:"Framerate"`
	PixelsPerUnit float64 `ini:"PixelsPerUnit"`
}

// DefaultEngine returns the settings used for keys missing from engine.ini
func DefaultEngine() *EngineConfig {
	return &EngineConfig{
		Rollback: RollbackConfig{
			MaxRollback: 10,
			Delay:       2,
			Buffer:      2,
		},
		Round: RoundConfig{
			PreRoundFrames: 60,
			EndRoundFrames: 120,
			RoundsToWin:    2,
		},
		Combat: CombatConfig{
			ChipRatio:        0.1,
			PushbackTotal:    5.5,
			AntiTeleport:     121,
			GrabTechHitstop:  8,
			GrabTechPushback: 4,
		},
		Display: DisplayConfig{
			ScreenWidth:   480,
			ScreenHeight:  270,
			Scale:         2,
			Framerate:     60,
			PixelsPerUnit: 0.4,
		},
	}
}

// ParseEngine parses engine.ini content over DefaultEngine
func ParseEngine(data []byte) (*EngineConfig, error) {
	f, err := ini.LoadSources(ini.LoadOptions{SkipUnrecognizableLines: true}, data)
	if err != nil {
		return nil, err
	}

	cfg := DefaultEngine()
	sections := []struct {
		name string
		dst  any
	}{
		{"Rollback", &cfg.Rollback},
		{"Round", &cfg.Round},
		{"Combat", &cfg.Combat},
		{"Display", &cfg.Display},
	}
	for _, s := range sections {
		if !f.HasSection(s.name) {
			continue
		}
		if err := f.Section(s.name).StrictMapTo(s.dst); err != nil {
			return nil, fmt.Errorf("section %s: %w", s.name, err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *EngineConfig) validate() error {
	r := c.Rollback
	if r.MaxRollback < 1 {
		return fmt.Errorf("invalid MaxRollback %d: must be positive", r.MaxRollback)
	}
	if r.Delay < 0 || r.Buffer < 0 {
		return fmt.Errorf("invalid Delay %d or Buffer %d: must not be negative", r.Delay, r.Buffer)
	}
	if c.Round.RoundsToWin < 1 {
		return fmt.Errorf("invalid RoundsToWin %d: must be positive", c.Round.RoundsToWin)
	}
	if c.Combat.PushbackTotal < 0 {
		return fmt.Errorf("invalid PushbackTotal %v: must not be negative", c.Combat.PushbackTotal)
	}
	return nil
}
