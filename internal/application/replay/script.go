package replay

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/younwookim/brawl/internal/domain/button"
)

// ScriptEvent is one hand-written input event. Players are numbered 1 and
// 2; Target defaults to Tick.
type ScriptEvent struct {
	Tick    int             `yaml:"tick"`
	Player  int             `yaml:"player"`
	Press   []button.Button `yaml:"press"`
	Release []button.Button `yaml:"release"`
	Target  *int            `yaml:"target"`
}

// ParseScript turns a YAML list of script events into replay data ordered
// by tick.
func ParseScript(data []byte) (*Data, error) {
	var script []ScriptEvent
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}

	events := make([]Event, 0, len(script))
	for i, se := range script {
		if se.Player != 1 && se.Player != 2 {
			return nil, fmt.Errorf("script event %d: player %d must be 1 or 2", i, se.Player)
		}
		if se.Tick < 1 {
			return nil, fmt.Errorf("script event %d: tick %d must be positive", i, se.Tick)
		}
		pressed, err := wireMask(se.Press)
		if err != nil {
			return nil, fmt.Errorf("script event %d: %w", i, err)
		}
		released, err := wireMask(se.Release)
		if err != nil {
			return nil, fmt.Errorf("script event %d: %w", i, err)
		}

		target := se.Tick
		if se.Target != nil {
			target = *se.Target
		}
		events = append(events, Event{
			Tick:     se.Tick,
			Player:   se.Player - 1,
			Pressed:  pressed,
			Released: released,
			Target:   target,
		})
	}
	sort.SliceStable(events, func(i, j int) bool { return events[i].Tick < events[j].Tick })

	return &Data{Version: Version, Events: events}, nil
}

// LoadScript reads a YAML script file
func LoadScript(filename string) (*Data, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	return ParseScript(data)
}

func wireMask(bs []button.Button) (button.Mask, error) {
	var m button.Mask
	for _, b := range bs {
		if b.Bit() == 0 {
			return 0, fmt.Errorf("%s is not a raw button", b)
		}
		m = m.Set(b)
	}
	return m, nil
}
