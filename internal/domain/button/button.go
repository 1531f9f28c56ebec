// Package button defines the fighting-game buttons, the raw input bitmask
// and facing-relative direction helpers.
package button

import (
	"fmt"
	"strings"
)

// Button is a physical button, a raw direction, a facing-relative direction
// or a motion command.
type Button uint8

const (
	None Button = iota
	LP
	HP
	LK
	HK
	Up
	Down
	Left
	Right
	Forward
	Back
	UpForward
	UpBack
	DownForward
	DownBack
	Neutral
	QCFP // quarter circle forward + punch
)

var names = [...]string{
	None:        "NONE",
	LP:          "LP",
	HP:          "HP",
	LK:          "LK",
	HK:          "HK",
	Up:          "UP",
	Down:        "DOWN",
	Left:        "LEFT",
	Right:       "RIGHT",
	Forward:     "FORWARD",
	Back:        "BACK",
	UpForward:   "UPFORWARD",
	UpBack:      "UPBACK",
	DownForward: "DOWNFORWARD",
	DownBack:    "DOWNBACK",
	Neutral:     "NEUTRAL",
	QCFP:        "QCFP",
}

// String returns the string representation of the button
func (b Button) String() string {
	if int(b) < len(names) {
		return names[b]
	}
	return "Unknown"
}

// Parse returns the button named s (case insensitive).
func Parse(s string) (Button, error) {
	u := strings.ToUpper(strings.TrimSpace(s))
	for i, n := range names {
		if n == u {
			return Button(i), nil
		}
	}
	return None, fmt.Errorf("unknown button %q", s)
}

// MarshalText implements encoding.TextMarshaler so buttons can be map keys
// in JSON and YAML move tables.
func (b Button) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Button) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}

// IsAttack reports whether b is one of the four attack buttons.
func (b Button) IsAttack() bool {
	return b >= LP && b <= HK
}

// Bit returns the mask bit of a raw button, or 0 for buttons that never
// appear on the wire.
func (b Button) Bit() Mask {
	if b >= LP && b <= Right {
		return 1 << (b - LP)
	}
	return 0
}

// Translate maps a raw horizontal direction to a facing-relative one.
// Other buttons are returned unchanged.
func Translate(d Button, onLeft bool) Button {
	switch {
	case d == Right && onLeft, d == Left && !onLeft:
		return Forward
	case d == Left && onLeft, d == Right && !onLeft:
		return Back
	}
	return d
}

// Combine merges a facing-relative horizontal direction and a vertical
// direction into one of the nine compass buttons. Diagonals win over pure
// directions; None on both axes gives Neutral.
func Combine(dx, dy Button) Button {
	switch dx {
	case Forward:
		switch dy {
		case Down:
			return DownForward
		case Up:
			return UpForward
		}
		return Forward
	case Back:
		switch dy {
		case Down:
			return DownBack
		case Up:
			return UpBack
		}
		return Back
	}
	if dy != None {
		return dy
	}
	return Neutral
}
