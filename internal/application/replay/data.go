// Package replay records the input events of a match and plays them back.
// Events keep the tick they arrived on as well as the frame they target, so
// late input replays into the same rollbacks it caused live.
package replay

import (
	"github.com/younwookim/brawl/internal/domain/button"
)

// Version is written into every replay and checked on load
const Version = "1.0"

// Event records one input arrival
type Event struct {
	Tick     int         `json:"t"`            // engine tick the input arrived before
	Player   int         `json:"p"`            // 0 or 1
	Pressed  button.Mask `json:"pr,omitempty"` // buttons pressed
	Released button.Mask `json:"rl,omitempty"` // buttons released
	Target   int         `json:"f"`            // frame the input applies to
}

// Data contains all data needed to replay a match
type Data struct {
	Version    string    `json:"version"`
	MatchID    string    `json:"matchId"`
	Stage      string    `json:"stage"`
	Characters [2]string `json:"characters"`
	StartTime  string    `json:"startTime"`
	Events     []Event   `json:"events"`
}

// Sink receives input events. engine.Engine implements it.
type Sink interface {
	Buttons(player int, pressed, released button.Mask, target int) error
}
