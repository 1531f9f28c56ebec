package entity

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Frame is a complete simulation snapshot.
type Frame struct {
	Number int       `msgpack:"n"`
	P      [2]Player `msgpack:"p"`

	Hitstop  int     `msgpack:"hs"` // frames left where only pushback happens
	Pushback float64 `msgpack:"pb"` // per hitstop frame

	// Attacker is the player (1 or 2) that landed the hit during hitstop, or
	// 0 for a trade.
	Attacker int `msgpack:"at"`

	// KO is set on the frame a player's health reached zero.
	KO bool `msgpack:"ko"`
}

// NewFrame creates the first frame of a round.
func NewFrame(number int, p1, p2 Player) Frame {
	return Frame{Number: number, P: [2]Player{p1, p2}}
}

// P1OnLeft reports whether player 1 stands left of (or level with) player 2.
func (f *Frame) P1OnLeft() bool {
	return f.P[0].Pos[0] <= f.P[1].Pos[0]
}

// OnLeft reports whether player i (0 or 1) is the left player.
func (f *Frame) OnLeft(i int) bool {
	if i == 0 {
		return f.P1OnLeft()
	}
	return !f.P1OnLeft()
}

// Opponent returns the index of the other player.
func Opponent(i int) int {
	return 1 - i
}

// Encode returns the msgpack encoding of the frame.
func (f *Frame) Encode() ([]byte, error) {
	data, err := msgpack.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("failed to encode frame %d: %w", f.Number, err)
	}
	return data, nil
}

// DecodeFrame decodes a frame written by Encode.
func DecodeFrame(data []byte) (Frame, error) {
	var f Frame
	if err := msgpack.Unmarshal(data, &f); err != nil {
		return Frame{}, fmt.Errorf("failed to decode frame: %w", err)
	}
	return f, nil
}

// Checksum returns the hex sha256 of the frame's encoding. Two replicas that
// simulated the same inputs produce the same checksum.
func (f *Frame) Checksum() (string, error) {
	data, err := f.Encode()
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
