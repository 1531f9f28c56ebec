package move

import "github.com/younwookim/brawl/internal/domain/button"

// MotionCommand maps a directional sequence ending in a button press to a
// virtual button, e.g. Down, DownForward, Forward, LP to QCFP.
type MotionCommand struct {
	Button   button.Button
	Sequence []button.Button
}

// Trigger returns the button that completes the command.
func (m MotionCommand) Trigger() button.Button {
	return m.Sequence[len(m.Sequence)-1]
}

// Directions returns the directional part of the command in input order.
func (m MotionCommand) Directions() []button.Button {
	return m.Sequence[:len(m.Sequence)-1]
}
