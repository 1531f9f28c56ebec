package button

import "strings"

// Mask is the 8-bit wire encoding of pressed or released buttons:
// LP, HP, LK, HK, Up, Down, Left, Right from the least significant bit.
type Mask uint8

// Raw lists the buttons that have a mask bit, in bit order.
var Raw = [...]Button{LP, HP, LK, HK, Up, Down, Left, Right}

// MaskOf builds a mask from buttons. Buttons without a bit are ignored.
func MaskOf(bs ...Button) Mask {
	var m Mask
	for _, b := range bs {
		m |= b.Bit()
	}
	return m
}

// Has reports whether b is set in m.
func (m Mask) Has(b Button) bool {
	bit := b.Bit()
	return bit != 0 && m&bit != 0
}

// Set returns m with b set.
func (m Mask) Set(b Button) Mask {
	return m | b.Bit()
}

// Unset returns m with b cleared.
func (m Mask) Unset(b Button) Mask {
	return m &^ b.Bit()
}

// Buttons returns the buttons set in m in bit order.
func (m Mask) Buttons() []Button {
	var out []Button
	for _, b := range Raw {
		if m.Has(b) {
			out = append(out, b)
		}
	}
	return out
}

func (m Mask) String() string {
	bs := m.Buttons()
	if len(bs) == 0 {
		return "-"
	}
	parts := make([]string, len(bs))
	for i, b := range bs {
		parts[i] = b.String()
	}
	return strings.Join(parts, "+")
}
