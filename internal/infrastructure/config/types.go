package config

// MovesConfig is the root config for a move table (moves.json or moves.yaml).
// Order matters: action handles are assigned in list order.
type MovesConfig struct {
	Actions    []ActionConfig    `json:"actions" yaml:"actions"`
	Characters []CharacterConfig `json:"characters" yaml:"characters"`
	Motions    []MotionConfig    `json:"motions" yaml:"motions"`
}

// BoxConfig is a box as [x, y, xend, yend]
type BoxConfig [4]float64

// SpanConfig is one entry of a box timeline
type SpanConfig struct {
	End   int         `json:"end" yaml:"end"`
	Boxes []BoxConfig `json:"boxes" yaml:"boxes"`
}

// HitboxConfig is either a timeline (spans) or a flat box list active for
// the whole action. Spans win when both are given.
type HitboxConfig struct {
	Spans []SpanConfig `json:"spans,omitempty" yaml:"spans,omitempty"`
	Boxes []BoxConfig  `json:"boxes,omitempty" yaml:"boxes,omitempty"`
}

// IsZero reports whether no boxes were configured.
func (h HitboxConfig) IsZero() bool {
	return len(h.Spans) == 0 && len(h.Boxes) == 0
}

type ActionConfig struct {
	Name      string `json:"name" yaml:"name"`
	Character string `json:"character" yaml:"character"`
	Animation string `json:"animation,omitempty" yaml:"animation,omitempty"`
	Type      string `json:"type,omitempty" yaml:"type,omitempty"`

	Collision *HitboxConfig `json:"collision,omitempty" yaml:"collision,omitempty"`
	Hitbox    HitboxConfig  `json:"hitbox" yaml:"hitbox"`
	Hurtbox   HitboxConfig  `json:"hurtbox" yaml:"hurtbox"`

	Damage              int `json:"damage" yaml:"damage"`
	BlockAdvantage      int `json:"blockAdvantage" yaml:"blockAdvantage"`
	HitAdvantage        int `json:"hitAdvantage" yaml:"hitAdvantage"`
	LockedFrames        int `json:"lockedFrames" yaml:"lockedFrames"`
	AnimationLength     int `json:"animationLength" yaml:"animationLength"`
	SpecialCancelFrames int `json:"specialCancelFrames" yaml:"specialCancelFrames"`

	Velocity          [3]float64        `json:"velocity" yaml:"velocity"`
	KnockdownDistance float64           `json:"knockdownDistance,omitempty" yaml:"knockdownDistance,omitempty"`
	Chains            map[string]string `json:"chains,omitempty" yaml:"chains,omitempty"` // button -> action
	Path              [][3]float64      `json:"path,omitempty" yaml:"path,omitempty"`
}

type CharacterConfig struct {
	Name         string       `json:"name" yaml:"name"`
	Collision    HitboxConfig `json:"collision" yaml:"collision"`
	MaxHealth    int          `json:"maxHealth" yaml:"maxHealth"`
	GrappleThrow bool         `json:"grappleThrow,omitempty" yaml:"grappleThrow,omitempty"`

	Idle         string `json:"idle" yaml:"idle"`
	WalkForward  string `json:"walkForward" yaml:"walkForward"`
	WalkBackward string `json:"walkBackward" yaml:"walkBackward"`
	Jump         string `json:"jump" yaml:"jump"`
	Damaged      string `json:"damaged" yaml:"damaged"`
	Block        string `json:"block" yaml:"block"`
	StHP         string `json:"stHP" yaml:"stHP"`
	StLP         string `json:"stLP" yaml:"stLP"`
	Grab         string `json:"grab" yaml:"grab"`
	Throw        string `json:"throw" yaml:"throw"`
	Thrown       string `json:"thrown" yaml:"thrown"`
	ThrownGR     string `json:"thrownGR" yaml:"thrownGR"`
	KD           string `json:"kd" yaml:"kd"`
	Defeat       string `json:"defeat" yaml:"defeat"`

	Specials map[string]string `json:"specials,omitempty" yaml:"specials,omitempty"` // button -> action
}

// MotionConfig binds a directional sequence ending in a button to a virtual
// button, e.g. {"button": "QCFP", "sequence": ["DOWN", "DOWNFORWARD", "FORWARD", "LP"]}
type MotionConfig struct {
	Button   string   `json:"button" yaml:"button"`
	Sequence []string `json:"sequence" yaml:"sequence"`
}
