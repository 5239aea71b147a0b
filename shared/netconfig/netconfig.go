// Package netconfig defines lightweight types shared between client and server
// for network serialization. It must have zero dependencies on ebiten or any
// graphics library so the dedicated server binary stays headless.
package netconfig

// PowerupState is the avatar's power-up, ordered by size and priority.
type PowerupState uint8

const (
	Small PowerupState = iota
	Mushroom
	FireFlower
	IceFlower
	PropellerMushroom
	BlueShell
	MiniMushroom
	MegaMushroom
	PowerupCount // Must be last - used for validation
)

var powerupNames = [PowerupCount]string{
	Small:             "small",
	Mushroom:          "mushroom",
	FireFlower:        "fire_flower",
	IceFlower:         "ice_flower",
	PropellerMushroom: "propeller_mushroom",
	BlueShell:         "blue_shell",
	MiniMushroom:      "mini_mushroom",
	MegaMushroom:      "mega_mushroom",
}

func (p PowerupState) String() string {
	if p < PowerupCount {
		return powerupNames[p]
	}
	return "unknown"
}

// ParsePowerup looks up a power-up by its String name.
func ParsePowerup(name string) (PowerupState, bool) {
	for p := Small; p < PowerupCount; p++ {
		if powerupNames[p] == name {
			return p, true
		}
	}
	return Small, false
}

// Valid reports whether p is a known power-up.
func (p PowerupState) Valid() bool {
	return p < PowerupCount
}

// IsLarge reports whether the power-up uses the tall hitbox.
func (p PowerupState) IsLarge() bool {
	return p != Small && p != MiniMushroom
}

// Downgrade returns the state an avatar drops to when powered down.
// Mega is handled by its own shrink sequence and never reaches here.
func (p PowerupState) Downgrade() PowerupState {
	switch p {
	case Small, MiniMushroom, Mushroom:
		return Small
	default:
		return Mushroom
	}
}

// StateID identifies the presentation state derived from a MovementState.
// It is what animation and audio collaborators key on.
type StateID int

const (
	StateNone StateID = -1

	Idle StateID = iota
	Walk
	Running
	Skid
	Turnaround
	Jump
	DoubleJump
	TripleJump
	Fall
	Crouch
	Slide
	WallSlide
	Groundpound
	Drill
	Shell
	Propeller
	Flying
	Knockback
	Frozen
	PipeTransit
	MegaGrowing
	Wedged
	Dead
)

var stateNames = map[StateID]string{
	StateNone:   "none",
	Idle:        "idle",
	Walk:        "walk",
	Running:     "running",
	Skid:        "skid",
	Turnaround:  "turnaround",
	Jump:        "jump",
	DoubleJump:  "double_jump",
	TripleJump:  "triple_jump",
	Fall:        "fall",
	Crouch:      "crouch",
	Slide:       "slide",
	WallSlide:   "wallslide",
	Groundpound: "groundpound",
	Drill:       "drill",
	Shell:       "shell",
	Propeller:   "propeller",
	Flying:      "flying",
	Knockback:   "knockback",
	Frozen:      "frozen",
	PipeTransit: "pipe",
	MegaGrowing: "mega_growing",
	Wedged:      "wedged",
	Dead:        "dead",
}

func (s StateID) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// ActionID represents a logical input action.
type ActionID int

const (
	ActionNone ActionID = iota
	ActionMoveLeft
	ActionMoveRight
	ActionMoveUp
	ActionCrouch
	ActionJump
	ActionRun
	ActionPower
	ActionCount // Must be last - used for array sizing
)
