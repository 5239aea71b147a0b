package movement

// TimerID names a slot in the TimerBank.
type TimerID uint8

const (
	TimerInvincibility TimerID = iota // Star power
	TimerHitInvincibility
	TimerWallSlide // Slide window while pressed against a wall
	TimerWallJump  // Re-entry block after a wall jump
	TimerGroundpoundStart
	TimerKnockback
	TimerPipe
	TimerGiantStart
	TimerGiantEnd
	TimerGiant
	TimerPropeller
	TimerPropellerSpin
	TimerPropellerDrill
	TimerFireball
	TimerEmote
	TimerJumpBuffer
	TimerCoyote
	TimerJumpCombo
	TimerFreeze
	TimerFreezeBreak
	TimerWedge
	TimerCount // Must be last
)

var timerNames = [TimerCount]string{
	TimerInvincibility:    "invincibility",
	TimerHitInvincibility: "hit_invincibility",
	TimerWallSlide:        "wall_slide",
	TimerWallJump:         "wall_jump",
	TimerGroundpoundStart: "groundpound_start",
	TimerKnockback:        "knockback",
	TimerPipe:             "pipe",
	TimerGiantStart:       "giant_start",
	TimerGiantEnd:         "giant_end",
	TimerGiant:            "giant",
	TimerPropeller:        "propeller",
	TimerPropellerSpin:    "propeller_spin",
	TimerPropellerDrill:   "propeller_drill",
	TimerFireball:         "fireball",
	TimerEmote:            "emote",
	TimerJumpBuffer:       "jump_buffer",
	TimerCoyote:           "coyote",
	TimerJumpCombo:        "jump_combo",
	TimerFreeze:           "freeze",
	TimerFreezeBreak:      "freeze_break",
	TimerWedge:            "wedge",
}

func (id TimerID) String() string {
	if id < TimerCount {
		return timerNames[id]
	}
	return "unknown"
}

// TimerBank holds every countdown an avatar carries. A value of exactly zero
// means the timer is inactive. It is a plain array so states stay comparable
// and copyable for resimulation.
type TimerBank [TimerCount]float64

// Tick decrements every running timer by dt, clamping at zero.
func (b *TimerBank) Tick(dt float64) {
	for i, v := range b {
		if v <= 0 {
			continue
		}
		v -= dt
		if v < 0 {
			v = 0
		}
		b[i] = v
	}
}

// Set arms a timer. Negative durations clear it.
func (b *TimerBank) Set(id TimerID, seconds float64) {
	if seconds < 0 {
		seconds = 0
	}
	b[id] = seconds
}

// Get returns the remaining time of a timer.
func (b *TimerBank) Get(id TimerID) float64 {
	return b[id]
}

// Active reports whether a timer is still running.
func (b *TimerBank) Active(id TimerID) bool {
	return b[id] > 0
}

// Clear stops a timer.
func (b *TimerBank) Clear(id TimerID) {
	b[id] = 0
}

// Expired reports whether a timer that was running in prev has reached zero.
func (b *TimerBank) Expired(prev *TimerBank, id TimerID) bool {
	return prev[id] > 0 && b[id] == 0
}

// Elapsed returns how long a timer armed with total has been running.
func (b *TimerBank) Elapsed(id TimerID, total float64) float64 {
	if total <= 0 {
		return 0
	}
	e := total - b[id]
	if e < 0 {
		return 0
	}
	return e
}
