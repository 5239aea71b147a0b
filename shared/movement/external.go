package movement

import (
	"github.com/tanema/gween/ease"

	"github.com/automoto/jumpsync/config"
	"github.com/automoto/jumpsync/shared/gamemath"
	"github.com/automoto/jumpsync/shared/netconfig"
)

// External events are the only way to interrupt multi-tick transitions.
// Each returns the events it produced; a nil result means it was ignored.

// Freeze encases the avatar in ice for duration seconds, followed by the
// break-out time.
func Freeze(s *State, duration float64) []Event {
	if s.Dead || s.Frozen || s.Transit.Active || s.MegaGrowing() || s.IsMega() || s.StarPowered() {
		return nil
	}
	events := drop(s, nil)
	s.clearModes()
	s.Frozen = true
	s.Velocity = gamemath.Vector{}
	s.Timers.Set(TimerFreeze, duration)
	s.Timers.Set(TimerFreezeBreak, duration+config.Timers.FreezeBreak)
	return append(events, Event{Kind: EventFrozen})
}

// Unfreeze releases a frozen avatar immediately.
func Unfreeze(s *State) []Event {
	if !s.Frozen {
		return nil
	}
	s.Frozen = false
	s.Timers.Clear(TimerFreeze)
	s.Timers.Clear(TimerFreezeBreak)
	return []Event{{Kind: EventUnfrozen}}
}

// ApplyKnockback pushes the avatar away from a hit. fromRight means the
// attacker is on the right, so the avatar flies left. Weak knockbacks are
// shorter, grant no invincibility and also reach invincible avatars.
func ApplyKnockback(s *State, fromRight, weak bool) []Event {
	if s.Dead || s.Transit.Active || s.MegaGrowing() || s.IsMega() || s.Knockback {
		return nil
	}
	if !weak && s.Invincible() {
		return nil
	}
	events := Unfreeze(s)
	events = drop(s, events)
	s.clearModes()

	speed := config.Movement.KnockbackSpeed
	dur := config.Timers.Knockback
	if weak {
		speed = config.Movement.WeakKnockbackSpeed
		dur = config.Timers.WeakKnockback
	}
	dir := config.DirectionRight
	if fromRight {
		dir = config.DirectionLeft
	}

	s.Knockback = true
	s.KnockbackVX = dir * speed
	s.KnockbackDur = dur
	s.Velocity = gamemath.Vector{X: s.KnockbackVX, Y: config.Movement.KnockbackHop}
	s.FacingRight = fromRight
	s.Jumping = false
	s.JumpCombo = 0
	s.Timers.Set(TimerKnockback, dur)
	if !weak {
		s.Timers.Set(TimerHitInvincibility, dur+config.Collision.InvincibleOnPowerup)
	}
	return append(events, Event{Kind: EventKnockbackStart})
}

// advanceKnockback decays the horizontal push to zero over the knockback time.
func advanceKnockback(s *State, out *Output) {
	if !s.Timers.Active(TimerKnockback) {
		s.Knockback = false
		s.KnockbackVX = 0
		out.emit(Event{Kind: EventKnockbackEnd})
		return
	}
	elapsed := s.Timers.Elapsed(TimerKnockback, s.KnockbackDur)
	s.Velocity.X = float64(ease.OutQuad(
		float32(elapsed), float32(s.KnockbackVX), float32(-s.KnockbackVX), float32(s.KnockbackDur)))
}

// Bounce launches the avatar up off another avatar it landed on.
func Bounce(s *State) []Event {
	if s.Dead || s.Frozen || s.Transit.Active || s.MegaGrowing() || s.Knockback {
		return nil
	}
	s.Groundpound = false
	s.Drill = false
	s.Timers.Clear(TimerGroundpoundStart)
	s.Timers.Clear(TimerPropellerDrill)
	s.Velocity.Y = config.Movement.StompBounce
	s.Jumping = true
	s.OnGround = false
	return []Event{{Kind: EventBounce}}
}

// Repel pushes two equally matched avatars apart. fromRight means the other
// avatar is on the right.
func Repel(s *State, fromRight bool) []Event {
	if s.Dead || s.Frozen || s.Transit.Active || s.MegaGrowing() {
		return nil
	}
	dir := config.DirectionRight
	if fromRight {
		dir = config.DirectionLeft
	}
	s.Velocity.X = dir * config.Collision.MutualBounceSpeed
	return []Event{{Kind: EventRepel}}
}

// Powerdown drops the avatar one power-up level. A small avatar dies and a
// mega avatar starts shrinking early.
func Powerdown(s *State) []Event {
	if s.Dead || s.Transit.Active || s.Invincible() || s.MegaGrowing() {
		return nil
	}
	if s.IsMega() {
		if s.Mega != MegaActive {
			return nil
		}
		s.Timers.Clear(TimerGiant)
		return []Event{{Kind: EventPowerdown, Powerup: netconfig.Mushroom}}
	}
	if s.Powerup == netconfig.Small {
		return Kill(s)
	}
	s.PreviousPowerup = s.Powerup
	s.Powerup = s.Powerup.Downgrade()
	s.InShell = false
	if s.Powerup != netconfig.PropellerMushroom {
		s.Propeller = false
		s.Drill = false
		s.Timers.Clear(TimerPropeller)
	}
	s.Timers.Set(TimerHitInvincibility, config.Timers.HitInvincibility)
	return []Event{{Kind: EventPowerdown, Powerup: s.Powerup}}
}

// CollectPowerup applies a picked-up power-up. Mega starts the grow-in.
func CollectPowerup(s *State, p netconfig.PowerupState) []Event {
	if s.Dead || !p.Valid() || s.Mega != MegaNone || s.Transit.Active {
		return nil
	}
	if p == netconfig.MegaMushroom {
		s.PreviousPowerup = s.Powerup
		s.Powerup = p
		s.Mega = MegaGrowing
		s.Growth = 0
		s.clearModes()
		s.Velocity = gamemath.Vector{}
		s.Timers.Set(TimerGiantStart, config.Timers.GiantStart)
		return []Event{{Kind: EventMegaStart}}
	}
	s.PreviousPowerup = s.Powerup
	s.Powerup = p
	s.InShell = false
	return []Event{{Kind: EventPowerup, Powerup: p}}
}

// CollectStar grants star invincibility and the star speed stage.
func CollectStar(s *State) []Event {
	if s.Dead {
		return nil
	}
	s.Timers.Set(TimerInvincibility, config.Timers.StarInvincibility)
	return []Event{{Kind: EventPowerup, Powerup: s.Powerup}}
}

// StartTransit begins a pipe or door warp to dest.
func StartTransit(s *State, dest, direction, exit gamemath.Vector, door bool) []Event {
	if s.Dead || s.Frozen || s.Transit.Active || s.MegaGrowing() {
		return nil
	}
	events := drop(s, nil)
	s.clearModes()
	s.Velocity = gamemath.Vector{}
	s.Transit = Transit{
		Active:      true,
		Door:        door,
		Direction:   direction,
		Exit:        exit,
		Destination: dest,
	}
	s.Timers.Set(TimerPipe, config.Timers.Pipe)
	return append(events, Event{Kind: EventTransitStart})
}

// Kill ends every transition and marks the avatar dead.
func Kill(s *State) []Event {
	if s.Dead {
		return nil
	}
	events := drop(s, nil)
	s.clearModes()
	s.Frozen = false
	s.Transit = Transit{}
	s.Mega = MegaNone
	s.Growth = 0
	s.Timers = TimerBank{}
	s.Velocity = gamemath.Vector{}
	s.Dead = true
	return append(events, Event{Kind: EventDeath})
}

// Respawn resets the avatar at pos.
func Respawn(s *State, pos gamemath.Vector) {
	*s = NewState(pos, netconfig.Small)
}

// Grab attaches a carried entity.
func Grab(s *State, ref HoldRef) {
	if s.Dead || s.Frozen || s.Hold != NoHold {
		return
	}
	s.Hold = ref
}

// Drop detaches the carried entity, if any.
func Drop(s *State) []Event {
	return drop(s, nil)
}

func drop(s *State, events []Event) []Event {
	if s.Hold == NoHold {
		return events
	}
	ref := s.Hold
	s.Hold = NoHold
	return append(events, Event{Kind: EventDropped, Hold: ref})
}

// Emote starts an emote if the avatar is standing still on the ground.
func Emote(s *State) []Event {
	if !s.OnGround || s.OwningModes() > 0 || s.Timers.Active(TimerEmote) || s.Velocity.X != 0 {
		return nil
	}
	s.Timers.Set(TimerEmote, config.Timers.Emote)
	return []Event{{Kind: EventEmote}}
}
