package movement

import (
	"github.com/automoto/jumpsync/shared/netconfig"
	"github.com/automoto/jumpsync/shared/tiles"
)

// EventKind identifies a transition reported to the presentation layer.
type EventKind uint8

const (
	EventJump EventKind = iota
	EventLanded
	EventWallSlide
	EventWallJump
	EventSkid
	EventSlide
	EventShellStart
	EventShellEnd
	EventGroundpoundStart
	EventGroundpoundLand
	EventDrillStart
	EventPropellerStart
	EventPropellerSpin
	EventSpinnerLaunch
	EventHeadBump
	EventKnockbackStart
	EventKnockbackEnd
	EventFrozen
	EventUnfrozen
	EventTransitStart
	EventTransitWarp
	EventTransitEnd
	EventMegaStart
	EventMegaGrown
	EventMegaCancelled
	EventMegaEnd
	EventPowerup
	EventPowerdown
	EventPowerAction
	EventEmote
	EventDropped
	EventDeath
	EventFellOut
	EventUnstuck
	EventWedged
	EventBounce
	EventRepel
	EventRespawn
)

var eventNames = [...]string{
	EventJump:             "jump",
	EventLanded:           "landed",
	EventWallSlide:        "wall_slide",
	EventWallJump:         "wall_jump",
	EventSkid:             "skid",
	EventSlide:            "slide",
	EventShellStart:       "shell_start",
	EventShellEnd:         "shell_end",
	EventGroundpoundStart: "groundpound_start",
	EventGroundpoundLand:  "groundpound_land",
	EventDrillStart:       "drill_start",
	EventPropellerStart:   "propeller_start",
	EventPropellerSpin:    "propeller_spin",
	EventSpinnerLaunch:    "spinner_launch",
	EventHeadBump:         "head_bump",
	EventKnockbackStart:   "knockback_start",
	EventKnockbackEnd:     "knockback_end",
	EventFrozen:           "frozen",
	EventUnfrozen:         "unfrozen",
	EventTransitStart:     "transit_start",
	EventTransitWarp:      "transit_warp",
	EventTransitEnd:       "transit_end",
	EventMegaStart:        "mega_start",
	EventMegaGrown:        "mega_grown",
	EventMegaCancelled:    "mega_cancelled",
	EventMegaEnd:          "mega_end",
	EventPowerup:          "powerup",
	EventPowerdown:        "powerdown",
	EventPowerAction:      "power_action",
	EventEmote:            "emote",
	EventDropped:          "dropped",
	EventDeath:            "death",
	EventFellOut:          "fell_out",
	EventUnstuck:          "unstuck",
	EventBounce:           "bounce",
	EventRepel:            "repel",
	EventRespawn:          "respawn",
	EventWedged:           "wedged",
}

func (k EventKind) String() string {
	if int(k) < len(eventNames) {
		return eventNames[k]
	}
	return "unknown"
}

// Event is a transition the presentation layer may react to. Only the fields
// relevant to Kind are set.
type Event struct {
	Kind    EventKind
	Tier    int                    // Jump combo tier
	Powerup netconfig.PowerupState // Powerup, powerdown and power actions
	Coord   tiles.Coord            // Head bumps
	Hold    HoldRef                // Dropped entity
}

// Output collects what a phase of the tick produced.
type Output struct {
	Requests []tiles.Request
	Events   []Event

	poundLanded bool
	sideHit     bool
	sideVX      float64
}

func (o *Output) emit(e Event) {
	o.Events = append(o.Events, e)
}

func (o *Output) request(c tiles.Coord, from tiles.Direction, p tiles.Purpose) {
	o.Requests = append(o.Requests, tiles.Request{Coord: c, From: from, Purpose: p})
}

func (o *Output) merge(other Output) {
	o.Requests = append(o.Requests, other.Requests...)
	o.Events = append(o.Events, other.Events...)
	o.poundLanded = o.poundLanded || other.poundLanded
	if other.sideHit {
		o.sideHit = true
		o.sideVX = other.sideVX
	}
}

// Has reports whether an event of kind k was emitted.
func (o *Output) Has(k EventKind) bool {
	for _, e := range o.Events {
		if e.Kind == k {
			return true
		}
	}
	return false
}
