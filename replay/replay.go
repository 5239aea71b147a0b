// Package replay records the local avatar's input tick by tick and plays it
// back through a match. Recordings are msgpack-encoded and kept in the
// per-user data directory.
package replay

import (
	"errors"
	"fmt"

	"github.com/automoto/jumpsync/shared/gamemath"
	"github.com/automoto/jumpsync/shared/match"
	"github.com/automoto/jumpsync/shared/movement"
	"github.com/automoto/jumpsync/shared/netconfig"
	"github.com/automoto/jumpsync/shared/netsync"
)

// ErrEmpty is returned when playing back a recording with no frames.
var ErrEmpty = errors.New("replay: recording has no frames")

// Button is a bit position in Frame.Buttons.
type Button uint8

const (
	ButtonJump Button = iota
	ButtonRun
	ButtonPower
	ButtonCrouch
)

// Frame is one tick of input in the same fixed point the wire delta uses.
type Frame struct {
	JoyX    int16 `msgpack:"x"`
	JoyY    int16 `msgpack:"y"`
	Buttons uint8 `msgpack:"b"`
}

func (f Frame) has(b Button) bool {
	return f.Buttons&(1<<b) != 0
}

func (f *Frame) set(b Button, v bool) {
	if v {
		f.Buttons |= 1 << b
	}
}

// FrameOf quantizes in. Out of range axes are clamped.
func FrameOf(in movement.InputSample) Frame {
	x, _ := netsync.EncodeAxis(gamemath.Clamp(in.Joystick.X, -1, 1))
	y, _ := netsync.EncodeAxis(gamemath.Clamp(in.Joystick.Y, -1, 1))
	f := Frame{JoyX: x, JoyY: y}
	f.set(ButtonJump, in.Jump)
	f.set(ButtonRun, in.Run)
	f.set(ButtonPower, in.PowerAction)
	f.set(ButtonCrouch, in.Crouch)
	return f
}

// Input expands the frame back into a sample.
func (f Frame) Input() movement.InputSample {
	return movement.InputSample{
		Joystick:    gamemath.Vector{X: netsync.DecodeAxis(f.JoyX), Y: netsync.DecodeAxis(f.JoyY)},
		Jump:        f.has(ButtonJump),
		Run:         f.has(ButtonRun),
		PowerAction: f.has(ButtonPower),
		Crouch:      f.has(ButtonCrouch),
	}
}

// Recording is one avatar's input from the moment it joined a level.
type Recording struct {
	Level  string          `msgpack:"level"`
	Start  gamemath.Vector `msgpack:"start"`
	Step   float64         `msgpack:"dt"`
	Frames []Frame         `msgpack:"frames"`
}

// Duration returns the recorded time in seconds.
func (r *Recording) Duration() float64 {
	return float64(len(r.Frames)) * r.Step
}

// Reset puts a back where the recording started.
func (r *Recording) Reset(a *match.Avatar) {
	a.State = movement.NewState(r.Start, netconfig.Small)
	a.Input = movement.InputSample{}
}

// Recorder accumulates frames.
type Recorder struct {
	rec Recording
}

// NewRecorder starts a recording of an avatar standing at start.
func NewRecorder(level string, start gamemath.Vector, step float64) *Recorder {
	return &Recorder{rec: Recording{Level: level, Start: start, Step: step}}
}

// Record appends in and returns the quantized sample playback will produce.
// Stepping the live avatar with the returned sample keeps playback exact.
func (r *Recorder) Record(in movement.InputSample) movement.InputSample {
	f := FrameOf(in)
	r.rec.Frames = append(r.rec.Frames, f)
	return f.Input()
}

// Len returns the number of recorded frames.
func (r *Recorder) Len() int {
	return len(r.rec.Frames)
}

// Recording returns a copy of what was recorded so far.
func (r *Recorder) Recording() *Recording {
	out := r.rec
	out.Frames = append([]Frame(nil), r.rec.Frames...)
	return &out
}

// Player plays a recording back as an input provider. After the last frame
// it returns idle input.
type Player struct {
	rec  *Recording
	next int
}

func NewPlayer(rec *Recording) *Player {
	return &Player{rec: rec}
}

func (p *Player) Sample() movement.InputSample {
	if p.next >= len(p.rec.Frames) {
		return movement.InputSample{}
	}
	in := p.rec.Frames[p.next].Input()
	p.next++
	return in
}

// Done reports whether every frame has been played.
func (p *Player) Done() bool {
	return p.next >= len(p.rec.Frames)
}

// Run resets avatar id to the recording's start and plays rec in m, one
// match step per frame. It returns everything the match produced.
func Run(m *match.Match, id uint32, rec *Recording) ([]match.TickResult, error) {
	if len(rec.Frames) == 0 {
		return nil, ErrEmpty
	}
	a, ok := m.Avatar(id)
	if !ok {
		return nil, fmt.Errorf("replay avatar %d: %w", id, match.ErrUnknownAvatar)
	}
	rec.Reset(a)
	p := NewPlayer(rec)
	out := make([]match.TickResult, 0, len(rec.Frames))
	for !p.Done() {
		m.SetInput(id, p.Sample())
		out = append(out, m.Step(rec.Step))
	}
	return out, nil
}
