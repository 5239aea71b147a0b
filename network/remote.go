package network

import (
	"fmt"
	"slices"
	"time"

	"github.com/automoto/jumpsync/shared/gamemath"
	"github.com/automoto/jumpsync/shared/messages"
	"github.com/automoto/jumpsync/shared/movement"
	"github.com/automoto/jumpsync/shared/netconfig"
	"github.com/automoto/jumpsync/shared/netsync"
)

// Remote is another player's avatar as this client sees it.
type Remote struct {
	ID     uint32
	State  movement.State
	Input  movement.InputSample
	Report netsync.Report
}

// Remotes keeps the other players' avatars moving between their deltas. It
// steps them against a dry-run context so they never change the local tile
// grid; tile changes arrive from the server as TileEvents instead.
type Remotes struct {
	ctx     *movement.SimulationContext
	resim   *netsync.Resimulator
	avatars map[uint32]*Remote
	fixedDt time.Duration
}

// NewRemotes creates a remote avatar set simulated in a dry-run copy of ctx.
func NewRemotes(ctx *movement.SimulationContext) *Remotes {
	dry := ctx.DryRun()
	return &Remotes{
		ctx:     dry,
		resim:   netsync.NewResimulator(dry),
		avatars: make(map[uint32]*Remote),
		fixedDt: netsync.FixedStep(),
	}
}

// Spawn adds a remote avatar, or moves an existing one to pos.
func (r *Remotes) Spawn(id uint32, pos gamemath.Vector, p netconfig.PowerupState) *Remote {
	if a, ok := r.avatars[id]; ok {
		movement.Respawn(&a.State, pos)
		return a
	}
	a := &Remote{ID: id, State: movement.NewState(pos, p)}
	r.avatars[id] = a
	return a
}

// Remove drops a remote avatar.
func (r *Remotes) Remove(id uint32) {
	delete(r.avatars, id)
}

// Get looks up a remote avatar.
func (r *Remotes) Get(id uint32) (*Remote, bool) {
	a, ok := r.avatars[id]
	return a, ok
}

// All returns the remote avatars in ID order.
func (r *Remotes) All() []*Remote {
	ids := make([]uint32, 0, len(r.avatars))
	for id := range r.avatars {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	out := make([]*Remote, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.avatars[id])
	}
	return out
}

// Apply resimulates the avatar a RemoteDelta describes up to now, the
// client's estimate of the server clock. Unknown avatars are spawned at the
// delta's position.
func (r *Remotes) Apply(msg messages.RemoteDelta, now time.Duration) (netsync.Report, error) {
	var d netsync.NetworkDelta
	if err := d.UnmarshalBinary(msg.Delta); err != nil {
		return netsync.Report{}, fmt.Errorf("remote %d: %w", msg.NetworkID, err)
	}
	snap := netsync.Snapshot{
		Position: gamemath.Vector{X: msg.X, Y: msg.Y},
		Velocity: gamemath.Vector{X: msg.VX, Y: msg.VY},
		Powerup:  netconfig.PowerupState(msg.Powerup),
	}
	if !snap.Powerup.Valid() {
		return netsync.Report{}, fmt.Errorf("remote %d: %w: powerup %d", msg.NetworkID, netsync.ErrMalformedDelta, msg.Powerup)
	}

	id := uint32(msg.NetworkID)
	a, ok := r.avatars[id]
	if !ok {
		a = r.Spawn(id, snap.Position, snap.Powerup)
	}
	rep, err := r.resim.ApplySnapshot(&a.State, snap, d, time.Duration(msg.SentAt), now, r.fixedDt)
	if err != nil {
		return rep, fmt.Errorf("remote %d: %w", id, err)
	}
	a.Input = d.Input()
	a.Report = rep
	return rep, nil
}

// ApplyEvent mirrors a server-side death, which no delta carries: a dead
// avatar stops sending.
func (r *Remotes) ApplyEvent(msg messages.MovementEvent) {
	a, ok := r.avatars[uint32(msg.NetworkID)]
	if !ok {
		return
	}
	if movement.EventKind(msg.Kind) == movement.EventDeath {
		movement.Kill(&a.State)
		a.Input = movement.InputSample{}
	}
}

// Step advances every remote avatar by dt with its last known input.
func (r *Remotes) Step(dt float64) {
	for _, a := range r.All() {
		if a.State.Dead {
			continue
		}
		movement.Step(r.ctx, &a.State, a.Input, dt)
	}
}

// Len returns the number of remote avatars.
func (r *Remotes) Len() int {
	return len(r.avatars)
}
