package match

import (
	"fmt"
	"time"

	"github.com/automoto/jumpsync/shared/netsync"
)

// Update is one received avatar delta.
type Update struct {
	ID       uint32
	Delta    netsync.NetworkDelta
	Snapshot netsync.Snapshot
	SentAt   time.Duration // Server clock when the owner sent it
}

// ApplyUpdate resets the avatar to the sender's snapshot, replays the lag
// with the real tile resolver and keeps stepping it with the delta's input
// afterwards. Tile reactions caused by the replay are attributed to the
// avatar and appended to res.
func (m *Match) ApplyUpdate(u Update, now time.Duration, res *TickResult) (netsync.Report, error) {
	a, ok := m.avatars[u.ID]
	if !ok {
		return netsync.Report{}, fmt.Errorf("avatar %d: %w", u.ID, ErrUnknownAvatar)
	}
	if a.State.Dead {
		return netsync.Report{}, nil
	}
	if m.resim == nil {
		m.resim = netsync.NewAuthoritative(m.ctx)
	}

	before := a.State
	rep, err := m.resim.ApplySnapshot(&a.State, u.Snapshot, u.Delta, u.SentAt, now, netsync.FixedStep())
	if err != nil {
		return rep, fmt.Errorf("avatar %d: %w", u.ID, err)
	}
	a.Input = u.Delta.Input()
	if a.State.Position.Sub(before.Position).Len() > float64(m.Level.Width)/2 {
		a.Warp++
	}

	m.collect(a, rep.Events, res)
	for _, r := range m.ctx.Tiles.DrainReactions() {
		res.Tiles = append(res.Tiles, TileChange{ID: u.ID, Reaction: r})
		m.collect(a, m.grant(a, r.Item), res)
	}
	return rep, nil
}
