package level

import (
	"math"

	"github.com/solarlune/resolv"

	"github.com/automoto/jumpsync/config"
	"github.com/automoto/jumpsync/shared/gamemath"
	"github.com/automoto/jumpsync/shared/movement"
	"github.com/automoto/jumpsync/shared/tiles"
)

// Space-unit tolerances.
const (
	groundReach = 1.0 // Distance below the feet that still counts as standing
	rampSnap    = 4.0 // Downhill snap onto ramps
	stepHeight  = 8.0 // Obstacles lower than this are stepped onto, not hit
	sideReach   = 1.0 // Wall adjacency distance
	sameEdge    = 1e-6
)

// place moves the cursor onto box, converting to space units.
func (l *Level) place(box gamemath.Rect) *resolv.Object {
	p := l.cursor
	p.X = box.X * TileSize
	p.Y = box.Y * TileSize
	p.W = box.W * TileSize
	p.H = box.H * TileSize
	return p
}

func (l *Level) cursorRect() gamemath.Rect {
	p := l.cursor
	return gamemath.Rect{X: p.X / TileSize, Y: p.Y / TileSize, W: p.W / TileSize, H: p.H / TileSize}
}

func coordOf(o *resolv.Object) tiles.Coord {
	if c, ok := o.Data.(tiles.Coord); ok {
		return c
	}
	return tiles.Coord{X: int(math.Floor(o.X / TileSize)), Y: int(math.Floor(o.Y / TileSize))}
}

// Move implements movement.Collider. The sweep is split into sub-steps no
// longer than config.Physics.MaxSweepFraction of a tile so fast avatars
// cannot tunnel. Horizontal movement resolves first, then vertical, with
// ramps taking priority over flat ground.
func (l *Level) Move(box gamemath.Rect, delta gamemath.Vector) movement.Contact {
	var c movement.Contact
	c.Box = box

	longest := math.Max(math.Abs(delta.X), math.Abs(delta.Y))
	if math.IsNaN(longest) || math.IsInf(longest, 0) {
		return c
	}
	steps := int(math.Ceil(longest / config.Physics.MaxSweepFraction))
	if steps < 1 {
		steps = 1
	}
	step := delta.Scale(1 / float64(steps))
	if limit := config.Physics.MaxSweepSteps; limit > 0 && steps > limit {
		steps = limit
	}
	for i := 0; i < steps; i++ {
		l.moveOnce(&c, step)
		if c.HitLeft || c.HitRight {
			step.X = 0
		}
		if (c.HitRoof && step.Y > 0) || (c.OnGround && step.Y < 0) {
			step.Y = 0
		}
	}
	return c
}

func (l *Level) moveOnce(c *movement.Contact, d gamemath.Vector) {
	p := l.place(c.Box)
	grounded := d.Y <= 0

	if dx := d.X * TileSize; dx != 0 {
		raise := 0.0
		if grounded {
			raise = math.Min(stepHeight, p.H/2)
		}
		p.Y += raise
		p.H -= raise
		if check := p.Check(dx, 0, tagSolid); check != nil {
			if objs := check.ObjectsByTags(tagSolid); len(objs) > 0 {
				best, hits := nearest(objs, func(o *resolv.Object) float64 {
					return check.ContactWithObject(o).X()
				}, dx < 0)
				dx = best
				if d.X > 0 {
					c.HitRight = true
					c.Right = appendCoords(c.Right, hits)
				} else {
					c.HitLeft = true
					c.Left = appendCoords(c.Left, hits)
				}
			}
		}
		p.Y -= raise
		p.H += raise
		p.X += dx
	}

	c.OnGround = false
	c.FloorAngle = 0
	dy := d.Y * TileSize
	if grounded {
		if y, angle, coord, ok := l.rampSurface(p, dy); ok {
			p.Y = y
			c.OnGround = true
			c.FloorAngle = angle
			c.Floor = []tiles.Coord{coord}
		} else if check := p.Check(0, dy-groundReach, tagSolid); check != nil && len(check.ObjectsByTags(tagSolid)) > 0 {
			objs := check.ObjectsByTags(tagSolid)
			best, hits := nearest(objs, func(o *resolv.Object) float64 {
				return check.ContactWithObject(o).Y()
			}, true)
			p.Y += best
			c.OnGround = true
			c.Floor = appendCoords(nil, hits)
		} else {
			p.Y += dy
		}
	} else {
		var objs []*resolv.Object
		var checks []*resolv.Collision
		for _, tag := range []string{tagSolid, tagRamp} {
			if check := p.Check(0, dy, tag); check != nil {
				for _, o := range check.ObjectsByTags(tag) {
					objs = append(objs, o)
					checks = append(checks, check)
				}
			}
		}
		if len(objs) > 0 {
			contact := make(map[*resolv.Object]float64, len(objs))
			for i, o := range objs {
				contact[o] = checks[i].ContactWithObject(o).Y()
			}
			best, hits := nearest(objs, func(o *resolv.Object) float64 { return contact[o] }, false)
			p.Y += best
			c.HitRoof = true
			c.Roof = appendCoords(c.Roof, hits)
		} else {
			p.Y += dy
		}
	}

	l.touchWalls(c, p)
	c.Box = l.cursorRect()
}

// rampSurface finds the highest ramp surface the feet reach this step: the
// new feet height must be within rampSnap above the surface or below it, and
// the old feet no more than a step below it.
func (l *Level) rampSurface(p *resolv.Object, dy float64) (y, angle float64, coord tiles.Coord, ok bool) {
	check := p.Check(0, dy-rampSnap, tagRamp)
	if check == nil {
		return 0, 0, tiles.Coord{}, false
	}
	newY := p.Y + dy
	best := math.Inf(-1)
	for _, ramp := range check.ObjectsByTags(tagRamp) {
		surf := gamemath.GetSlopeSurfaceY(p, ramp)
		if newY > surf+rampSnap || p.Y < surf-stepHeight {
			continue
		}
		if surf > best {
			best = surf
			angle = gamemath.SlopeAngle(gamemath.RampSlopeType(ramp))
			coord = coordOf(ramp)
			ok = true
		}
	}
	if !ok {
		return 0, 0, tiles.Coord{}, false
	}
	return gamemath.SnapToSlopeY(best, 0), angle, coord, true
}

// touchWalls flags walls directly beside the hitbox even when it is not
// moving into them, so wall slides survive releasing the stick.
func (l *Level) touchWalls(c *movement.Contact, p *resolv.Object) {
	raise := math.Min(stepHeight, p.H/2)
	p.Y += raise
	p.H -= raise
	defer func() {
		p.Y -= raise
		p.H += raise
	}()

	if !c.HitLeft {
		if check := p.Check(-sideReach, 0, tagSolid); check != nil {
			if objs := check.ObjectsByTags(tagSolid); len(objs) > 0 {
				c.HitLeft = true
				c.Left = appendCoords(c.Left, objs)
			}
		}
	}
	if !c.HitRight {
		if check := p.Check(sideReach, 0, tagSolid); check != nil {
			if objs := check.ObjectsByTags(tagSolid); len(objs) > 0 {
				c.HitRight = true
				c.Right = appendCoords(c.Right, objs)
			}
		}
	}
}

// nearest returns the contact distance closest to the mover and every object
// at that distance. For movement toward -axis the largest value is nearest.
func nearest(objs []*resolv.Object, contact func(*resolv.Object) float64, largest bool) (float64, []*resolv.Object) {
	best := contact(objs[0])
	for _, o := range objs[1:] {
		v := contact(o)
		if (largest && v > best) || (!largest && v < best) {
			best = v
		}
	}
	var hits []*resolv.Object
	for _, o := range objs {
		if math.Abs(contact(o)-best) <= sameEdge {
			hits = append(hits, o)
		}
	}
	return best, hits
}

func appendCoords(dst []tiles.Coord, objs []*resolv.Object) []tiles.Coord {
	for _, o := range objs {
		c := coordOf(o)
		dup := false
		for _, have := range dst {
			if have == c {
				dup = true
				break
			}
		}
		if !dup {
			dst = append(dst, c)
		}
	}
	return dst
}

// Overlaps implements movement.Collider.
func (l *Level) Overlaps(box gamemath.Rect) bool {
	p := l.place(box)
	check := p.Check(0, 0, tagSolid)
	return check != nil && len(check.ObjectsByTags(tagSolid)) > 0
}

// SurfaceAngle implements movement.Collider.
func (l *Level) SurfaceAngle(box gamemath.Rect, down bool, dist float64) (float64, bool) {
	p := l.place(box)
	d := dist * TileSize
	if down {
		d = -d
	}
	check := p.Check(0, d, tagRamp)
	if check == nil {
		return 0, false
	}
	ramps := check.ObjectsByTags(tagRamp)
	if len(ramps) == 0 {
		return 0, false
	}
	return gamemath.SlopeAngle(gamemath.RampSlopeType(ramps[0])), true
}
