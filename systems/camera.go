package systems

import (
	"math"

	"github.com/automoto/jumpsync/components"
	"github.com/automoto/jumpsync/config"
	"github.com/automoto/jumpsync/shared/gamemath"
	"github.com/automoto/jumpsync/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

func UpdateCamera(e *ecs.ECS) {
	cameraEntry, ok := components.Camera.First(e.World)
	if !ok {
		return
	}
	camera := components.Camera.Get(cameraEntry)

	// Process screen shake
	updateScreenShake(cameraEntry, camera)

	avatarEntry, ok := tags.LocalAvatar.First(e.World)
	if !ok {
		return
	}
	state := components.Avatar.Get(avatarEntry).State
	if state == nil {
		return
	}

	levelEntry, ok := components.Level.First(e.World)
	if !ok {
		return
	}
	lvl := components.Level.Get(levelEntry).Level
	if lvl == nil {
		return
	}

	// Only update look-ahead when the avatar is moving - freeze offset when idle
	if math.Abs(state.Velocity.X) > config.Camera.LookAheadSpeedThreshold {
		targetLookAhead := state.Facing() * config.Camera.LookAheadDistanceX
		camera.LookAheadX += (targetLookAhead - camera.LookAheadX) * config.Camera.LookAheadSmoothing
	}

	box := state.Hitbox()
	center := gamemath.Vector{X: box.X + box.W/2, Y: box.Y + box.H/2}
	targetX, targetY := worldToPixels(center, lvl.Height)
	targetX += camera.LookAheadX

	targetX, targetY = clampCamera(targetX, targetY, lvl.Width, lvl.Height)

	camera.Position.X += (targetX - camera.Position.X) * config.Camera.FollowSmoothing
	camera.Position.Y += (targetY - camera.Position.Y) * config.Camera.FollowSmoothing
}

// clampCamera keeps the view inside the level. Levels smaller than the
// screen are centered.
func clampCamera(x, y float64, levelW, levelH int) (float64, float64) {
	screenW := float64(config.Client.Width)
	screenH := float64(config.Client.Height)
	w := float64(levelW) * config.Client.TileScale
	h := float64(levelH) * config.Client.TileScale

	minX, maxX := screenW/2, w-screenW/2
	minY, maxY := screenH/2, h-screenH/2
	if minX > maxX {
		minX, maxX = w/2, w/2
	}
	if minY > maxY {
		minY, maxY = h/2, h/2
	}
	return math.Max(minX, math.Min(maxX, x)), math.Max(minY, math.Min(maxY, y))
}

// updateScreenShake applies screen shake offset to camera and decrements duration
func updateScreenShake(cameraEntry *donburi.Entry, camera *components.CameraData) {
	if !cameraEntry.HasComponent(components.ScreenShake) {
		return
	}

	shake := components.ScreenShake.Get(cameraEntry)
	shake.Elapsed++

	progress := float64(shake.Duration-shake.Elapsed) / float64(shake.Duration)
	if progress < 0 {
		progress = 0
	}
	currentIntensity := shake.Intensity * progress

	camera.Position.X += math.Sin(float64(shake.Elapsed)*1.1) * currentIntensity
	camera.Position.Y += math.Cos(float64(shake.Elapsed)*1.3) * currentIntensity

	if shake.Elapsed >= shake.Duration {
		cameraEntry.RemoveComponent(components.ScreenShake)
	}
}

// TriggerScreenShake starts a screen shake effect
func TriggerScreenShake(ecs *ecs.ECS, intensity float64, duration int) {
	cameraEntry, ok := components.Camera.First(ecs.World)
	if !ok {
		return
	}

	if cameraEntry.HasComponent(components.ScreenShake) {
		shake := components.ScreenShake.Get(cameraEntry)
		// Only override if new shake is stronger
		if intensity > shake.Intensity {
			shake.Intensity = intensity
			shake.Duration = duration
			shake.Elapsed = 0
		}
		return
	}
	cameraEntry.AddComponent(components.ScreenShake)
	components.ScreenShake.Set(cameraEntry, &components.ScreenShakeData{
		Intensity: intensity,
		Duration:  duration,
	})
}
