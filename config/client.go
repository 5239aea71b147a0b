package config

import "image/color"

// ClientConfig contains the debug client's window and drawing settings.
type ClientConfig struct {
	Width     int
	Height    int
	TileScale float64 // Pixels per world unit
	AppName   string  // Directory name for saved replays
	PingEvery float64 // Seconds between clock pings
	EventLog  int     // Movement events kept on screen
}

// CameraConfig contains camera behavior configuration
type CameraConfig struct {
	FollowSmoothing         float64 // How fast camera follows player (0.0-1.0)
	LookAheadDistanceX      float64 // Max horizontal look-ahead offset in pixels
	LookAheadSmoothing      float64 // How fast look-ahead offset changes (0.0-1.0)
	LookAheadSpeedThreshold float64 // Minimum speed in units/s to update look-ahead
	ShakeIntensity          float64 // Pixels, on a groundpound landing
	ShakeFrames             int
}

var Client ClientConfig
var Camera CameraConfig

// Shared RGBA color constants
var (
	White       = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Yellow      = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	Orange      = color.RGBA{R: 255, G: 140, B: 0, A: 255}
	Red         = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	BrightGreen = color.RGBA{R: 0, G: 255, B: 60, A: 255}
	LightGreen  = color.RGBA{R: 100, G: 255, B: 100, A: 255}
	Blue        = color.RGBA{R: 0, G: 100, B: 255, A: 255}
	LightBlue   = color.RGBA{R: 100, G: 180, B: 255, A: 255}
	Purple      = color.RGBA{R: 128, G: 0, B: 255, A: 255}
	Magenta     = color.RGBA{R: 255, G: 0, B: 255, A: 255}
	Grey        = color.RGBA{R: 100, G: 100, B: 100, A: 255}
	Brown       = color.RGBA{R: 150, G: 90, B: 40, A: 255}
	Cyan        = color.RGBA{R: 0, G: 255, B: 255, A: 255}
	Ghost       = color.RGBA{R: 200, G: 200, B: 255, A: 120}
)

func init() {
	Client = ClientConfig{
		Width:     960,
		Height:    540,
		TileScale: 24,
		AppName:   "jumpsync",
		PingEvery: 1.0,
		EventLog:  8,
	}

	Camera = CameraConfig{
		FollowSmoothing:         0.1,
		LookAheadDistanceX:      60,
		LookAheadSmoothing:      0.05,
		LookAheadSpeedThreshold: 0.5,
		ShakeIntensity:          4,
		ShakeFrames:             12,
	}
}
