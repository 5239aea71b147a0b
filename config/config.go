package config

// All tuning values are in world units (tiles) and seconds. +Y is up.

// MovementConfig contains horizontal movement and jump tuning.
type MovementConfig struct {
	// Speed stages: index 0 is the starting crawl, WalkStage/RunStage/StarStage
	// pick the caps for walking, running and star-speed.
	SpeedStageMax []float64
	SpeedStageAcc []float64
	IceStageAcc   []float64
	MegaStageAcc  []float64
	WalkStage     int
	RunStage      int
	StarStage     int

	// Spinner blocks use their own slower table
	SpinnerStageMax []float64
	SpinnerStageAcc []float64

	ButtonReleaseDec    float64
	IceButtonReleaseDec float64

	// Skidding: reversing direction above SkidThreshold
	SkidThreshold float64
	SkidDec       float64
	SkidIceDec    float64
	SkidStarDec   float64

	// Turnaround: reversing direction below SkidThreshold
	TurnaroundThreshold float64
	TurnaroundAcc       float64
	WalkTurnaroundAcc   []float64

	// Slopes
	SlopeSlideAngle float64 // Degrees beyond which crouching becomes sliding
	SlideMaxSpeed   float64
	Slide45Acc      float64
	Slide22Acc      float64
	SlideMinSpeed   float64 // Slide ends on flat ground below this speed

	// Jumping
	JumpVelocity     float64
	RunJumpBonus     float64 // Added at full run speed, scaled by speed ratio
	DoubleJumpBoost  float64
	TripleJumpBoost  float64
	MegaJumpVelocity float64
	MiniJumpFactor   float64
	SpinnerLaunch    float64
	StompBounce      float64

	// Wall jumping
	WallJumpHSpeed float64
	WallJumpVSpeed float64

	// Groundpound / drill
	GroundpoundHop      float64
	GroundpoundVelocity float64

	// Propeller / flight
	PropellerLaunch       float64
	PropellerThrustDecay  float64 // Exponential decay rate of the thrust curve
	PropellerFallSpeed    float64
	PropellerSpinFall     float64
	PropellerDrillSpeed   float64
	FlyingTerminal        float64
	FlyingHorizontalSpeed float64

	// Shell
	ShellSpeed float64

	// Knockback
	KnockbackSpeed     float64
	WeakKnockbackSpeed float64
	KnockbackHop       float64

	// Pipe / door transit
	PipeSpeed float64
}

// PhysicsConfig contains gravity and terminal velocity tuning.
type PhysicsConfig struct {
	Gravity            float64 // Negative: pulls toward -Y
	NormalScale        float64
	SlowRiseScale      float64 // Ascending while jump is held
	FlightScale        float64 // Flying and propeller
	MiniScale          float64
	MegaFallMultiplier float64
	SlowRiseMinSpeed   float64 // Slow rise only applies above this upward speed

	TerminalVelocity float64
	WallSlideSpeed   float64

	SlopeMinAngle    float64 // Degrees below which slopes are treated as flat
	SlopeSnapOffset  float64
	GroundReach      float64 // Distance below the feet considered "standing"
	MaxSweepFraction float64 // Max fraction of a tile moved per collision sub-step
	MaxSweepSteps    int     // Sub-steps beyond this are dropped, shortening the move
}

// TimersConfig contains the durations used to arm TimerBank entries.
type TimersConfig struct {
	JumpBuffer          float64
	Coyote              float64
	ComboWindow         float64 // Double/triple jump re-trigger window after landing
	WallSlideWindow     float64
	WallJumpBlock       float64
	GroundpoundStart    float64 // Falling pause before the fixed-speed descent
	Knockback           float64
	WeakKnockback       float64
	HitInvincibility    float64
	StarInvincibility   float64
	Pipe                float64
	GiantStart          float64
	Giant               float64
	GiantEnd            float64
	Propeller           float64
	PropellerSpin       float64
	PropellerDrillDelay float64
	Fireball            float64
	Emote               float64
	Freeze              float64
	FreezeBreak         float64 // Break-out animation after the freeze ends
	WedgeNudge          float64
	Respawn             float64 // Delay between a death and the respawn
}

// HitboxConfig contains avatar dimensions per power-up.
type HitboxConfig struct {
	Width         float64
	SmallHeight   float64
	LargeHeight   float64
	CrouchFactor  float64
	MiniScale     float64
	MegaScale     float64
	StuckMaxScan  float64 // Radius beyond which the stuck scan gives up
	StuckScanStep float64
	WedgeNudge    float64 // Rightward nudge applied when wedged
}

// CollisionConfig contains the avatar-vs-avatar rule tuning.
type CollisionConfig struct {
	StompDot            float64 // Minimum dot(up) for a from-above contact
	BumpSpeedThreshold  float64
	StarsNormal         int
	StarsHard           int
	StarsMini           int
	MutualBounceSpeed   float64
	InvincibleOnPowerup float64
}

// NetConfig contains synchronisation tuning.
type NetConfig struct {
	TickRate         int
	FixedDeltaTime   float64
	ResendInterval   float64 // Seconds between forced resends of an unchanged delta
	JoystickEpsilon  float64
	MaxResimTicks    int
	JoystickScale    float64 // Fixed-point scale of the joystick encoding
	MaxSnapshotSpeed float64 // Per-axis speed cap on received snapshots (tiles/s)
	SnapshotMargin   float64 // Tiles a received position may sit outside the level
}

// Global configuration instances
var Movement MovementConfig
var Physics PhysicsConfig
var Timers TimersConfig
var Hitbox HitboxConfig
var Collision CollisionConfig
var Net NetConfig

// Direction constants for avatar facing
const (
	DirectionLeft  = -1.0
	DirectionRight = 1.0
)

func init() {
	Movement = MovementConfig{
		SpeedStageMax: []float64{1.875, 5.625, 8.4375, 11.25, 16.875},
		SpeedStageAcc: []float64{15.82, 7.91, 7.03, 5.27, 168.75},
		IceStageAcc:   []float64{4.22, 2.64, 2.34, 1.76, 56.25},
		MegaStageAcc:  []float64{56.25, 9.67, 9.67, 9.67, 9.67},
		WalkStage:     1,
		RunStage:      3,
		StarStage:     4,

		SpinnerStageMax: []float64{2.24, 5.625},
		SpinnerStageAcc: []float64{15.82, 7.91},

		ButtonReleaseDec:    7.91,
		IceButtonReleaseDec: 0.88,

		SkidThreshold: 9.375,
		SkidDec:       21.09,
		SkidIceDec:    7.91,
		SkidStarDec:   168.75,

		TurnaroundThreshold: 5.625,
		TurnaroundAcc:       56.25,
		WalkTurnaroundAcc:   []float64{7.91, 17.58, 18.75, 26.37},

		SlopeSlideAngle: 12.5,
		SlideMaxSpeed:   15.0,
		Slide45Acc:      26.37,
		Slide22Acc:      10.55,
		SlideMinSpeed:   0.5,

		JumpVelocity:     12.5,
		RunJumpBonus:     1.5,
		DoubleJumpBoost:  1.5,
		TripleJumpBoost:  3.0,
		MegaJumpVelocity: 16.0,
		MiniJumpFactor:   0.95,
		SpinnerLaunch:    24.0,
		StompBounce:      12.0,

		WallJumpHSpeed: 8.4375,
		WallJumpVSpeed: 12.89,

		GroundpoundHop:      3.0,
		GroundpoundVelocity: 20.0,

		PropellerLaunch:       12.0,
		PropellerThrustDecay:  4.0,
		PropellerFallSpeed:    4.0,
		PropellerSpinFall:     3.0,
		PropellerDrillSpeed:   14.0,
		FlyingTerminal:        2.5,
		FlyingHorizontalSpeed: 8.4375,

		ShellSpeed: 11.25,

		KnockbackSpeed:     6.0,
		WeakKnockbackSpeed: 3.0,
		KnockbackHop:       4.0,

		PipeSpeed: 2.0,
	}

	Physics = PhysicsConfig{
		Gravity:            -30.0,
		NormalScale:        2.0,
		SlowRiseScale:      1.2,
		FlightScale:        0.4,
		MiniScale:          0.8,
		MegaFallMultiplier: 3.0,
		SlowRiseMinSpeed:   2.0,

		TerminalVelocity: 14.0,
		WallSlideSpeed:   4.25,

		SlopeMinAngle:    5.0,
		SlopeSnapOffset:  0.01,
		GroundReach:      0.05,
		MaxSweepFraction: 0.45,
		MaxSweepSteps:    64,
	}

	Timers = TimersConfig{
		JumpBuffer:          0.15,
		Coyote:              0.07,
		ComboWindow:         0.1,
		WallSlideWindow:     0.2,
		WallJumpBlock:       16.0 / 60.0,
		GroundpoundStart:    0.25,
		Knockback:           0.5,
		WeakKnockback:       0.3,
		HitInvincibility:    2.0,
		StarInvincibility:   10.0,
		Pipe:                1.0,
		GiantStart:          1.5,
		Giant:               15.0,
		GiantEnd:            0.75,
		Propeller:           1.0,
		PropellerSpin:       0.75,
		PropellerDrillDelay: 0.1,
		Fireball:            0.4,
		Emote:               1.0,
		Freeze:              2.0,
		FreezeBreak:         0.3,
		WedgeNudge:          0.25,
		Respawn:             2.0,
	}

	Hitbox = HitboxConfig{
		Width:         0.75,
		SmallHeight:   0.84,
		LargeHeight:   1.64,
		CrouchFactor:  0.5,
		MiniScale:     0.5,
		MegaScale:     3.0,
		StuckMaxScan:  2.0,
		StuckScanStep: 0.125,
		WedgeNudge:    0.05,
	}

	Collision = CollisionConfig{
		StompDot:            0.7,
		BumpSpeedThreshold:  8.4375,
		StarsNormal:         1,
		StarsHard:           3,
		StarsMini:           2,
		MutualBounceSpeed:   6.0,
		InvincibleOnPowerup: 1.0,
	}

	Net = NetConfig{
		TickRate:         60,
		FixedDeltaTime:   1.0 / 60.0,
		ResendInterval:   0.1,
		JoystickEpsilon:  0.05,
		MaxResimTicks:    60,
		JoystickScale:    32767,
		MaxSnapshotSpeed: 64,
		SnapshotMargin:   16,
	}
}
