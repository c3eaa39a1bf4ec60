package pinball

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig is returned (wrapped) by Config.Validate.
var ErrInvalidConfig = errors.New("invalid pinball config")

// Config holds every layout and physics tunable of a table.
// A Config is a plain value: the simulation copies it at construction and
// never mutates it.
type Config struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`

	// Floor and ramp geometry
	FloorY         float64 `yaml:"floor_y"`
	RampTopY       float64 `yaml:"ramp_top_y"`
	DrainGap       float64 `yaml:"drain_gap"`
	PlatformLength float64 `yaml:"platform_length"`
	PlatformInset  float64 `yaml:"platform_inset"` // Gap between a platform's inner end and the drain gap edge

	// Timing
	TickSeconds float64 `yaml:"tick_seconds"`

	// Ball
	BallRadius       float64 `yaml:"ball_radius"`
	SpawnX           float64 `yaml:"spawn_x"`
	SpawnY           float64 `yaml:"spawn_y"`
	Gravity          float64 `yaml:"gravity"`             // Units per tick²
	Damping          float64 `yaml:"damping"`             // Velocity multiplier per tick
	MaxSpeed         float64 `yaml:"max_speed"`           // Ambient ceiling, units per tick
	MaxSpeedAfterHit float64 `yaml:"max_speed_after_hit"` // Post-impact ceiling

	// Restitution
	WallRestitution    float64 `yaml:"wall_restitution"`
	FlipperRestitution float64 `yaml:"flipper_restitution"`
	BumperRestitution  float64 `yaml:"bumper_restitution"`

	// Flippers
	FlipperLength      float64 `yaml:"flipper_length"`
	FlipperThickness   float64 `yaml:"flipper_thickness"`
	FlipperPivotInset  float64 `yaml:"flipper_pivot_inset"`  // Extra horizontal distance of the pivot beyond one length from centre
	FlipperPivotLift   float64 `yaml:"flipper_pivot_lift"`   // Pivot distance above the bottom edge
	FlipperRestAngle   float64 `yaml:"flipper_rest_angle"`   // Left flipper; right is mirrored
	FlipperActiveAngle float64 `yaml:"flipper_active_angle"` // Left flipper; right is mirrored
	FlipperMaxRate     float64 `yaml:"flipper_max_rate"`     // Radians per second

	// Bumpers
	BumperRadius   float64  `yaml:"bumper_radius"`
	BumperPadX     float64  `yaml:"bumper_pad_x"`
	BumperPadY     float64  `yaml:"bumper_pad_y"`
	BumperSpacingX float64  `yaml:"bumper_spacing_x"`
	BumperSpacingY float64  `yaml:"bumper_spacing_y"`
	BumperMask     []string `yaml:"bumper_mask"` // One string per row, '1' marks an occupied cell
	Skills         []string `yaml:"skills"`

	// Drain
	DrainMargin float64 `yaml:"drain_margin"`

	// Nudge
	NudgeImpulse       float64 `yaml:"nudge_impulse"`
	NudgeCooldownTicks int     `yaml:"nudge_cooldown_ticks"`
}

// DefaultSkills is the ordered label cycle assigned to bumpers.
var DefaultSkills = []string{
	"React",
	"Node.js",
	"Express",
	"MongoDB",
	"TypeScript",
	"JavaScript",
	"Tailwind",
	"Docker",
	"GitHub",
}

// DefaultBumperMask is the 4x10 occupancy mask of the stock table.
var DefaultBumperMask = []string{
	"1100000011",
	"1110000111",
	"0111001110",
	"0011001100",
}

// DefaultConfig returns the stock table.
func DefaultConfig() Config {
	const (
		width    = 1000.0
		height   = 700.0
		rampTopY = height - 260
	)
	return Config{
		Width:          width,
		Height:         height,
		FloorY:         height - 43,
		RampTopY:       rampTopY,
		DrainGap:       140,
		PlatformLength: 200,
		PlatformInset:  50,

		TickSeconds: 1.0 / 60.0,

		BallRadius:       10,
		SpawnX:           width/2 + 100,
		SpawnY:           40,
		Gravity:          0.3,
		Damping:          0.995,
		MaxSpeed:         16,
		MaxSpeedAfterHit: 30,

		WallRestitution:    1.2,
		FlipperRestitution: 2.0,
		BumperRestitution:  1.0,

		FlipperLength:      120,
		FlipperThickness:   16,
		FlipperPivotInset:  60,
		FlipperPivotLift:   35,
		FlipperRestAngle:   0.2,
		FlipperActiveAngle: -0.6,
		FlipperMaxRate:     8,

		BumperRadius:   18,
		BumperPadX:     40,
		BumperPadY:     rampTopY - 100,
		BumperSpacingX: 100,
		BumperSpacingY: 90,
		BumperMask:     append([]string(nil), DefaultBumperMask...),
		Skills:         append([]string(nil), DefaultSkills...),

		DrainMargin: 13.5,

		NudgeImpulse:       3,
		NudgeCooldownTicks: 45,
	}
}

// FlipperStep is the maximum angle change per tick.
func (c Config) FlipperStep() float64 {
	return c.FlipperMaxRate * c.TickSeconds
}

// Spawn returns the ball launch point.
func (c Config) Spawn() Vec2 {
	return Vec2{X: c.SpawnX, Y: c.SpawnY}
}

// Validate reports the first problem found in c.
func (c Config) Validate() error {
	positive := []struct {
		name  string
		value float64
	}{
		{"width", c.Width},
		{"height", c.Height},
		{"tick_seconds", c.TickSeconds},
		{"ball_radius", c.BallRadius},
		{"max_speed", c.MaxSpeed},
		{"max_speed_after_hit", c.MaxSpeedAfterHit},
		{"flipper_length", c.FlipperLength},
		{"flipper_max_rate", c.FlipperMaxRate},
		{"bumper_radius", c.BumperRadius},
	}
	for _, p := range positive {
		if !(p.value > 0) || math.IsInf(p.value, 0) {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidConfig, p.name, p.value)
		}
	}

	if !(c.Damping > 0 && c.Damping <= 1) {
		return fmt.Errorf("%w: damping must be in (0, 1], got %v", ErrInvalidConfig, c.Damping)
	}
	if c.MaxSpeedAfterHit < c.MaxSpeed {
		return fmt.Errorf("%w: max_speed_after_hit (%v) below max_speed (%v)", ErrInvalidConfig, c.MaxSpeedAfterHit, c.MaxSpeed)
	}
	if c.FlipperThickness < 0 || c.DrainMargin < 0 || c.NudgeImpulse < 0 || c.NudgeCooldownTicks < 0 {
		return fmt.Errorf("%w: negative flipper_thickness, drain_margin or nudge setting", ErrInvalidConfig)
	}
	if len(c.BumperMask) == 0 {
		return fmt.Errorf("%w: bumper_mask is empty", ErrInvalidConfig)
	}
	for i, row := range c.BumperMask {
		for _, ch := range row {
			if ch != '0' && ch != '1' {
				return fmt.Errorf("%w: bumper_mask row %d has %q, want only 0 and 1", ErrInvalidConfig, i, ch)
			}
		}
	}
	if len(c.Skills) == 0 {
		return fmt.Errorf("%w: skills is empty", ErrInvalidConfig)
	}
	return nil
}

// clone returns a copy of c that shares no slices with it.
func (c Config) clone() Config {
	c.BumperMask = append([]string(nil), c.BumperMask...)
	c.Skills = append([]string(nil), c.Skills...)
	return c
}
