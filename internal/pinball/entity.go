// Package pinball implements the table simulation: geometry, ball
// integration, collision resolution, flippers, bumpers and the drain
// lifecycle. It has no I/O; hosts drive it one Tick per frame and draw
// the resulting Snapshot.
package pinball

import (
	"time"

	"github.com/tomz197/pinball/internal/physics"
)

// Vec2 is the playfield vector type.
type Vec2 = physics.Vec2

// Ball is the single ball on the table.
type Ball struct {
	Pos    Vec2    `json:"pos"`
	Vel    Vec2    `json:"vel"`
	Radius float64 `json:"r"`
}

// Speed returns the magnitude of the ball velocity.
func (b Ball) Speed() float64 {
	return b.Vel.Len()
}

// Segment is a static wall between A and B.
type Segment struct {
	A Vec2 `json:"a"`
	B Vec2 `json:"b"`
}

// Side identifies a flipper.
type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
)

// Flipper is a kinematic rotating segment anchored at Pivot.
type Flipper struct {
	Side        Side    `json:"side"`
	Pivot       Vec2    `json:"pivot"`
	Length      float64 `json:"length"`
	Thickness   float64 `json:"thickness"`
	Angle       float64 `json:"angle"`
	AngleRest   float64 `json:"angleRest"`
	AngleActive float64 `json:"angleActive"`

	lastStep float64 // Angle change applied by the last Actuate call
}

// Tip returns the free end of the flipper at its current angle.
func (f Flipper) Tip() Vec2 {
	return physics.FromAngle(f.Pivot, f.Angle, f.Length)
}

// Bumper is a one-shot round target labelled with a skill.
type Bumper struct {
	Pos           Vec2      `json:"pos"`
	Radius        float64   `json:"r"`
	Skill         string    `json:"skill"`
	Active        bool      `json:"active"`
	Lit           bool      `json:"lit"`
	LitUntil      time.Time `json:"litUntil"`
	IconKey       string    `json:"iconKey,omitempty"`
	DeactivatedAt time.Time `json:"deactivatedAt"`
}
