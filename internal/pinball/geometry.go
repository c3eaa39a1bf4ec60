package pinball

import (
	"math"

	"github.com/tomz197/pinball/internal/physics"
)

// BuildWalls returns the static boundary: a closed frame with the drain gap
// at the bottom centre, bridged by two ramps and two flat platforms.
func BuildWalls(cfg Config) []Segment {
	w, h := cfg.Width, cfg.Height
	cx := w / 2

	leftPlatStart := cx - cfg.DrainGap/2 - cfg.PlatformLength
	leftPlatEnd := cx - cfg.DrainGap/2 - cfg.PlatformInset
	rightPlatStart := cx + cfg.DrainGap/2 + cfg.PlatformInset
	rightPlatEnd := cx + cfg.DrainGap/2 + cfg.PlatformLength

	return []Segment{
		{A: Vec2{X: 0, Y: 0}, B: Vec2{X: w, Y: 0}},                                 // top
		{A: Vec2{X: 0, Y: 0}, B: Vec2{X: 0, Y: cfg.RampTopY}},                      // left side
		{A: Vec2{X: w, Y: 0}, B: Vec2{X: w, Y: cfg.RampTopY}},                      // right side
		{A: Vec2{X: 0, Y: cfg.RampTopY}, B: Vec2{X: leftPlatStart, Y: cfg.FloorY}}, // left ramp
		{A: Vec2{X: w, Y: cfg.RampTopY}, B: Vec2{X: rightPlatEnd, Y: cfg.FloorY}},  // right ramp
		{A: Vec2{X: leftPlatStart, Y: cfg.FloorY}, B: Vec2{X: leftPlatEnd, Y: cfg.FloorY}},
		{A: Vec2{X: rightPlatStart, Y: cfg.FloorY}, B: Vec2{X: rightPlatEnd, Y: cfg.FloorY}},
		{A: Vec2{X: leftPlatStart, Y: cfg.FloorY}, B: Vec2{X: leftPlatStart, Y: h}},
		{A: Vec2{X: rightPlatEnd, Y: cfg.FloorY}, B: Vec2{X: rightPlatEnd, Y: h}},
	}
}

// BuildFlippers returns the left and right flippers, mirrored about the
// vertical centre line, both at rest.
func BuildFlippers(cfg Config) [2]Flipper {
	cx := cfg.Width / 2
	y := cfg.Height - cfg.FlipperPivotLift
	offset := cfg.FlipperLength + cfg.FlipperPivotInset

	left := Flipper{
		Side:        SideLeft,
		Pivot:       Vec2{X: cx - offset, Y: y},
		Length:      cfg.FlipperLength,
		Thickness:   cfg.FlipperThickness,
		Angle:       cfg.FlipperRestAngle,
		AngleRest:   cfg.FlipperRestAngle,
		AngleActive: cfg.FlipperActiveAngle,
	}
	right := Flipper{
		Side:        SideRight,
		Pivot:       Vec2{X: cx + offset, Y: y},
		Length:      cfg.FlipperLength,
		Thickness:   cfg.FlipperThickness,
		Angle:       math.Pi - cfg.FlipperRestAngle,
		AngleRest:   math.Pi - cfg.FlipperRestAngle,
		AngleActive: math.Pi - cfg.FlipperActiveAngle,
	}
	return [2]Flipper{left, right}
}

// BuildBumpers lays bumpers out on the occupancy mask, row by row, left to
// right. Labels cycle through cfg.Skills, so they repeat once bumpers
// outnumber skills.
func BuildBumpers(cfg Config) []Bumper {
	var items []Bumper
	for r, row := range cfg.BumperMask {
		y := cfg.BumperPadY + float64(r)*cfg.BumperSpacingY
		for c, cell := range row {
			if cell != '1' {
				continue
			}
			items = append(items, Bumper{
				Pos:    Vec2{X: cfg.BumperPadX + float64(c)*cfg.BumperSpacingX, Y: y},
				Radius: cfg.BumperRadius,
				Skill:  cfg.Skills[len(items)%len(cfg.Skills)],
				Active: true,
			})
		}
	}
	return items
}

// BuildBumperIndex builds a static broad-phase grid over the bumper centres.
// The cell size covers the largest ball-bumper contact distance.
func BuildBumperIndex(cfg Config, bumpers []Bumper) *physics.SpatialGrid {
	reach := cfg.BallRadius + cfg.BumperRadius
	cell := math.Max(reach, math.Min(cfg.BumperSpacingX, cfg.BumperSpacingY))
	grid := physics.NewSpatialGrid(cfg.Width, cfg.Height, cell)
	for i, b := range bumpers {
		grid.Insert(b.Pos.X, b.Pos.Y, i)
	}
	return grid
}
