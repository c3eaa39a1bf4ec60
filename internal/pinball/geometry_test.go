package pinball

import (
	"math"
	"reflect"
	"testing"
)

func TestBuildWalls(t *testing.T) {
	cfg := DefaultConfig()
	walls := BuildWalls(cfg)

	if len(walls) != 9 {
		t.Fatalf("len(walls) = %d, want 9", len(walls))
	}
	if top := walls[0]; top.A.Y != 0 || top.B.Y != 0 || top.B.X != cfg.Width {
		t.Errorf("top wall = %+v", top)
	}

	// The frame is mirror symmetric about the centre line.
	mirror := func(v Vec2) Vec2 { return Vec2{X: cfg.Width - v.X, Y: v.Y} }
	pairs := [][2]int{{1, 2}, {3, 4}, {7, 8}}
	for _, p := range pairs {
		l, r := walls[p[0]], walls[p[1]]
		if mirror(l.A) != r.A || mirror(l.B) != r.B {
			t.Errorf("walls %d and %d not mirrored: %+v %+v", p[0], p[1], l, r)
		}
	}

	// Nothing spans the drain gap.
	cx := cfg.Width / 2
	for i, w := range walls[1:] {
		lo, hi := math.Min(w.A.X, w.B.X), math.Max(w.A.X, w.B.X)
		if lo < cx && hi > cx {
			t.Errorf("wall %d crosses the centre line: %+v", i+1, w)
		}
	}
}

func TestBuildFlippersMirrored(t *testing.T) {
	cfg := DefaultConfig()
	fl := BuildFlippers(cfg)
	left, right := fl[0], fl[1]

	if left.Side != SideLeft || right.Side != SideRight {
		t.Fatalf("sides = %s, %s", left.Side, right.Side)
	}
	if left.Pivot.X+right.Pivot.X != cfg.Width || left.Pivot.Y != right.Pivot.Y {
		t.Errorf("pivots not mirrored: %v %v", left.Pivot, right.Pivot)
	}
	if math.Abs(right.AngleRest-(math.Pi-left.AngleRest)) > eps ||
		math.Abs(right.AngleActive-(math.Pi-left.AngleActive)) > eps {
		t.Errorf("angles not mirrored: left %v/%v right %v/%v",
			left.AngleRest, left.AngleActive, right.AngleRest, right.AngleActive)
	}
	if left.Angle != left.AngleRest || right.Angle != right.AngleRest {
		t.Error("flippers not at rest")
	}
	if tip := left.Tip(); tip.X <= left.Pivot.X {
		t.Errorf("left flipper points outward: tip %v pivot %v", tip, left.Pivot)
	}
}

func TestBuildBumpers(t *testing.T) {
	cfg := DefaultConfig()
	bumpers := BuildBumpers(cfg)

	if len(bumpers) != 20 {
		t.Fatalf("len(bumpers) = %d, want 20", len(bumpers))
	}

	tests := []struct {
		index int
		pos   Vec2
		skill string
	}{
		{0, Vec2{X: 40, Y: 340}, "React"},
		{1, Vec2{X: 140, Y: 340}, "Node.js"},
		{4, Vec2{X: 40, Y: 430}, "TypeScript"},
		{9, Vec2{X: 940, Y: 430}, "React"},
		{19, Vec2{X: 740, Y: 610}, "Node.js"},
	}
	for _, tt := range tests {
		b := bumpers[tt.index]
		if b.Pos != tt.pos || b.Skill != tt.skill {
			t.Errorf("bumper %d = %v %q, want %v %q", tt.index, b.Pos, b.Skill, tt.pos, tt.skill)
		}
	}

	for i, b := range bumpers {
		if !b.Active || b.Lit || b.IconKey != "" || b.Radius != cfg.BumperRadius {
			t.Errorf("bumper %d not fresh: %+v", i, b)
		}
	}

	if again := BuildBumpers(cfg); !reflect.DeepEqual(bumpers, again) {
		t.Error("BuildBumpers is not deterministic")
	}
}

func TestBumperIndexFindsNeighbours(t *testing.T) {
	cfg := DefaultConfig()
	bumpers := BuildBumpers(cfg)
	grid := BuildBumperIndex(cfg, bumpers)
	reach := cfg.BallRadius + cfg.BumperRadius

	for i, b := range bumpers {
		for _, off := range []Vec2{{X: reach, Y: 0}, {X: -reach, Y: 0}, {X: 0, Y: reach}, {X: 0, Y: -reach}} {
			p := b.Pos.Add(off)
			found := false
			prev := -1
			for _, j := range grid.Candidates(p.X, p.Y) {
				if j <= prev {
					t.Fatalf("candidates not ascending near bumper %d", i)
				}
				prev = j
				if j == i {
					found = true
				}
			}
			if !found {
				t.Errorf("bumper %d missing from candidates at %v", i, p)
			}
		}
	}
}
