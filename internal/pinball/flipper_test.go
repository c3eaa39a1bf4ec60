package pinball

import (
	"math"
	"math/rand"
	"testing"
)

func TestFlipperSettlesAtActive(t *testing.T) {
	cfg := DefaultConfig()
	step := cfg.FlipperStep()

	for _, f := range BuildFlippers(cfg) {
		t.Run(string(f.Side), func(t *testing.T) {
			for i := 0; i < 30; i++ {
				f.Actuate(true, step)
			}
			if f.Angle != f.AngleActive {
				t.Errorf("angle = %v, want exactly %v", f.Angle, f.AngleActive)
			}
			if f.AngularVelocity(cfg.TickSeconds) != 0 {
				t.Errorf("angular velocity = %v at rest on target", f.AngularVelocity(cfg.TickSeconds))
			}

			for i := 0; i < 30; i++ {
				f.Actuate(false, step)
			}
			if f.Angle != f.AngleRest {
				t.Errorf("angle = %v, want exactly %v", f.Angle, f.AngleRest)
			}
		})
	}
}

func TestFlipperTraversalTicks(t *testing.T) {
	f := Flipper{Angle: 0, AngleRest: 0, AngleActive: -1}

	var got []float64
	for i := 0; i < 6; i++ {
		f.Actuate(true, 0.25)
		got = append(got, f.Angle)
	}
	want := []float64{-0.25, -0.5, -0.75, -1, -1, -1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("trajectory = %v, want %v", got, want)
		}
	}
}

// Any press sequence: bounded steps, always towards the target, never past it.
func TestFlipperNoOvershoot(t *testing.T) {
	cfg := DefaultConfig()
	step := cfg.FlipperStep()
	rng := rand.New(rand.NewSource(42))

	for _, f := range BuildFlippers(cfg) {
		for i := 0; i < 2000; i++ {
			pressed := rng.Intn(2) == 0
			prev := f.Angle
			target := f.Target(pressed)
			f.Actuate(pressed, step)

			if math.Abs(f.Angle-prev) > step+eps {
				t.Fatalf("%s tick %d: step %v exceeds %v", f.Side, i, f.Angle-prev, step)
			}
			if (target-prev)*(f.Angle-prev) < 0 {
				t.Fatalf("%s tick %d: moved away from target", f.Side, i)
			}
			if math.Abs(target-f.Angle) > math.Abs(target-prev)+eps {
				t.Fatalf("%s tick %d: overshot target %v (angle %v)", f.Side, i, target, f.Angle)
			}
			if !inRange(f) {
				t.Fatalf("%s tick %d: angle %v out of range", f.Side, i, f.Angle)
			}
		}
	}
}

func TestFlipperEffectiveRadius(t *testing.T) {
	f := Flipper{Thickness: 16}
	if got := f.EffectiveRadius(10); got != 18 {
		t.Errorf("EffectiveRadius(10) = %v, want 18", got)
	}
}

// inRange reports whether the angle lies within the closed interval spanned
// by the rest and active angles.
func inRange(f Flipper) bool {
	lo, hi := f.AngleRest, f.AngleActive
	if lo > hi {
		lo, hi = hi, lo
	}
	return f.Angle >= lo && f.Angle <= hi
}
