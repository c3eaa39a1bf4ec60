package pinball

import "math"

// Target returns the angle the flipper is heading to for the given input.
func (f *Flipper) Target(pressed bool) float64 {
	if pressed {
		return f.AngleActive
	}
	return f.AngleRest
}

// Actuate moves the flipper towards its target by at most maxStep radians.
// The step is clamped towards the target, so the angle never passes it,
// and a target within reach is taken exactly.
func (f *Flipper) Actuate(pressed bool, maxStep float64) {
	prev := f.Angle
	target := f.Target(pressed)
	switch diff := target - prev; {
	case math.Abs(diff) <= maxStep:
		f.Angle = target
	case diff > 0:
		f.Angle = prev + maxStep
	default:
		f.Angle = prev - maxStep
	}
	f.lastStep = f.Angle - prev
}

// AngularVelocity is the last applied angle change divided by the tick length.
func (f Flipper) AngularVelocity(tickSeconds float64) float64 {
	if tickSeconds <= 0 {
		return 0
	}
	return f.lastStep / tickSeconds
}

// EffectiveRadius is the contact distance between the ball centre and the
// flipper's centre line.
func (f Flipper) EffectiveRadius(ballRadius float64) float64 {
	return ballRadius + f.Thickness*0.5
}
