package pinball

import "github.com/tomz197/pinball/internal/physics"

// IntegrateBall advances the ball by one tick: gravity, damping, the ambient
// speed ceiling, then position (semi-implicit Euler, no substeps).
func IntegrateBall(b *Ball, cfg Config) {
	b.Vel.Y += cfg.Gravity
	b.Vel = b.Vel.Scale(cfg.Damping)
	b.Vel = physics.ClampMagnitude(b.Vel, cfg.MaxSpeed)
	b.Pos = b.Pos.Add(b.Vel)
}
