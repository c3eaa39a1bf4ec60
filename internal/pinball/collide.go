package pinball

import "github.com/tomz197/pinball/internal/physics"

// CollideSegment resolves the ball against the segment a-b, treating the
// segment as a capsule of radius effectiveRadius. On contact the ball is
// pushed out along the normal and any inward velocity is reflected with
// restitution. Returns true on contact.
func CollideSegment(b *Ball, a, bEnd Vec2, effectiveRadius, restitution float64) bool {
	c := physics.ClosestOnSegment(b.Pos, a, bEnd)
	overlap := effectiveRadius - c.Dist
	if overlap <= 0 {
		return false
	}
	b.Pos = b.Pos.Add(c.Normal.Scale(overlap))
	b.Vel, _ = physics.Reflect(b.Vel, c.Normal, restitution)
	return true
}

// CollideCircle resolves the ball against a static circle. Contact requires
// the centre distance to be strictly below the sum of radii.
func CollideCircle(b *Ball, centre Vec2, radius, restitution float64) bool {
	c := physics.CircleContact(b.Pos, centre)
	minDist := b.Radius + radius
	if c.Dist >= minDist {
		return false
	}
	b.Pos = b.Pos.Add(c.Normal.Scale(minDist - c.Dist))
	b.Vel, _ = physics.Reflect(b.Vel, c.Normal, restitution)
	return true
}

// clampAfterHit applies the post-impact speed ceiling.
func clampAfterHit(b *Ball, cfg Config) {
	b.Vel = physics.ClampMagnitude(b.Vel, cfg.MaxSpeedAfterHit)
}

// resolveWalls runs the wall pass in construction order.
func (s *Simulation) resolveWalls(res *TickResult) {
	for i := range s.walls {
		w := s.walls[i]
		if CollideSegment(&s.ball, w.A, w.B, s.ball.Radius, s.cfg.WallRestitution) {
			clampAfterHit(&s.ball, s.cfg)
			res.add(Event{Type: EventWallHit, Index: i})
		}
	}
}

// resolveBumpers runs the bumper pass over active bumpers near the ball.
func (s *Simulation) resolveBumpers(res *TickResult) {
	now := s.now()
	for _, i := range s.bumperIndex.Candidates(s.ball.Pos.X, s.ball.Pos.Y) {
		bp := &s.bumpers[i]
		if !bp.Active {
			continue
		}
		bp.expireLight(now)

		if CollideCircle(&s.ball, bp.Pos, bp.Radius, s.cfg.BumperRestitution) {
			bp.Consume(now)
			clampAfterHit(&s.ball, s.cfg)
			res.add(Event{Type: EventBumperHit, Index: i, Skill: bp.Skill, IconKey: bp.IconKey})
		}
	}
}

// resolveFlippers runs the flipper pass, left then right.
func (s *Simulation) resolveFlippers(res *TickResult) {
	for i := range s.flippers {
		f := &s.flippers[i]
		if CollideSegment(&s.ball, f.Pivot, f.Tip(), f.EffectiveRadius(s.ball.Radius), s.cfg.FlipperRestitution) {
			clampAfterHit(&s.ball, s.cfg)
			res.add(Event{Type: EventFlipperHit, Index: i, Side: f.Side})
		}
	}
}
