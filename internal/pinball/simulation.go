package pinball

import (
	"fmt"
	"time"

	"github.com/tomz197/pinball/internal/physics"
)

// Simulation owns one table: ball, flippers, bumpers and walls.
// It is not safe for concurrent use; a single goroutine drives Tick and
// Reset, and renderers only ever see Snapshot copies.
type Simulation struct {
	cfg Config

	ball        Ball
	walls       []Segment
	flippers    [2]Flipper
	bumpers     []Bumper
	bumperIndex *physics.SpatialGrid

	tick          uint64
	drained       bool
	paused        bool
	nudgeCooldown int

	clock func() time.Time
}

// Option configures a Simulation.
type Option func(*Simulation)

// WithClock replaces time.Now for bumper timestamps.
func WithClock(clock func() time.Time) Option {
	return func(s *Simulation) {
		s.clock = clock
	}
}

// NewSimulation validates cfg and builds a fresh table with the ball at
// the spawn point.
func NewSimulation(cfg Config, opts ...Option) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new simulation: %w", err)
	}
	cfg = cfg.clone()

	s := &Simulation{
		cfg:      cfg,
		walls:    BuildWalls(cfg),
		flippers: BuildFlippers(cfg),
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.rebuildBumpers()
	s.resetBall()
	return s, nil
}

// Config returns the table configuration.
func (s *Simulation) Config() Config {
	return s.cfg.clone()
}

// Tick advances the table by one frame. It does nothing while paused or
// after the ball has drained, apart from honouring a Launch press while
// drained, which relaunches the ball (the launch itself takes effect on
// the next tick).
func (s *Simulation) Tick(c Controls) TickResult {
	if s.paused {
		return TickResult{Tick: s.tick}
	}
	if s.drained {
		if c.Launch == KeyPressed {
			s.Reset(false)
		}
		return TickResult{Tick: s.tick}
	}

	res := TickResult{Ran: true}

	IntegrateBall(&s.ball, s.cfg)

	step := s.cfg.FlipperStep()
	s.flippers[0].Actuate(c.Left.Down(), step)
	s.flippers[1].Actuate(c.Right.Down(), step)

	s.applyNudge(c.Nudge, &res)

	s.resolveWalls(&res)
	s.resolveBumpers(&res)
	s.resolveFlippers(&res)

	if s.outOfBounds() {
		s.drained = true
		res.Drained = true
		res.add(Event{Type: EventDrained})
	}

	s.tick++
	res.Tick = s.tick
	return res
}

// applyNudge gives the ball an upward kick on a fresh Nudge press.
func (s *Simulation) applyNudge(k KeyState, res *TickResult) {
	if s.nudgeCooldown > 0 {
		s.nudgeCooldown--
	}
	if k != KeyPressed || s.cfg.NudgeImpulse <= 0 || s.nudgeCooldown > 0 {
		return
	}
	s.ball.Vel.Y -= s.cfg.NudgeImpulse
	s.ball.Vel = physics.ClampMagnitude(s.ball.Vel, s.cfg.MaxSpeed)
	s.nudgeCooldown = s.cfg.NudgeCooldownTicks
	res.add(Event{Type: EventNudge})
}

// outOfBounds reports whether the ball left the table by more than the margin.
func (s *Simulation) outOfBounds() bool {
	m := s.cfg.DrainMargin
	p := s.ball.Pos
	return p.Y > s.cfg.Height+m ||
		p.Y < -m ||
		p.X < -m ||
		p.X > s.cfg.Width+m
}

// Reset relaunches the ball from the spawn point and clears the drain.
// A full reset also restores every bumper to active.
func (s *Simulation) Reset(full bool) {
	s.resetBall()
	s.drained = false
	s.nudgeCooldown = 0
	if full {
		s.rebuildBumpers()
	}
}

func (s *Simulation) resetBall() {
	s.ball = Ball{
		Pos:    s.cfg.Spawn(),
		Radius: s.cfg.BallRadius,
	}
}

func (s *Simulation) rebuildBumpers() {
	s.bumpers = BuildBumpers(s.cfg)
	s.bumperIndex = BuildBumperIndex(s.cfg, s.bumpers)
}

// Pause stops Tick from advancing the table.
func (s *Simulation) Pause() {
	s.paused = true
}

// Resume continues from the state left by the last completed tick.
func (s *Simulation) Resume() {
	s.paused = false
}

// Active reports whether Tick currently advances the table.
func (s *Simulation) Active() bool {
	return !s.paused
}

// Drained reports whether the ball is out and waiting for a reset.
func (s *Simulation) Drained() bool {
	return s.drained
}

// Ball returns a copy of the ball.
func (s *Simulation) Ball() Ball {
	return s.ball
}

// Bumper returns a copy of bumper i.
func (s *Simulation) Bumper(i int) Bumper {
	return s.bumpers[i]
}

// BumperCount returns the number of bumpers on the table.
func (s *Simulation) BumperCount() int {
	return len(s.bumpers)
}

// Flipper returns a copy of the flipper on side.
func (s *Simulation) Flipper(side Side) Flipper {
	if side == SideRight {
		return s.flippers[1]
	}
	return s.flippers[0]
}

func (s *Simulation) now() time.Time {
	return s.clock()
}
