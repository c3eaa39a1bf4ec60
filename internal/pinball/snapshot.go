package pinball

// FlipperState is a flipper as seen by a renderer.
type FlipperState struct {
	Flipper
	End             Vec2    `json:"tip"`
	AngularVelocity float64 `json:"angularVelocity"`
}

// Snapshot is a deep copy of the table state at the end of a tick.
// Mutating it never affects the simulation.
type Snapshot struct {
	Tick     uint64          `json:"tick"`
	Width    float64         `json:"width"`
	Height   float64         `json:"height"`
	Ball     Ball            `json:"ball"`
	Walls    []Segment       `json:"walls"`
	Flippers [2]FlipperState `json:"flippers"`
	Bumpers  []Bumper        `json:"bumpers"`
	Drained  bool            `json:"drained"`
	Active   bool            `json:"active"`
}

// Snapshot copies the current state for rendering.
func (s *Simulation) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:    s.tick,
		Width:   s.cfg.Width,
		Height:  s.cfg.Height,
		Ball:    s.ball,
		Walls:   append([]Segment(nil), s.walls...),
		Bumpers: append([]Bumper(nil), s.bumpers...),
		Drained: s.drained,
		Active:  !s.paused,
	}
	for i, f := range s.flippers {
		snap.Flippers[i] = FlipperState{
			Flipper:         f,
			End:             f.Tip(),
			AngularVelocity: f.AngularVelocity(s.cfg.TickSeconds),
		}
	}
	return snap
}

// ActiveBumpers returns how many bumpers in the snapshot are still active.
func (s Snapshot) ActiveBumpers() int {
	n := 0
	for _, b := range s.Bumpers {
		if b.Active {
			n++
		}
	}
	return n
}

// Layout is the static table geometry, sent once to remote renderers.
type Layout struct {
	Width        float64   `json:"width"`
	Height       float64   `json:"height"`
	Walls        []Segment `json:"walls"`
	BallRadius   float64   `json:"ballRadius"`
	BumperRadius float64   `json:"bumperRadius"`
	IconKeys     []string  `json:"iconKeys"`
}

// Layout returns the static geometry of the table.
func (s *Simulation) Layout() Layout {
	return Layout{
		Width:        s.cfg.Width,
		Height:       s.cfg.Height,
		Walls:        append([]Segment(nil), s.walls...),
		BallRadius:   s.cfg.BallRadius,
		BumperRadius: s.cfg.BumperRadius,
		IconKeys:     IconKeys(),
	}
}
