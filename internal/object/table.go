package object

import (
	"time"

	"github.com/tomz197/pinball/internal/draw"
	"github.com/tomz197/pinball/internal/pinball"
)

// Table draws a pinball snapshot: walls, flippers, bumpers and the ball.
// Consumed bumpers are replaced by their icon label, fading in. Labels are
// text, so they go through DrawLabels after the canvas has been rendered.
type Table struct {
	Snapshot     pinball.Snapshot
	FadeDuration time.Duration
}

// Update is a no-op; the host swaps in a fresh Snapshot every frame.
func (t *Table) Update(ctx UpdateContext) (bool, error) {
	return false, nil
}

// Draw draws the table shapes on the canvas.
func (t *Table) Draw(ctx DrawContext) error {
	snap := &t.Snapshot
	c := ctx.Canvas

	for _, w := range snap.Walls {
		c.DrawLine(point(w.A), point(w.B))
	}

	for _, f := range snap.Flippers {
		c.DrawThickLine(point(f.Pivot), point(f.End), f.Thickness)
	}

	for _, b := range snap.Bumpers {
		switch {
		case b.Active && b.Lit:
			c.FillCircle(b.Pos.X, b.Pos.Y, b.Radius)
		case b.Active:
			c.DrawCircle(b.Pos.X, b.Pos.Y, b.Radius)
		}
	}

	if !snap.Drained {
		c.FillCircle(snap.Ball.Pos.X, snap.Ball.Pos.Y, snap.Ball.Radius)
	}
	return nil
}

// DrawLabels writes the icon label of every consumed bumper.
func (t *Table) DrawLabels(ctx DrawContext) {
	if ctx.Writer == nil {
		return
	}
	for _, b := range t.Snapshot.Bumpers {
		if !b.Active {
			t.drawIcon(ctx, b)
		}
	}
}

// drawIcon writes a consumed bumper's label centred on its position.
// Until the fade completes the label is drawn faint.
func (t *Table) drawIcon(ctx DrawContext, b pinball.Bumper) {
	g := IconGlyph(b.IconKey)
	col, row := ctx.Canvas.LogicalToTerminal(b.Pos.X, b.Pos.Y)
	col -= len(g.Label) / 2
	if col < 1 || row < 1 || row > ctx.Canvas.TerminalHeight() ||
		col+len(g.Label)-1 > ctx.Canvas.TerminalWidth() {
		return
	}

	color := g.Color
	if b.FadeIn(ctx.Now, t.FadeDuration) < 1 {
		color = draw.ColorFaint
	}
	Text{X: col, Y: row, Value: g.Label, Color: color}.DrawOn(ctx)
}

func point(v pinball.Vec2) draw.Point {
	return draw.Point{X: v.X, Y: v.Y}
}
