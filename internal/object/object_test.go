package object

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/tomz197/pinball/internal/draw"
	"github.com/tomz197/pinball/internal/pinball"
)

type countdown struct {
	left     int
	spawn    bool
	released *int
	err      error
}

func (c *countdown) Update(ctx UpdateContext) (bool, error) {
	if c.spawn {
		c.spawn = false
		ctx.Spawner.Spawn(&countdown{left: 5, released: c.released})
	}
	c.left--
	return c.left <= 0, c.err
}

func (c *countdown) Draw(ctx DrawContext) error { return nil }

func (c *countdown) Release() { *c.released++ }

func TestLayerUpdate(t *testing.T) {
	released := 0
	var l Layer
	l.Spawn(&countdown{left: 1, released: &released})
	l.Spawn(&countdown{left: 3, spawn: true, released: &released})

	// Spawns are queued until the end of an update pass.
	if l.Len() != 0 {
		t.Fatalf("Len before update = %d, want 0", l.Len())
	}
	if err := l.Update(time.Millisecond); err != nil {
		t.Fatal(err)
	}
	if l.Len() != 2 {
		t.Fatalf("Len after first update = %d, want 2", l.Len())
	}

	if err := l.Update(time.Millisecond); err != nil {
		t.Fatal(err)
	}
	// The short-lived object is released; the other spawned a child.
	if l.Len() != 2 {
		t.Fatalf("Len after second update = %d, want 2", l.Len())
	}
	if released != 1 {
		t.Fatalf("released = %d, want 1", released)
	}

	l.Reset()
	if l.Len() != 0 || released != 3 {
		t.Errorf("after Reset: Len = %d, released = %d", l.Len(), released)
	}
}

func TestLayerUpdateReportsError(t *testing.T) {
	released := 0
	boom := errors.New("boom")
	var l Layer
	l.Spawn(&countdown{left: 2, released: &released, err: boom})
	l.Update(0)
	if err := l.Update(0); !errors.Is(err, boom) {
		t.Errorf("Update error = %v, want %v", err, boom)
	}
}

func TestSpawnSparks(t *testing.T) {
	var l Layer
	SpawnSparks(100, 200, 12, 300, 0.5, &l)
	l.Update(0)
	if l.Len() != 12 {
		t.Fatalf("spawned %d sparks, want 12", l.Len())
	}

	// All sparks expire within their maximum lifetime.
	for i := 0; i < 40; i++ {
		l.Update(20 * time.Millisecond)
	}
	if l.Len() != 0 {
		t.Errorf("%d sparks still alive after 0.8s", l.Len())
	}

	SpawnSparks(0, 0, 5, 1, 1, nil) // nil spawner is ignored
}

func TestParticleMoves(t *testing.T) {
	p := NewParticle(0, 0, 60, 0, 1)
	p.Drag = 1
	if remove, _ := p.Update(UpdateContext{Delta: 500 * time.Millisecond}); remove {
		t.Fatal("particle removed early")
	}
	if p.X != 30 || p.Y != 0 {
		t.Errorf("position = (%v, %v), want (30, 0)", p.X, p.Y)
	}
	if remove, _ := p.Update(UpdateContext{Delta: 600 * time.Millisecond}); !remove {
		t.Error("particle outlived its lifetime")
	}
}

func TestIconGlyph(t *testing.T) {
	for _, key := range pinball.IconKeys() {
		g := IconGlyph(key)
		if g.Label == "" || g.Color == "" {
			t.Errorf("icon %q has no glyph", key)
		}
	}
	if got, want := IconGlyph("cobol"), IconGlyph(pinball.DefaultIconKey); got != want {
		t.Errorf("unknown icon = %+v, want default %+v", got, want)
	}
}

func TestTableDrawsLabelsForConsumedBumpers(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	var out bytes.Buffer
	canvas := draw.NewScaledCanvas(100, 35, 1000, 700)
	cw := draw.NewChunkWriter(&out, 0, 0)

	table := &Table{
		FadeDuration: time.Second,
		Snapshot: pinball.Snapshot{
			Bumpers: []pinball.Bumper{
				{Pos: pinball.Vec2{X: 500, Y: 350}, Radius: 18, Active: true},
				{Pos: pinball.Vec2{X: 200, Y: 350}, Radius: 18, IconKey: "docker", DeactivatedAt: now.Add(-2 * time.Second)},
				{Pos: pinball.Vec2{X: 800, Y: 350}, Radius: 18, IconKey: "jest", DeactivatedAt: now},
			},
			Drained: true,
		},
	}
	ctx := DrawContext{Canvas: canvas, Writer: cw, Now: now}
	if err := table.Draw(ctx); err != nil {
		t.Fatal(err)
	}
	table.DrawLabels(ctx)
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}

	got := out.String()
	if !strings.Contains(got, IconGlyph("docker").Color+"Dk") {
		t.Errorf("faded-in label missing its colour: %q", got)
	}
	if !strings.Contains(got, draw.ColorFaint+"Je") {
		t.Errorf("fresh label not drawn faint: %q", got)
	}
	if strings.Contains(got, "Re") {
		t.Errorf("active bumper drew a label: %q", got)
	}
}

func TestCentered(t *testing.T) {
	txt := Centered(20, 3, "abcd")
	if txt.X != 9 || txt.Y != 3 {
		t.Errorf("Centered = %+v, want X 9 Y 3", txt)
	}
	var buf bytes.Buffer
	if err := txt.Draw(&buf); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "\033[3;9Habcd" {
		t.Errorf("Draw wrote %q", got)
	}
}
