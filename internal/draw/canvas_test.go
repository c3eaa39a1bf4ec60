package draw

import (
	"bytes"
	"strings"
	"testing"
)

func TestCanvasRenderOnlyWritesChanges(t *testing.T) {
	c := NewScaledCanvas(10, 5, 100, 100)
	var buf bytes.Buffer

	// First frame repaints everything.
	c.Render(&buf)
	if got := strings.Count(buf.String(), "\033["); got != 50 {
		t.Fatalf("first render wrote %d cells, want 50", got)
	}

	buf.Reset()
	c.Render(&buf)
	if buf.Len() != 0 {
		t.Fatalf("unchanged frame wrote %q", buf.String())
	}

	c.SetFloat(0, 0)
	c.Render(&buf)
	if got := buf.String(); got != "\033[1;1H"+string(BlockUpperHalf) {
		t.Fatalf("single pixel render = %q", got)
	}

	// Clearing the pixel must blank the cell again.
	buf.Reset()
	c.Clear()
	c.Render(&buf)
	if got := buf.String(); got != "\033[1;1H " {
		t.Fatalf("cleared pixel render = %q", got)
	}
}

func TestCanvasMarkTextDirty(t *testing.T) {
	c := NewScaledCanvas(10, 5, 100, 100)
	var buf bytes.Buffer
	c.Render(&buf)

	buf.Reset()
	c.MarkTextDirty(3, 2, 2)
	c.Render(&buf)
	if got := strings.Count(buf.String(), "\033["); got != 2 {
		t.Errorf("dirty render wrote %d cells, want 2", got)
	}

	buf.Reset()
	c.ForceRedraw()
	c.Render(&buf)
	if got := strings.Count(buf.String(), "\033["); got != 50 {
		t.Errorf("forced render wrote %d cells, want 50", got)
	}
}

func TestFillCircleStaysInBounds(t *testing.T) {
	c := NewScaledCanvas(20, 10, 100, 100)
	c.FillCircle(50, 50, 10)
	c.FillCircle(-5, 120, 30)
	c.DrawThickLine(Point{X: 10, Y: 90}, Point{X: 40, Y: 80}, 6)

	set := 0
	for _, p := range c.pixels {
		if p {
			set++
		}
	}
	if set == 0 {
		t.Fatal("no pixels set")
	}
	if !c.pixels[10*20+10] {
		t.Error("circle centre not filled")
	}
}

func TestChunkWriterFlush(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 2, 1)
	cw.MoveCursor(1, 1)
	cw.WriteString("hi")
	if out.Len() != 0 {
		t.Fatal("wrote before Flush")
	}
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	if got := out.String(); got != "\033[2;3Hhi" {
		t.Errorf("flushed %q", got)
	}
}
