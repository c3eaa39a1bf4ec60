package object

import (
	"fmt"
	"io"
	"unicode/utf8"
)

// Text is a simple drawable text object.
// Coordinates are 1-based terminal positions.
type Text struct {
	X     int
	Y     int
	Value string
	Color string // ANSI prefix, optional
}

// Centered returns a Text centred on a row of the given width.
func Centered(width, row int, value string) Text {
	x := (width-utf8.RuneCountInString(value))/2 + 1
	return Text{X: x, Y: row, Value: value}
}

// Draw writes the text at its position using ANSI cursor movement.
func (t Text) Draw(w io.Writer) error {
	if t.Value == "" {
		return nil
	}
	x := max(t.X, 1)
	y := max(t.Y, 1)
	reset := ""
	if t.Color != "" {
		reset = "\033[0m"
	}
	if _, err := fmt.Fprintf(w, "\033[%d;%dH%s%s%s", y, x, t.Color, t.Value, reset); err != nil {
		return err
	}
	return nil
}

// DrawOn writes the text through a canvas's chunk writer and marks the
// cells so the next canvas render repaints them.
func (t Text) DrawOn(ctx DrawContext) {
	if t.Value == "" {
		return
	}
	x := max(t.X, 1)
	y := max(t.Y, 1)
	ctx.Writer.MoveCursor(x, y)
	if t.Color != "" {
		ctx.Writer.WriteString(t.Color)
	}
	ctx.Writer.WriteString(t.Value)
	if t.Color != "" {
		ctx.Writer.WriteString("\033[0m")
	}
	ctx.Canvas.MarkTextDirty(x, y, utf8.RuneCountInString(t.Value))
}

// Update is a no-op for static text.
func (t Text) Update(ctx UpdateContext) (bool, error) {
	return false, nil
}
