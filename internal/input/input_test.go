package input

import (
	"reflect"
	"testing"
	"time"

	"github.com/tomz197/pinball/internal/pinball"
)

func TestParseKeys(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   string
		want Input
	}{
		{"left letter", "a", Input{Left: true, Activity: true}},
		{"right arrow", "\x1b[C", Input{Right: true, Activity: true}},
		{"both flippers", "al", Input{Left: true, Right: true, Activity: true}},
		{"nudge arrow", "\x1b[A", Input{Nudge: true, Activity: true}},
		{"launch space", " ", Input{Launch: true, Activity: true}},
		{"reset", "r", Input{Reset: true, Activity: true}},
		{"pause", "p", Input{Pause: true, Activity: true}},
		{"quit", "q", Input{Quit: true, Activity: true}},
		{"focus lost", "\x1b[O", Input{Focus: FocusLost}},
		{"focus gained", "\x1b[I", Input{Focus: FocusGained}},
		{"focus gained then left", "\x1b[Ia", Input{Focus: FocusGained, Left: true, Activity: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Stream{}
			got := s.parse([]byte(tt.in), now)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parse(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestHoldWindow(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := &Stream{}

	s.parse([]byte("a"), start)

	// Still held through the auto-repeat delay.
	if in := s.parse(nil, start.Add(keyRepeatDelay-time.Millisecond)); !in.Left {
		t.Error("released before the repeat delay")
	}

	// A repeat extends the hold by the short window.
	repeatAt := start.Add(keyRepeatDelay - 10*time.Millisecond)
	s.parse([]byte("a"), repeatAt)
	if in := s.parse(nil, repeatAt.Add(keyHoldDuration-time.Millisecond)); !in.Left {
		t.Error("released before the repeat window ended")
	}
	if in := s.parse(nil, repeatAt.Add(keyHoldDuration)); in.Left {
		t.Error("still held after the repeat window")
	}
}

func TestResetKeys(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := &Stream{}
	s.parse([]byte("d"), now)
	s.ResetKeys()
	if in := s.parse(nil, now.Add(time.Millisecond)); in.Right {
		t.Error("key still held after ResetKeys")
	}
}

func TestRaw(t *testing.T) {
	in := Input{Left: true, Launch: true, Reset: true}
	want := pinball.RawInput{Left: true, Launch: true}
	if got := in.Raw(); got != want {
		t.Errorf("Raw() = %+v, want %+v", got, want)
	}
}

func TestSplitEscapeSequence(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		frames []string
		want   Input
	}{
		{"left arrow after ESC", []string{"\x1b", "[D"}, Input{Left: true, Activity: true}},
		{"left arrow after ESC [", []string{"\x1b[", "D"}, Input{Left: true, Activity: true}},
		{"up arrow after ESC", []string{"\x1b", "[A"}, Input{Nudge: true, Activity: true}},
		{"focus report after ESC", []string{"\x1b", "[O"}, Input{Focus: FocusLost}},
		{"ESC then a letter", []string{"\x1b", "d"}, Input{Right: true, Activity: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Stream{}
			var got Input
			for i, f := range tt.frames {
				got = s.parse([]byte(f), start.Add(time.Duration(i)*16*time.Millisecond))
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("frames %q: got %+v, want %+v", tt.frames, got, tt.want)
			}
		})
	}
}

func TestIncompleteSequenceHoldsNothing(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := &Stream{}
	in := s.parse([]byte("\x1b["), now)
	if in.Left || in.Right || in.Nudge || in.Launch {
		t.Errorf("partial sequence pressed a key: %+v", in)
	}
}
