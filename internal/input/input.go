// Package input turns a raw terminal byte stream into per-frame key state.
package input

import (
	"bufio"
	"time"

	"github.com/tomz197/pinball/internal/pinball"
)

// Terminals send no key-release events, only a press followed by auto-repeat.
// A fresh press is held long enough to bridge the auto-repeat delay; each
// repeat then extends the hold by the shorter repeat window.
const (
	keyRepeatDelay  = 550 * time.Millisecond
	keyHoldDuration = 90 * time.Millisecond
)

// Focus reports a terminal focus change seen this frame.
type Focus int

const (
	FocusUnchanged Focus = iota
	FocusGained
	FocusLost
)

// Input represents the current frame's input state.
type Input struct {
	Left     bool // Held
	Right    bool // Held
	Nudge    bool // Held
	Launch   bool // Held
	Reset    bool // Pressed this frame
	Pause    bool // Pressed this frame
	Quit     bool // Pressed this frame
	Focus    Focus
	Activity bool // A key byte arrived this frame; focus reports do not count
}

// Raw returns the level state the simulation's edge detector consumes.
func (in Input) Raw() pinball.RawInput {
	return pinball.RawInput{
		Left:   in.Left,
		Right:  in.Right,
		Nudge:  in.Nudge,
		Launch: in.Launch,
	}
}

// heldKey tracks until when a key counts as down.
type heldKey struct {
	until time.Time
}

func (k *heldKey) press(now time.Time) {
	if !now.Before(k.until) {
		k.until = now.Add(keyRepeatDelay)
		return
	}
	if next := now.Add(keyHoldDuration); next.After(k.until) {
		k.until = next
	}
}

func (k *heldKey) down(now time.Time) bool {
	return now.Before(k.until)
}

// keyState tracks the hold window of each level key.
type keyState struct {
	left   heldKey
	right  heldKey
	nudge  heldKey
	launch heldKey
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch      chan byte
	state   keyState
	pending []byte // Incomplete escape sequence carried to the next frame
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch: make(chan byte, 128),
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ReadInput drains all available bytes from the stream (non-blocking).
// A closed stream reads as Quit.
func ReadInput(s *Stream) Input {
	var buf []byte
	closed := false

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	in := s.parse(buf, time.Now())
	if closed {
		in.Quit = true
	}
	return in
}

// ResetKeys drops every held key, so a key still held across a state change
// is read as a new press.
func (s *Stream) ResetKeys() {
	s.state = keyState{}
	s.pending = nil
}

// parse applies the bytes received this frame and builds the frame's Input.
func (s *Stream) parse(buf []byte, now time.Time) Input {
	var in Input

	if len(s.pending) > 0 {
		buf = append(append([]byte(nil), s.pending...), buf...)
		s.pending = nil
	}

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// A sequence cut at the frame boundary waits for its final byte.
		if b == '\x1b' && (i == len(buf)-1 || (i == len(buf)-2 && buf[i+1] == '[')) {
			s.pending = append(s.pending, buf[i:]...)
			break
		}

		// CSI sequences: arrows and focus reports.
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			handled := true
			switch buf[i+2] {
			case 'A': // Up arrow
				s.state.nudge.press(now)
			case 'B': // Down arrow
				s.state.launch.press(now)
			case 'C': // Right arrow
				s.state.right.press(now)
			case 'D': // Left arrow
				s.state.left.press(now)
			case 'I':
				in.Focus = FocusGained
			case 'O':
				in.Focus = FocusLost
			default:
				handled = false
			}
			if handled {
				if buf[i+2] != 'I' && buf[i+2] != 'O' {
					in.Activity = true
				}
				i += 2
				continue
			}
		}

		in.Activity = true
		switch b {
		case 'q', 'Q', '\x03':
			in.Quit = true
		case 'a', 'A', 'z', 'Z':
			s.state.left.press(now)
		case 'd', 'D', 'l', 'L', 'm', 'M':
			s.state.right.press(now)
		case 'w', 'W':
			s.state.nudge.press(now)
		case ' ', '\n', '\r':
			s.state.launch.press(now)
		case 'r', 'R':
			in.Reset = true
		case 'p', 'P':
			in.Pause = true
		}
	}

	in.Left = s.state.left.down(now)
	in.Right = s.state.right.down(now)
	in.Nudge = s.state.nudge.down(now)
	in.Launch = s.state.launch.down(now)
	return in
}
