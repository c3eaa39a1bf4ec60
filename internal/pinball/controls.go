package pinball

// KeyState is the per-tick state of one button after edge detection.
type KeyState uint8

const (
	KeyUp       KeyState = iota // Not held, was not held last tick
	KeyPressed                  // Went down this tick
	KeyHeld                     // Down this tick and last tick
	KeyReleased                 // Went up this tick
)

// Down reports whether the button is currently held.
func (k KeyState) Down() bool {
	return k == KeyPressed || k == KeyHeld
}

func (k KeyState) String() string {
	switch k {
	case KeyPressed:
		return "pressed"
	case KeyHeld:
		return "held"
	case KeyReleased:
		return "released"
	default:
		return "up"
	}
}

// Controls is the resolved input for a single tick.
type Controls struct {
	Left   KeyState
	Right  KeyState
	Nudge  KeyState
	Launch KeyState
}

// RawInput is the level state of every button as sampled by a host.
type RawInput struct {
	Left   bool
	Right  bool
	Nudge  bool
	Launch bool
}

// Buttons turns level samples into edge-aware Controls. Hosts call Resolve
// once per tick with the latest sample; no manual flag clearing is needed.
type Buttons struct {
	prev RawInput
}

// Resolve compares raw with the previous sample and returns the tick's Controls.
func (b *Buttons) Resolve(raw RawInput) Controls {
	c := Controls{
		Left:   edge(b.prev.Left, raw.Left),
		Right:  edge(b.prev.Right, raw.Right),
		Nudge:  edge(b.prev.Nudge, raw.Nudge),
		Launch: edge(b.prev.Launch, raw.Launch),
	}
	b.prev = raw
	return c
}

// Reset forgets the previous sample, so a held button reads as Pressed again.
func (b *Buttons) Reset() {
	b.prev = RawInput{}
}

func edge(was, is bool) KeyState {
	switch {
	case is && was:
		return KeyHeld
	case is:
		return KeyPressed
	case was:
		return KeyReleased
	default:
		return KeyUp
	}
}
