package pinball

// EventType identifies something that happened during a tick.
type EventType int

const (
	EventWallHit EventType = iota
	EventBumperHit
	EventFlipperHit
	EventNudge
	EventDrained
)

func (t EventType) String() string {
	switch t {
	case EventWallHit:
		return "wall_hit"
	case EventBumperHit:
		return "bumper_hit"
	case EventFlipperHit:
		return "flipper_hit"
	case EventNudge:
		return "nudge"
	case EventDrained:
		return "drained"
	default:
		return "unknown"
	}
}

// Event is a tick notification for hosts (sound, particles, UI).
// It carries no state the host can mutate.
type Event struct {
	Type    EventType
	Index   int    // Wall, bumper or flipper index
	Side    Side   // Flipper hits
	Skill   string // Bumper hits
	IconKey string // Bumper hits
}

// TickResult reports what a Tick did.
type TickResult struct {
	Ran     bool // False when the table is paused or drained
	Tick    uint64
	Events  []Event
	Drained bool // True only on the tick the drain was detected
}

func (r *TickResult) add(e Event) {
	r.Events = append(r.Events, e)
}

// Has reports whether an event of type t occurred.
func (r TickResult) Has(t EventType) bool {
	for _, e := range r.Events {
		if e.Type == t {
			return true
		}
	}
	return false
}

// Count returns the number of events of type t.
func (r TickResult) Count(t EventType) int {
	n := 0
	for _, e := range r.Events {
		if e.Type == t {
			n++
		}
	}
	return n
}
