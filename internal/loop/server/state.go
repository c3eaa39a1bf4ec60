package server

import (
	"sync/atomic"

	"github.com/tomz197/pinball/internal/pinball"
)

// ClientConfig describes a client joining the server.
type ClientConfig struct {
	Username    string
	StartPaused bool // Table waits for CommandResume before ticking
}

// ClientHandle represents a client's table on the server.
type ClientHandle struct {
	ID       int
	Username string           // Display name for this client
	EventsCh chan ClientEvent // Events sent to client (table events, shutdown)

	snapshot atomic.Pointer[pinball.Snapshot]
	layout   pinball.Layout

	// Owned by the server goroutine.
	table       *pinball.Simulation
	buttons     pinball.Buttons
	input       pinball.RawInput
	launchPulse bool // Launch reads as held for the next tick only
}

// Snapshot returns the table state after the latest tick. Never nil.
func (h *ClientHandle) Snapshot() *pinball.Snapshot {
	return h.snapshot.Load()
}

// Layout returns the static table geometry.
func (h *ClientHandle) Layout() pinball.Layout {
	return h.layout
}

func (h *ClientHandle) publish() {
	snap := h.table.Snapshot()
	h.snapshot.Store(&snap)
}

// ClientInput represents input from a specific client.
type ClientInput struct {
	ClientID int
	Input    pinball.RawInput
}

// Command is a discrete request applied to a client's table between ticks.
type Command int

const (
	CommandReset    Command = iota // Rebuild the playfield and respawn the ball
	CommandRelaunch                // Respawn the ball, keep the playfield
	CommandPause                   // Stop ticking
	CommandResume                  // Tick again
	CommandLaunch                  // One-tick launch press
)

func (c Command) String() string {
	switch c {
	case CommandReset:
		return "reset"
	case CommandRelaunch:
		return "relaunch"
	case CommandPause:
		return "pause"
	case CommandResume:
		return "resume"
	case CommandLaunch:
		return "launch"
	default:
		return "unknown"
	}
}

// ClientCommand is a command addressed to one client's table.
type ClientCommand struct {
	ClientID int
	Command  Command
}

// ClientEvent represents an event sent from server to client.
type ClientEvent struct {
	Type   ClientEventType
	Result pinball.TickResult // For EventTable
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventTable ClientEventType = iota // A tick produced table events
	EventServerShutdown
)
