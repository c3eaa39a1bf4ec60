package client

import (
	"time"

	"github.com/tomz197/pinball/internal/draw"
	"github.com/tomz197/pinball/internal/input"
)

// GameState represents the current phase for a client.
type GameState int

const (
	GameStateStart    GameState = iota // Title screen
	GameStatePlaying                   // Ball in play
	GameStateDrained                   // Ball lost, waiting for a launch
	GameStatePaused                    // Table frozen by the player or lost focus
	GameStateShutdown                  // Server is shutting down
)

func (s GameState) String() string {
	switch s {
	case GameStateStart:
		return "start"
	case GameStatePlaying:
		return "playing"
	case GameStateDrained:
		return "drained"
	case GameStatePaused:
		return "paused"
	case GameStateShutdown:
		return "shutdown"
	default:
		return "unknown"
	}
}

// ClientState holds per-player state (input, phase, timers).
// Each client has their own instance, managed by the Client.
type ClientState struct {
	Input         input.Input
	GameState     GameState         // This client's phase
	prevGameState GameState         // Phase drawn last frame
	autoPaused    bool              // Paused by focus loss rather than the player
	termSizeFunc  draw.TermSizeFunc // Function to get terminal size
	Running       bool              // Client loop running
	delta         time.Duration     // Frame delta time (client-side)
	shutdownTimer float64           // Countdown before auto-disconnect on shutdown
	isInactive    bool              // Whether the client is in inactive warning state
	wasInactive   bool              // Inactivity state drawn last frame
	players       int               // Connected players, refreshed each frame
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		GameState:     GameStateStart,
		prevGameState: GameStateStart,
		Running:       true,
	}
}
