package client

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/tomz197/pinball/internal/draw"
	"github.com/tomz197/pinball/internal/input"
	"github.com/tomz197/pinball/internal/loop/config"
	"github.com/tomz197/pinball/internal/loop/server"
	"github.com/tomz197/pinball/internal/object"
	"github.com/tomz197/pinball/internal/pinball"
)

// SoundPlayer plays cues for a tick's events.
type SoundPlayer interface {
	Play(res pinball.TickResult)
}

// Client handles rendering and input for a single connection.
type Client struct {
	server       server.GameServer
	handle       *server.ClientHandle
	state        *ClientState
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates UI text for chunked output
	reader       *bufio.Reader
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	username     string
	termSizeFunc draw.TermSizeFunc
	sound        SoundPlayer
	table        object.Table
	effects      object.Layer
	aspect       float64 // Table width over height, in terminal cells
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
	Sound        SoundPlayer // Optional
}

// NewClient creates a new client with its own table on the given server.
func NewClient(gs server.GameServer, r *bufio.Reader, w io.Writer, opts ClientOptions) (*Client, error) {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}

	username := opts.Username
	if len(username) > config.MaxUsernameLength {
		username = username[:config.MaxUsernameLength]
	}

	// The table stays frozen behind the title screen.
	handle, err := gs.RegisterClient(server.ClientConfig{Username: username, StartPaused: true})
	if err != nil {
		return nil, err
	}
	state := NewClientState()
	state.termSizeFunc = termSizeFunc

	layout := handle.Layout()
	aspect := layout.Width / (layout.Height / 2)

	// Create canvas with clamped dimensions for max render resolution
	termWidth, termHeight, _ := draw.TerminalSizeRawWith(termSizeFunc)
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight, aspect)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, layout.Width, layout.Height)
	canvas.SetOffset(offsetCol, offsetRow)
	chunkWriter := draw.NewChunkWriter(w, offsetCol, offsetRow)

	return &Client{
		server:       gs,
		handle:       handle,
		state:        state,
		canvas:       canvas,
		chunkWriter:  chunkWriter,
		reader:       r,
		writer:       w,
		lastInput:    time.Now(),
		inputStream:  input.StartStream(r),
		username:     username,
		termSizeFunc: termSizeFunc,
		sound:        opts.Sound,
		table:        object.Table{FadeDuration: config.IconFadeDuration},
		aspect:       aspect,
	}, nil
}

// Run starts the client loop. Blocks until the client disconnects or server stops.
func (c *Client) Run() error {
	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	draw.EnableFocusReports(c.writer)
	defer draw.DisableFocusReports(c.writer)
	draw.ClearScreen(c.writer)

	defer c.effects.Reset()

	lastTime := time.Now()

	for c.state.Running {
		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		// Process input
		c.processInput()

		// Check for server events
		c.processServerEvents()

		// Handle screen resize
		c.updateScreen()

		// Handle game state
		snap := c.handle.Snapshot()
		switch c.state.GameState {
		case GameStateStart:
			c.updateStartState()
		case GameStatePlaying:
			c.updatePlayingState(snap)
		case GameStateDrained:
			c.updateDrainedState(snap)
		case GameStatePaused:
			c.updatePausedState()
		case GameStateShutdown:
			c.updateShutdownState()
		}

		if err := c.effects.Update(c.state.delta); err != nil {
			return fmt.Errorf("update effects: %w", err)
		}

		// Draw frame
		if err := c.drawFrame(snap); err != nil {
			return err
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	// Unregister from server
	c.server.UnregisterClient(c.handle.ID)

	draw.ClearScreen(c.writer)
	return nil
}

// processInput reads input and forwards held keys to the server.
func (c *Client) processInput() {
	c.state.Input = input.ReadInput(c.inputStream)
	in := c.state.Input

	if in.Activity {
		c.lastInput = time.Now()
		c.state.isInactive = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityDisconnectUser {
		c.state.Running = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityWarnUser {
		c.state.isInactive = true
	}

	if in.Quit {
		c.state.Running = false
	}

	switch in.Focus {
	case input.FocusLost:
		if c.state.GameState == GameStatePlaying || c.state.GameState == GameStateDrained {
			c.pause(true)
		}
	case input.FocusGained:
		if c.state.GameState == GameStatePaused && c.state.autoPaused {
			c.resume()
		}
	}

	if c.state.GameState == GameStatePlaying || c.state.GameState == GameStateDrained {
		c.server.SendInput(c.handle.ID, in.Raw())
	}
}

// processServerEvents handles events from the server.
func (c *Client) processServerEvents() {
	for {
		select {
		case event, ok := <-c.handle.EventsCh:
			if !ok {
				// Server closed the channel
				c.state.Running = false
				return
			}
			switch event.Type {
			case server.EventTable:
				c.handleTableEvents(event.Result)
			case server.EventServerShutdown:
				c.state.GameState = GameStateShutdown
				c.state.shutdownTimer = config.ShutdownDisplaySeconds
			}
		default:
			return
		}
	}
}

// handleTableEvents spawns effects and plays sounds for a tick's events.
func (c *Client) handleTableEvents(res pinball.TickResult) {
	snap := c.handle.Snapshot()
	for _, e := range res.Events {
		switch e.Type {
		case pinball.EventBumperHit:
			if e.Index >= 0 && e.Index < len(snap.Bumpers) {
				b := snap.Bumpers[e.Index]
				object.SpawnSparks(b.Pos.X, b.Pos.Y, config.SparkCount, config.SparkSpeed, config.SparkLifetime, &c.effects)
			}
		case pinball.EventFlipperHit:
			ball := snap.Ball
			object.SpawnKick(ball.Pos.X, ball.Pos.Y, math.Atan2(ball.Vel.Y, ball.Vel.X), &c.effects)
		}
	}
	if c.sound != nil {
		c.sound.Play(res)
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area (e.g. old borders or offset content).
func (c *Client) updateScreen() {
	termWidth, termHeight, err := draw.TerminalSizeRawWith(c.termSizeFunc)
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight, c.aspect)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		draw.ClearScreen(c.writer)
		c.canvas.ForceRedraw()
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// clampTermSize fits the table's aspect ratio into the terminal, no larger
// than the max render resolution, and computes the centering offset.
// aspect is table columns per row.
func clampTermSize(termWidth, termHeight int, aspect float64) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, config.MaxTermWidth)
	renderHeight = min(termHeight, config.MaxTermHeight)

	if aspect > 0 && renderWidth > 0 && renderHeight > 0 {
		if w := int(math.Round(float64(renderHeight) * aspect)); w < renderWidth {
			renderWidth = max(w, 1)
		} else {
			renderHeight = max(int(math.Round(float64(renderWidth)/aspect)), 1)
		}
	}

	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

// updateStartState handles the start screen.
func (c *Client) updateStartState() {
	if c.state.Input.Launch {
		c.startGame()
	}
}

// startGame restores the playfield and unfreezes the table.
func (c *Client) startGame() {
	c.inputStream.ResetKeys()
	c.effects.Reset()
	c.server.SendCommand(c.handle.ID, server.CommandReset)
	c.server.SendCommand(c.handle.ID, server.CommandResume)
	c.state.GameState = GameStatePlaying
}

// updatePlayingState handles the playing state.
func (c *Client) updatePlayingState(snap *pinball.Snapshot) {
	switch {
	case c.state.Input.Reset:
		c.startGame()
	case c.state.Input.Pause:
		c.pause(false)
	case snap.Drained:
		c.state.GameState = GameStateDrained
	}
}

// updateDrainedState waits for the launch that brings the ball back.
// The launch press itself is forwarded to the table by processInput.
func (c *Client) updateDrainedState(snap *pinball.Snapshot) {
	switch {
	case c.state.Input.Reset:
		c.startGame()
	case c.state.Input.Pause:
		c.pause(false)
	case !snap.Drained:
		c.state.GameState = GameStatePlaying
	}
}

// updatePausedState resumes on a second pause press.
func (c *Client) updatePausedState() {
	if c.state.Input.Pause || (c.state.autoPaused && c.state.Input.Launch) {
		c.resume()
	}
}

func (c *Client) pause(auto bool) {
	c.server.SendCommand(c.handle.ID, server.CommandPause)
	c.state.autoPaused = auto
	c.state.GameState = GameStatePaused
}

func (c *Client) resume() {
	c.inputStream.ResetKeys()
	c.server.SendCommand(c.handle.ID, server.CommandResume)
	c.state.autoPaused = false
	// The next frame's snapshot moves a drained table back to GameStateDrained.
	c.state.GameState = GameStatePlaying
}

// updateShutdownState handles the shutdown screen countdown.
func (c *Client) updateShutdownState() {
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}
