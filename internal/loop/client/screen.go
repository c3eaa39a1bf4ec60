package client

import (
	"fmt"
	"time"

	"github.com/tomz197/pinball/internal/draw"
	"github.com/tomz197/pinball/internal/loop/config"
	"github.com/tomz197/pinball/internal/object"
	"github.com/tomz197/pinball/internal/pinball"
)

// drawFrame draws the current frame.
func (c *Client) drawFrame(snap *pinball.Snapshot) error {
	// On game state or inactivity transitions, do a full terminal clear
	// so UI elements from the previous state don't persist on screen.
	stateChanged := c.state.GameState != c.state.prevGameState
	inactiveChanged := c.state.isInactive != c.state.wasInactive
	if stateChanged || inactiveChanged {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.canvas.ForceRedraw()
		c.state.prevGameState = c.state.GameState
		c.state.wasInactive = c.state.isInactive
	}

	c.canvas.Clear()
	c.state.players = c.server.Players()

	ctx := object.DrawContext{
		Canvas: c.canvas,
		Writer: c.chunkWriter,
		Now:    time.Now(),
	}

	// The title and shutdown screens stand alone; everything else sits on the table.
	showTable := c.state.GameState != GameStateStart && c.state.GameState != GameStateShutdown && !c.state.isInactive
	if showTable {
		c.table.Snapshot = *snap
		if err := c.table.Draw(ctx); err != nil {
			return err
		}
		if err := c.effects.Draw(ctx); err != nil {
			return err
		}
	}

	// Render canvas to terminal
	c.canvas.Render(c.chunkWriter)

	// Draw border when terminal exceeds max render resolution
	c.canvas.RenderBorder(c.chunkWriter)

	// Text goes on top of the rendered canvas.
	if showTable {
		c.table.DrawLabels(ctx)
	}
	c.drawUI(ctx, snap)

	return c.chunkWriter.Flush()
}

// drawUI draws the game UI overlay.
func (c *Client) drawUI(ctx object.DrawContext, snap *pinball.Snapshot) {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerY := termHeight / 2

	if c.state.GameState == GameStateShutdown {
		c.drawShutdownScreen(ctx, termWidth, centerY)
		return
	}

	if c.state.isInactive {
		c.drawInactivityScreen(ctx, termWidth, centerY)
		return
	}

	switch c.state.GameState {
	case GameStateStart:
		c.drawStartScreen(ctx, termWidth, centerY)
	case GameStatePlaying:
		c.drawPlayingHUD(ctx, termWidth, snap)
	case GameStateDrained:
		c.drawPlayingHUD(ctx, termWidth, snap)
		c.drawDrainedScreen(ctx, termWidth, centerY, snap)
	case GameStatePaused:
		c.drawPlayingHUD(ctx, termWidth, snap)
		c.drawPausedScreen(ctx, termWidth, centerY)
	}
}

// lines writes each line centred, starting at row y.
func lines(ctx object.DrawContext, width, y int, text ...string) {
	for i, line := range text {
		object.Centered(width, y+i, line).DrawOn(ctx)
	}
}

// blinkOn reports the visible half of the prompt blink cycle.
func blinkOn() bool {
	return time.Now().UnixMilli()/600%2 == 0
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(ctx object.DrawContext, width, centerY int) {
	remaining := int(config.InactivityDisconnectUser - time.Since(c.lastInput).Seconds())
	lines(ctx, width, centerY-2,
		"INACTIVITY WARNING",
		"",
		fmt.Sprintf("You will be disconnected in %d seconds.", remaining),
		"",
		"Press any key to continue",
	)
}

// drawStartScreen draws the title screen.
func (c *Client) drawStartScreen(ctx object.DrawContext, width, centerY int) {
	// ASCII art title (figlet "small" font)
	titleArt := []string{
		` ___ _  _ ___ _    _      ___ ___ _  _ ___   _   _    _    `,
		`/ __| |/ /_ _| |  | |    | _ \_ _| \| | _ ) /_\ | |  | |   `,
		`\__ \ ' < | || |__| |__  |  _/| || .' | _ \/ _ \| |__| |__ `,
		`|___/_|\_\___|____|____| |_| |___|_|\_|___/_/ \_\____|____|`,
	}

	// Narrow terminals get a plain title.
	if len(titleArt[0]) > width {
		titleArt = []string{"SKILL PINBALL"}
	}

	titleStartY := centerY - 7
	for i, line := range titleArt {
		object.Text{X: (width-len(titleArt[0]))/2 + 1, Y: titleStartY + i, Value: line, Color: draw.ColorBrightCyan}.DrawOn(ctx)
	}

	controlsY := titleStartY + len(titleArt) + 2
	controls := []string{
		"Controls",
		"",
		"A / Left  . . .  Left flipper",
		"D / Right . . . Right flipper",
		"W / Up  . . . . . . . . Nudge",
		"SPACE . . . . . . . . Launch",
		"R . . . . . . . . . . . Reset",
		"P . . . . . . . . . . . Pause",
		"Q . . . . . . . . . . .  Quit",
	}
	lines(ctx, width, controlsY, controls...)

	// Blinking start prompt
	if blinkOn() {
		lines(ctx, width, controlsY+len(controls)+1, ">>  Press SPACE to Start  <<")
	}

	if c.username != "" {
		lines(ctx, width, controlsY+len(controls)+3, "Welcome, "+c.username)
	}
}

// drawPlayingHUD draws the in-game HUD.
// Text fields use fixed-width formatting so shrinking values don't leave
// residual characters on screen.
func (c *Client) drawPlayingHUD(ctx object.DrawContext, width int, snap *pinball.Snapshot) {
	hit := len(snap.Bumpers) - snap.ActiveBumpers()
	skills := fmt.Sprintf("Skills: %3d/%-3d", hit, len(snap.Bumpers))
	object.Text{X: 2, Y: 1, Value: skills}.DrawOn(ctx)

	players := fmt.Sprintf("Players: %-4d", c.state.players)
	object.Text{X: width - len(players), Y: 1, Value: players}.DrawOn(ctx)
}

// drawDrainedScreen draws the ball-lost overlay.
func (c *Client) drawDrainedScreen(ctx object.DrawContext, width, centerY int, snap *pinball.Snapshot) {
	lines(ctx, width, centerY-4, "BALL LOST")

	msg := fmt.Sprintf("%d of %d skills collected", len(snap.Bumpers)-snap.ActiveBumpers(), len(snap.Bumpers))
	if snap.ActiveBumpers() == 0 {
		msg = "Every skill collected!"
	}
	lines(ctx, width, centerY-2, msg)

	if blinkOn() {
		lines(ctx, width, centerY, ">>  SPACE to Launch  ·  R to Reset  <<")
	}
}

// drawPausedScreen draws the pause overlay.
func (c *Client) drawPausedScreen(ctx object.DrawContext, width, centerY int) {
	hint := "Press P to resume"
	if c.state.autoPaused {
		hint = "Paused while unfocused  ·  SPACE to resume"
	}
	lines(ctx, width, centerY-3, "PAUSED", "", hint)
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(ctx object.DrawContext, width, centerY int) {
	remaining := int(c.state.shutdownTimer) + 1
	lines(ctx, width, centerY-3,
		"SERVER SHUTTING DOWN",
		"",
		"The server is restarting for maintenance.",
		"Please reconnect in a moment.",
		"",
		fmt.Sprintf("Disconnecting in %d seconds...", remaining),
		"",
		"Press Q to disconnect now",
	)
}
