// Package loop runs a single local game: an in-process table server and
// one terminal client attached to it.
package loop

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/tomz197/pinball/internal/loop/client"
	"github.com/tomz197/pinball/internal/loop/server"
	"github.com/tomz197/pinball/internal/pinball"
)

// Options configures a local game.
type Options struct {
	Table    pinball.Config
	Username string
	Sound    client.SoundPlayer // Optional
}

// Run plays on a local server until the player quits.
func Run(r *bufio.Reader, w io.Writer, opts Options) error {
	srv, err := server.NewServer(opts.Table)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go srv.Run(ctx)

	c, err := client.NewClient(srv, r, w, client.ClientOptions{
		Username: opts.Username,
		Sound:    opts.Sound,
	})
	if err != nil {
		return err
	}
	if err := c.Run(); err != nil {
		return fmt.Errorf("client: %w", err)
	}
	return nil
}
