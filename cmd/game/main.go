package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/tomz197/pinball/internal/audio"
	"github.com/tomz197/pinball/internal/config"
	"github.com/tomz197/pinball/internal/loop"
)

func main() {
	if err := config.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger := config.SetupLogger(os.Stderr, "pinball")

	table, err := config.Table()
	if err != nil {
		logger.Fatal("Invalid table config", "err", err)
	}

	opts := loop.Options{
		Table:    table,
		Username: config.GetEnv("USER", ""),
	}
	if config.GetEnvBool("PINBALL_SOUND", true) {
		sm := audio.NewSoundManager()
		if err := sm.Initialize(); err != nil {
			log.Warn("Sound disabled", "err", err)
		} else {
			defer sm.Cleanup()
			opts.Sound = sm
		}
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	reader := bufio.NewReader(os.Stdin)
	if err := loop.Run(reader, os.Stdout, opts); err != nil {
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}
