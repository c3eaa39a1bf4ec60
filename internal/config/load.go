package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/tomz197/pinball/internal/pinball"
)

// Environment variables read by every binary.
const (
	EnvTuningFile = "PINBALL_TUNING"
	EnvLogLevel   = "PINBALL_LOG_LEVEL"
)

// Load reads a .env file from the working directory into the environment.
// A missing file is not an error; variables already set win.
func Load() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// Table returns the table config: defaults, overlaid with the YAML file
// named by PINBALL_TUNING when set, then validated.
func Table() (pinball.Config, error) {
	path := GetEnv(EnvTuningFile, "")
	if path == "" {
		return pinball.DefaultConfig(), nil
	}
	cfg, err := LoadTuningFile(path)
	if err != nil {
		return pinball.Config{}, err
	}
	log.Info("Loaded table tuning", "path", path)
	return cfg, nil
}

// LoadTuningFile overlays the YAML file at path on the default config.
func LoadTuningFile(path string) (pinball.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return pinball.Config{}, fmt.Errorf("open tuning file: %w", err)
	}
	defer f.Close()
	return LoadTuning(f)
}

// LoadTuning overlays YAML from r on the default config. Keys left out keep
// their default value; unknown keys are rejected.
func LoadTuning(r io.Reader) (pinball.Config, error) {
	cfg := pinball.DefaultConfig()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return pinball.Config{}, fmt.Errorf("decode tuning: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return pinball.Config{}, fmt.Errorf("tuning: %w", err)
	}
	return cfg, nil
}
