package config

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// SetupLogger configures the default charm logger writing to w, with the
// level from PINBALL_LOG_LEVEL (info when unset or invalid).
func SetupLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Prefix:          prefix,
	})

	if raw := GetEnv(EnvLogLevel, ""); raw != "" {
		level, err := log.ParseLevel(raw)
		if err != nil {
			logger.Warn("Invalid log level, using info", "value", raw)
		} else {
			logger.SetLevel(level)
		}
	}

	log.SetDefault(logger)
	return logger
}
