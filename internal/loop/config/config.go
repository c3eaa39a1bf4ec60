// Package config centralizes the host-side tunables of the terminal client.
// Table physics live in pinball.Config.
package config

import "time"

// Max render resolution in terminal cells. Larger terminals get a centred,
// bordered render area.
const (
	MaxTermWidth  = 200
	MaxTermHeight = 70
)

// Player
const (
	MaxUsernameLength = 16 // Maximum display length for player usernames
)

// Table effects
const (
	IconFadeDuration = 400 * time.Millisecond // Consumed bumper label fade-in
	SparkCount       = 10
	SparkSpeed       = 300.0 // Table units per second
	SparkLifetime    = 0.4   // Seconds
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)
