// Package config centralizes the tunable game parameters that are not tied
// to a single entity type.
package config

import "time"

// Player lives and damage.
const (
	InitialLives          = 3
	InvulnerabilityFrames = 120 // frames of immunity after losing a life
)

// Collision broad phase. Must be >= the largest sum of two colliding radii
// (player hitbox 8 + largest meteor 28).
const GridCellSize = 40.0

// Background starfield.
const (
	StarCount = 60
	StarSize  = 2.0
	StarAlpha = 0.08
)

// Default playfield used before the first resize.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

// Player names
const (
	MaxUsernameLength = 16 // Maximum display length for player usernames
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90 * time.Second
	InactivityDisconnectUser = 120 * time.Second
)
