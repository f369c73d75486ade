// Package config loads runtime settings from the environment and an
// optional .env file.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Default settings used when the environment leaves them unset.
const (
	DefaultPort            = 8080
	DefaultSampleRate      = 44100
	DefaultTempo           = 120.0
	DefaultTicksPerQuarter = 480
	DefaultVelocity        = 64
)

// Config holds the application configuration
type Config struct {
	// Environment
	Environment string
	Port        int

	// Rendering
	SampleRate      int     // WAV sample rate in Hz
	Tempo           float64 // quarter notes per minute
	TicksPerQuarter int     // MIDI resolution
	Velocity        int     // MIDI note-on velocity

	// Playback command override, e.g. "paplay"
	Player string

	// Observability
	SentryDSN string
}

// LoadDotEnv reads .env style files into the process environment. With no
// paths it reads ./.env. Variables already set are left alone.
func LoadDotEnv(paths ...string) error {
	return godotenv.Load(paths...)
}

// Load reads the configuration from MUCO_* variables and SENTRY_DSN.
func Load() *Config {
	return &Config{
		Environment:     getEnv("MUCO_ENVIRONMENT", "development"),
		Port:            getEnvInt("MUCO_PORT", DefaultPort),
		SampleRate:      getEnvInt("MUCO_SAMPLE_RATE", DefaultSampleRate),
		Tempo:           getEnvFloat("MUCO_TEMPO", DefaultTempo),
		TicksPerQuarter: getEnvInt("MUCO_TICKS_PER_QUARTER", DefaultTicksPerQuarter),
		Velocity:        getEnvInt("MUCO_VELOCITY", DefaultVelocity),
		Player:          getEnv("MUCO_PLAYER", ""),
		SentryDSN:       getEnv("SENTRY_DSN", ""),
	}
}

// IsProduction reports whether the environment is "production".
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil && v > 0 {
		return v
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if v, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil && v > 0 {
		return v
	}
	return defaultValue
}
