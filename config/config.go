// Package config loads the application configuration from the environment.
package config

import (
	"log"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the application configuration. Every field carries a default,
// so an empty environment is a valid one.
type Config struct {
	// DataDir is the directory holding the ledger files.
	DataDir string `env:"SML_DATA" envDefault:"."`
	// Currency is assumed for amounts given without one.
	Currency string `env:"SML_CURRENCY" envDefault:"INR"`
	Log      Log
}

// Log configures the logger.
type Log struct {
	// Level is the minimum level written: debug, info, warn or error.
	Level string `env:"SML_LOG_LEVEL" envDefault:"warn"`
	// File receives a rotated copy of the log when set.
	File string `env:"SML_LOG_FILE"`
}

// MustLoad reads the configuration from the environment, loading a .env file
// first when one is present. It exits on a malformed environment.
func MustLoad() *Config {
	_ = godotenv.Load(".env")

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("parse config error: %s", err)
	}

	return cfg
}
