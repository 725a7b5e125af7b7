// Package config loads server configuration from the environment.
// Simulation constants live in the pet domain package; this only covers
// the operational surface (listen address, database path).
package config

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/marissaabao/tamagotchi/internal/platform/logger"
)

// Config holds the server's operational settings.
type Config struct {
	ListenAddr string
	DBPath     string
}

// Load reads an optional .env file and environment overrides, falling back
// to defaults suitable for local play.
func Load(log *logger.Logger) Config {
	if err := godotenv.Load(); err == nil {
		log.Info("Loaded environment overrides from .env")
	}

	cfg := Config{
		ListenAddr: ":8080",
		DBPath:     "pet.db",
	}
	if v := os.Getenv("PET_LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("PET_DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	return cfg
}
