package config

import (
	"fmt"
	"os"
	"strconv"

	"antgen.dev/internal/generation"
)

// Config holds all application configuration
type Config struct {
	ServerAddr          string
	TilesPath           string // empty means the built-in set
	DefaultVillages     int
	UnlimitedCorruption bool
	Tiles               TileSet
}

// Load reads configuration from the environment and loads the tile set
func Load() (*Config, error) {
	cfg := &Config{
		ServerAddr:      os.Getenv("SERVER_ADDR"),
		TilesPath:       os.Getenv("TILES_PATH"),
		DefaultVillages: 3,
	}
	if cfg.ServerAddr == "" {
		cfg.ServerAddr = ":8080"
	}

	if v := os.Getenv("DEFAULT_VILLAGES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("DEFAULT_VILLAGES: want a positive integer, got %q", v)
		}
		cfg.DefaultVillages = n
	}
	if v := os.Getenv("UNLIMITED_CORRUPTION"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("UNLIMITED_CORRUPTION: %w", err)
		}
		cfg.UnlimitedCorruption = b
	}

	if cfg.TilesPath == "" {
		cfg.Tiles = DefaultTiles()
		return cfg, nil
	}
	tiles, err := LoadTiles(cfg.TilesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load tiles: %w", err)
	}
	cfg.Tiles = tiles
	return cfg, nil
}

// RegistryOptions returns the registry options implied by the config
func (c *Config) RegistryOptions() []generation.RegistryOption {
	var opts []generation.RegistryOption
	if c.UnlimitedCorruption {
		opts = append(opts, generation.WithUnlimitedCorruption())
	}
	return opts
}
