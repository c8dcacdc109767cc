// Package config loads the server configuration from TOML. Every
// field has a default; a config file only has to name what it changes.
package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/op/go-logging"

	"github.com/liamiak1/hyper-fairy-chess/internal/board"
)

// Duration parses TOML strings like "90s" or "5m".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler for toml.
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// Server configures the HTTP listener.
type Server struct {
	Listen string `toml:"listen"`
}

// Rooms configures room lifecycle housekeeping.
type Rooms struct {
	SweepInterval Duration `toml:"sweep_interval"`
	TTL           Duration `toml:"ttl"`
}

// Defaults are the room settings used when a creation request leaves
// them out.
type Defaults struct {
	Budget         int    `toml:"budget"`
	BoardSize      string `toml:"board_size"`
	DraftTimeLimit int    `toml:"draft_time_limit"`
}

// Archive configures on-disk game storage. An empty Dir disables
// archiving.
type Archive struct {
	Dir string `toml:"dir"`
}

// Log configures the logging backend.
type Log struct {
	Level string `toml:"level"`
}

// Config is the full server configuration.
type Config struct {
	Server   Server   `toml:"server"`
	Rooms    Rooms    `toml:"rooms"`
	Defaults Defaults `toml:"defaults"`
	Archive  Archive  `toml:"archive"`
	Log      Log      `toml:"log"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: Server{
			Listen: ":8080",
		},
		Rooms: Rooms{
			SweepInterval: Duration{5 * time.Minute},
			TTL:           Duration{time.Hour},
		},
		Defaults: Defaults{
			Budget:         400,
			BoardSize:      "8x8",
			DraftTimeLimit: 120,
		},
		Archive: Archive{
			Dir: "",
		},
		Log: Log{
			Level: "info",
		},
	}
}

// Load reads the file at path over the defaults. An empty path means
// defaults only.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects values the server cannot run with.
func (c *Config) Validate() error {
	if c.Server.Listen == "" {
		return fmt.Errorf("server.listen must be set")
	}
	if c.Rooms.SweepInterval.Duration <= 0 {
		return fmt.Errorf("rooms.sweep_interval must be positive, got %s", c.Rooms.SweepInterval)
	}
	if c.Rooms.TTL.Duration <= 0 {
		return fmt.Errorf("rooms.ttl must be positive, got %s", c.Rooms.TTL)
	}
	if c.Defaults.Budget <= 0 {
		return fmt.Errorf("defaults.budget must be positive, got %d", c.Defaults.Budget)
	}
	if _, err := board.ParseSize(c.Defaults.BoardSize); err != nil {
		return fmt.Errorf("defaults.board_size: %w", err)
	}
	if c.Defaults.DraftTimeLimit <= 0 {
		return fmt.Errorf("defaults.draft_time_limit must be positive, got %d", c.Defaults.DraftTimeLimit)
	}
	if _, err := logging.LogLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}
