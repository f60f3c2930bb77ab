// Package config loads the game's YAML configuration.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Log     Log     `yaml:"log"`
	Frame   Frame   `yaml:"frame"`
	Shield  Shield  `yaml:"shield"`
	Removal Removal `yaml:"removal"`
	Score   Score   `yaml:"score"`
	Window  Window  `yaml:"window"`
	Storage Storage `yaml:"storage"`
}

type Log struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

type Frame struct {
	// TickRate is the number of fixed updates per second for headless hosts.
	TickRate    int  `yaml:"tickRate"`
	HaltOnFault bool `yaml:"haltOnFault"`
}

type Shield struct {
	Cooldown   float64 `yaml:"cooldown"`
	ActiveTime float64 `yaml:"activeTime"`
	AutoRearm  bool    `yaml:"autoRearm"`
	RankBonus  int     `yaml:"rankBonus"`
}

type Removal struct {
	DeathDelay float64 `yaml:"deathDelay"`
}

type Score struct {
	PointsPerSecond float64 `yaml:"pointsPerSecond"`
}

type Window struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type Storage struct {
	AppName string `yaml:"appName"`
}

// Default returns the configuration used when no file overrides it.
func Default() Config {
	return Config{
		Log: Log{Level: "info"},
		Frame: Frame{
			TickRate: 60,
		},
		Shield: Shield{
			Cooldown:   5.0,
			ActiveTime: 1.0,
			AutoRearm:  true,
			RankBonus:  1,
		},
		Removal: Removal{DeathDelay: 0.5},
		Score:   Score{PointsPerSecond: 100},
		Window: Window{
			Width:  480,
			Height: 800,
			Title:  "Space Courier",
		},
		Storage: Storage{AppName: "spacecourier"},
	}
}

// Load reads a YAML file over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Decode parses YAML from r over the defaults and validates the result.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the game cannot run with.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
		}
	}

	check(c.Frame.TickRate > 0, "frame.tickRate must be positive, got %d", c.Frame.TickRate)
	check(c.Shield.Cooldown > 0, "shield.cooldown must be positive, got %v", c.Shield.Cooldown)
	check(c.Shield.ActiveTime > 0, "shield.activeTime must be positive, got %v", c.Shield.ActiveTime)
	check(c.Shield.RankBonus >= 0, "shield.rankBonus must not be negative, got %d", c.Shield.RankBonus)
	check(c.Removal.DeathDelay >= 0, "removal.deathDelay must not be negative, got %v", c.Removal.DeathDelay)
	check(c.Score.PointsPerSecond > 0, "score.pointsPerSecond must be positive, got %v", c.Score.PointsPerSecond)
	check(c.Window.Width > 0 && c.Window.Height > 0, "window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	check(c.Storage.AppName != "", "storage.appName must be set")

	return errors.Join(errs...)
}
