// Package config loads runtime settings from the environment and explosive
// and agent definitions from YAML
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/lixenwraith/wick/parameter"
)

// EnvPrefix is prepended to every variable name
const EnvPrefix = "WICK_"

// Config is the sandbox runtime configuration
type Config struct {
	Width  int    `env:"WIDTH" envDefault:"80"`
	Height int    `env:"HEIGHT" envDefault:"24"`
	Seed   uint64 `env:"SEED" envDefault:"1"`

	AudioEnabled bool `env:"AUDIO_ENABLED" envDefault:"true"`
	// MasterVolume is a base-2 gain applied to every sound, 0 is unity
	MasterVolume float64 `env:"MASTER_VOLUME" envDefault:"0"`

	// DefinitionsPath is a YAML definitions file; empty uses the built-in set
	DefinitionsPath string `env:"DEFS"`
	// WatchDefinitions reloads DefinitionsPath when it changes on disk
	WatchDefinitions bool `env:"WATCH" envDefault:"true"`

	SavePath string `env:"SAVE" envDefault:"wick-save.yaml"`
	Debug    bool   `env:"DEBUG"`
}

// Load reads WICK_* variables, applying defaults for unset ones
func Load() (Config, error) {
	return LoadFrom(nil)
}

// LoadFrom reads from the given environment map instead of the process
// environment when environ is non-nil
func LoadFrom(environ map[string]string) (Config, error) {
	var cfg Config
	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects unusable grid sizes and volumes
func (c Config) Validate() error {
	if c.Width < 8 || c.Height < 8 {
		return fmt.Errorf("config: grid %dx%d too small, minimum 8x8", c.Width, c.Height)
	}
	if c.Width*c.Height > parameter.MaxGridCells {
		return fmt.Errorf("config: grid %dx%d exceeds %d cells", c.Width, c.Height, parameter.MaxGridCells)
	}
	if c.MasterVolume < -10 || c.MasterVolume > 2 {
		return fmt.Errorf("config: master volume %v outside [-10, 2]", c.MasterVolume)
	}
	return nil
}
