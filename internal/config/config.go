// Package config loads runtime settings from defaults, a .starward.yaml
// file, STARWARD_* environment variables and command-line flags.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/litescript/starward/internal/astro"
)

// Output formats.
const (
	FormatAuto   = "auto" // styled on a terminal, plain otherwise
	FormatPlain  = "plain"
	FormatJSON   = "json"
	FormatStyled = "styled"
)

// Config holds all runtime configuration for a starward session.
type Config struct {
	Observer          string  `mapstructure:"observer"`
	Profiles          string  `mapstructure:"profiles"`
	LogLevel          string  `mapstructure:"log_level"`
	Format            string  `mapstructure:"format"`
	Twilight          string  `mapstructure:"twilight"`
	MinAltitude       float64 `mapstructure:"min_altitude"`
	MinMoonSeparation float64 `mapstructure:"min_moon_separation"`
	Verbose           bool    `mapstructure:"verbose"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	viper.SetDefault("observer", "")
	viper.SetDefault("profiles", "")
	viper.SetDefault("log_level", "warn")
	viper.SetDefault("format", FormatAuto)
	viper.SetDefault("twilight", "astronomical")
	viper.SetDefault("min_altitude", 20.0)
	viper.SetDefault("min_moon_separation", 30.0)
	viper.SetDefault("verbose", false)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	cfg.Format = strings.ToLower(cfg.Format)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks enumerated and bounded settings.
func (c Config) Validate() error {
	switch c.Format {
	case FormatAuto, FormatPlain, FormatJSON, FormatStyled:
	default:
		return fmt.Errorf("invalid format %q: want auto, plain, json or styled", c.Format)
	}
	if _, err := astro.ParseTwilight(c.Twilight); err != nil {
		return fmt.Errorf("invalid twilight: %w", err)
	}
	if c.MinAltitude < -90 || c.MinAltitude > 90 {
		return fmt.Errorf("min_altitude %g outside [-90, 90]", c.MinAltitude)
	}
	if c.MinMoonSeparation < 0 || c.MinMoonSeparation > 180 {
		return fmt.Errorf("min_moon_separation %g outside [0, 180]", c.MinMoonSeparation)
	}
	return nil
}

// VisibilityOptions returns the core options these settings select.
func (c Config) VisibilityOptions() astro.VisibilityOptions {
	tw, err := astro.ParseTwilight(c.Twilight)
	if err != nil {
		tw = astro.TwilightAstronomical
	}
	return astro.VisibilityOptions{MinAltitude: c.MinAltitude, Twilight: tw}
}
