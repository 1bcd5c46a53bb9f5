// Package config loads the optional YAML override file: biome profiles
// plus engine tuning. The compiled-in tables stay authoritative for the
// catalog, adjacency and routes; the file only shapes scheduling and the
// wind field. All validation happens at load, so a bad file never reaches
// a running controller.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/appengine-ltd/weathervane/internal/weather"
)

type Config struct {
	Biomes []BiomeConfig `yaml:"biomes"`
	Tuning TuningConfig  `yaml:"tuning"`
}

type BiomeConfig struct {
	ID      string             `yaml:"id"`
	Dwell   DwellConfig        `yaml:"dwell_minutes"`
	Weights map[string]float64 `yaml:"weights"`
}

type DwellConfig struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

type TuningConfig struct {
	HopDurationSeconds float64    `yaml:"hop_duration_seconds"`
	Wind               WindConfig `yaml:"wind"`
}

type WindConfig struct {
	Direction  [3]float64 `yaml:"direction"`
	BaseSpeed  float64    `yaml:"base_speed"`
	Turbulence float64    `yaml:"turbulence"`
}

// Load reads and validates path. The zero Config (no biomes, zero tuning)
// is valid: callers fall back to built-ins field by field.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	seen := map[string]bool{}
	for _, b := range c.Biomes {
		if seen[b.ID] {
			return fmt.Errorf("config: duplicate biome id %q", b.ID)
		}
		seen[b.ID] = true
		if _, err := b.Profile(); err != nil {
			return err
		}
	}
	if c.Tuning.HopDurationSeconds < 0 {
		return fmt.Errorf("config: hop_duration_seconds must be positive, got %.3f", c.Tuning.HopDurationSeconds)
	}
	return nil
}

// Profile converts the YAML shape into a validated weather.BiomeProfile.
func (b BiomeConfig) Profile() (weather.BiomeProfile, error) {
	weights := make([]weather.StateWeight, 0, len(b.Weights))
	// Catalog order keeps cumulative sampling deterministic regardless of
	// YAML map iteration.
	for _, s := range weather.AllStates() {
		if w, ok := b.Weights[string(s)]; ok {
			weights = append(weights, weather.StateWeight{State: s, Weight: w})
		}
	}
	if len(weights) != len(b.Weights) {
		for name := range b.Weights {
			if !weather.KnownState(weather.State(name)) {
				return weather.BiomeProfile{}, fmt.Errorf("config: biome %q weights unknown state %q", b.ID, name)
			}
		}
	}
	profile := weather.BiomeProfile{
		ID:       b.ID,
		Weights:  weights,
		MinDwell: time.Duration(b.Dwell.Min * float64(time.Minute)),
		MaxDwell: time.Duration(b.Dwell.Max * float64(time.Minute)),
	}
	if err := profile.Validate(); err != nil {
		return weather.BiomeProfile{}, err
	}
	return profile, nil
}

// ControllerConfig maps tuning onto a weather.ControllerConfig, leaving
// zero fields for NewController's defaults.
func (c *Config) ControllerConfig() weather.ControllerConfig {
	out := weather.ControllerConfig{}
	if c.Tuning.HopDurationSeconds > 0 {
		out.HopDuration = time.Duration(c.Tuning.HopDurationSeconds * float64(time.Second))
	}
	w := c.Tuning.Wind
	out.Wind = weather.WindConfig{
		Direction:  weather.Vec3{X: w.Direction[0], Y: w.Direction[1], Z: w.Direction[2]},
		BaseSpeed:  w.BaseSpeed,
		Turbulence: w.Turbulence,
	}
	return out
}

// Biome resolves id against the file's biomes first, then the built-ins.
func (c *Config) Biome(id string) (weather.BiomeProfile, bool) {
	for _, b := range c.Biomes {
		if b.ID == id {
			p, err := b.Profile()
			if err != nil {
				return weather.BiomeProfile{}, false
			}
			return p, true
		}
	}
	return weather.BiomeByID(id)
}
