package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appengine-ltd/weathervane/internal/weather"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "weathervane.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadValidFile(t *testing.T) {
	path := writeConfig(t, `
biomes:
  - id: wasteland
    dwell_minutes: {min: 1, max: 4}
    weights:
      clear: 0.6
      sandstorm: 0.3
      cloudy: 0.1
tuning:
  hop_duration_seconds: 3.5
  wind:
    direction: [1, 0, 0.5]
    base_speed: 12
    turbulence: 0.8
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	biome, ok := cfg.Biome("wasteland")
	require.True(t, ok)
	assert.Equal(t, "wasteland", biome.ID)
	assert.Equal(t, time.Minute, biome.MinDwell)
	assert.Equal(t, 4*time.Minute, biome.MaxDwell)
	require.NoError(t, biome.Validate())

	ctrlCfg := cfg.ControllerConfig()
	assert.Equal(t, 3500*time.Millisecond, ctrlCfg.HopDuration)
	assert.Equal(t, 12.0, ctrlCfg.Wind.BaseSpeed)
}

func TestLoadRejectsBadWeightSum(t *testing.T) {
	path := writeConfig(t, `
biomes:
  - id: broken
    dwell_minutes: {min: 1, max: 2}
    weights:
      clear: 0.5
      rain: 0.3
`)
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadRejectsUnknownState(t *testing.T) {
	path := writeConfig(t, `
biomes:
  - id: broken
    dwell_minutes: {min: 1, max: 2}
    weights:
      monsoon: 1.0
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "monsoon")
}

func TestLoadRejectsDuplicateBiome(t *testing.T) {
	path := writeConfig(t, `
biomes:
  - id: twice
    dwell_minutes: {min: 1, max: 2}
    weights: {clear: 1.0}
  - id: twice
    dwell_minutes: {min: 1, max: 2}
    weights: {clear: 1.0}
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestBiomeFallsBackToBuiltins(t *testing.T) {
	cfg := &Config{}
	biome, ok := cfg.Biome("arctic")
	require.True(t, ok)
	assert.Equal(t, "arctic", biome.ID)
}

func TestProfileOrdersWeightsByCatalog(t *testing.T) {
	b := BiomeConfig{
		ID:    "ordered",
		Dwell: DwellConfig{Min: 1, Max: 2},
		Weights: map[string]float64{
			"storm": 0.2,
			"clear": 0.5,
			"rain":  0.3,
		},
	}
	profile, err := b.Profile()
	require.NoError(t, err)
	require.Len(t, profile.Weights, 3)
	assert.Equal(t, weather.StateClear, profile.Weights[0].State)
	assert.Equal(t, weather.StateRain, profile.Weights[1].State)
	assert.Equal(t, weather.StateStorm, profile.Weights[2].State)
}
