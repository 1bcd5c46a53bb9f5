package weather

import (
	"fmt"
	"math"
	"time"
)

const weightTolerance = 1e-6

// StateWeight is one entry of a biome's probability distribution. Weights
// are kept in an ordered slice so cumulative sampling is deterministic.
type StateWeight struct {
	State  State
	Weight float64
}

// BiomeProfile describes an environment archetype: how often each
// condition occurs there and how long the sky dwells between changes.
// Immutable once validated.
type BiomeProfile struct {
	ID       string
	Weights  []StateWeight
	MinDwell time.Duration
	MaxDwell time.Duration
}

// Validate checks the invariants the scheduler relies on: known states,
// no duplicates, weights summing to 1 within tolerance, and a sane dwell
// interval.
func (b BiomeProfile) Validate() error {
	if b.ID == "" {
		return fmt.Errorf("%w: biome with empty id", ErrConfiguration)
	}
	if len(b.Weights) == 0 {
		return fmt.Errorf("%w: biome %q has no weights", ErrConfiguration, b.ID)
	}
	seen := map[State]bool{}
	sum := 0.0
	for _, w := range b.Weights {
		if !KnownState(w.State) {
			return fmt.Errorf("%w: biome %q weights unknown state %q", ErrConfiguration, b.ID, w.State)
		}
		if seen[w.State] {
			return fmt.Errorf("%w: biome %q weights %q twice", ErrConfiguration, b.ID, w.State)
		}
		if w.Weight < 0 {
			return fmt.Errorf("%w: biome %q has negative weight for %q", ErrConfiguration, b.ID, w.State)
		}
		seen[w.State] = true
		sum += w.Weight
	}
	if math.Abs(sum-1) > weightTolerance {
		return fmt.Errorf("%w: biome %q weights sum to %.6f, want 1", ErrConfiguration, b.ID, sum)
	}
	if b.MinDwell <= 0 || b.MaxDwell < b.MinDwell {
		return fmt.Errorf("%w: biome %q dwell interval [%s, %s] invalid", ErrConfiguration, b.ID, b.MinDwell, b.MaxDwell)
	}
	return nil
}

// BuiltinBiomes returns the authored archetype set.
func BuiltinBiomes() []BiomeProfile {
	return []BiomeProfile{
		desertBiome(),
		arcticBiome(),
		temperateBiome(),
		tropicalBiome(),
		mountainBiome(),
		coastalBiome(),
	}
}

// BiomeByID finds a built-in profile by id.
func BiomeByID(id string) (BiomeProfile, bool) {
	for _, b := range BuiltinBiomes() {
		if b.ID == id {
			return b, true
		}
	}
	return BiomeProfile{}, false
}

func desertBiome() BiomeProfile {
	return BiomeProfile{
		ID: "desert",
		Weights: []StateWeight{
			{State: StateClear, Weight: 0.52},
			{State: StateCloudy, Weight: 0.16},
			{State: StateSandstorm, Weight: 0.14},
			{State: StateOvercast, Weight: 0.06},
			{State: StateDrizzle, Weight: 0.05},
			{State: StateRain, Weight: 0.04},
			{State: StateStorm, Weight: 0.03},
		},
		MinDwell: 3 * time.Minute,
		MaxDwell: 9 * time.Minute,
	}
}

func arcticBiome() BiomeProfile {
	return BiomeProfile{
		ID: "arctic",
		Weights: []StateWeight{
			{State: StateSnow, Weight: 0.26},
			{State: StateOvercast, Weight: 0.20},
			{State: StateLightSnow, Weight: 0.18},
			{State: StateBlizzard, Weight: 0.12},
			{State: StateCloudy, Weight: 0.10},
			{State: StateClear, Weight: 0.08},
			{State: StateFog, Weight: 0.06},
		},
		MinDwell: 2 * time.Minute,
		MaxDwell: 6 * time.Minute,
	}
}

func temperateBiome() BiomeProfile {
	return BiomeProfile{
		ID: "temperate",
		Weights: []StateWeight{
			{State: StateClear, Weight: 0.22},
			{State: StateCloudy, Weight: 0.22},
			{State: StateOvercast, Weight: 0.14},
			{State: StateDrizzle, Weight: 0.10},
			{State: StateRain, Weight: 0.14},
			{State: StateHeavyRain, Weight: 0.06},
			{State: StateStorm, Weight: 0.04},
			{State: StateFog, Weight: 0.05},
			{State: StateLightSnow, Weight: 0.03},
		},
		MinDwell: 2 * time.Minute,
		MaxDwell: 8 * time.Minute,
	}
}

func tropicalBiome() BiomeProfile {
	return BiomeProfile{
		ID: "tropical",
		Weights: []StateWeight{
			{State: StateCloudy, Weight: 0.18},
			{State: StateRain, Weight: 0.26},
			{State: StateHeavyRain, Weight: 0.18},
			{State: StateStorm, Weight: 0.12},
			{State: StateClear, Weight: 0.12},
			{State: StateOvercast, Weight: 0.08},
			{State: StateDrizzle, Weight: 0.06},
		},
		MinDwell: 1 * time.Minute,
		MaxDwell: 5 * time.Minute,
	}
}

func mountainBiome() BiomeProfile {
	return BiomeProfile{
		ID: "mountain",
		Weights: []StateWeight{
			{State: StateClear, Weight: 0.18},
			{State: StateCloudy, Weight: 0.20},
			{State: StateOvercast, Weight: 0.14},
			{State: StateFog, Weight: 0.10},
			{State: StateRain, Weight: 0.10},
			{State: StateStorm, Weight: 0.06},
			{State: StateLightSnow, Weight: 0.12},
			{State: StateSnow, Weight: 0.07},
			{State: StateBlizzard, Weight: 0.03},
		},
		MinDwell: 1 * time.Minute,
		MaxDwell: 4 * time.Minute,
	}
}

func coastalBiome() BiomeProfile {
	return BiomeProfile{
		ID: "coastal",
		Weights: []StateWeight{
			{State: StateCloudy, Weight: 0.24},
			{State: StateRain, Weight: 0.20},
			{State: StateClear, Weight: 0.16},
			{State: StateOvercast, Weight: 0.12},
			{State: StateFog, Weight: 0.10},
			{State: StateHeavyRain, Weight: 0.08},
			{State: StateDrizzle, Weight: 0.06},
			{State: StateStorm, Weight: 0.04},
		},
		MinDwell: 2 * time.Minute,
		MaxDwell: 7 * time.Minute,
	}
}
