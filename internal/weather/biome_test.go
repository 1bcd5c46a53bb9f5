package weather

import (
	"errors"
	"testing"
	"time"
)

func TestBuiltinBiomesValidate(t *testing.T) {
	biomes := BuiltinBiomes()
	if len(biomes) == 0 {
		t.Fatal("no built-in biomes")
	}
	for _, b := range biomes {
		if err := b.Validate(); err != nil {
			t.Fatalf("biome %s: %v", b.ID, err)
		}
	}
}

func TestBiomeByID(t *testing.T) {
	if _, ok := BiomeByID("desert"); !ok {
		t.Fatal("desert biome missing")
	}
	if _, ok := BiomeByID("underworld"); ok {
		t.Fatal("unexpected biome match")
	}
}

func TestBiomeValidateRejectsBadWeightSum(t *testing.T) {
	b := BiomeProfile{
		ID: "broken",
		Weights: []StateWeight{
			{State: StateClear, Weight: 0.5},
			{State: StateRain, Weight: 0.4},
		},
		MinDwell: time.Minute,
		MaxDwell: 2 * time.Minute,
	}
	if err := b.Validate(); !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected configuration error for weight sum 0.9, got %v", err)
	}
}

func TestBiomeValidateRejectsUnknownState(t *testing.T) {
	b := BiomeProfile{
		ID: "broken",
		Weights: []StateWeight{
			{State: State("monsoon"), Weight: 1},
		},
		MinDwell: time.Minute,
		MaxDwell: 2 * time.Minute,
	}
	if err := b.Validate(); !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected configuration error for unknown state, got %v", err)
	}
}

func TestBiomeValidateRejectsBadDwell(t *testing.T) {
	b := BiomeProfile{
		ID: "broken",
		Weights: []StateWeight{
			{State: StateClear, Weight: 1},
		},
		MinDwell: 5 * time.Minute,
		MaxDwell: time.Minute,
	}
	if err := b.Validate(); !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected configuration error for inverted dwell interval, got %v", err)
	}
}

func TestDesertBiomeFavorsClearSkies(t *testing.T) {
	desert, _ := BiomeByID("desert")
	weights := map[State]float64{}
	for _, w := range desert.Weights {
		weights[w.State] = w.Weight
	}
	if weights[StateClear] <= weights[StateRain] {
		t.Fatal("desert should see far more clear sky than rain")
	}
	if weights[StateSandstorm] == 0 {
		t.Fatal("desert without sandstorms")
	}
}
