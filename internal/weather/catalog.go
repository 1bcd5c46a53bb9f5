package weather

import "fmt"

// Params is the blendable parameter vector consumed by renderers. Every
// numeric field interpolates linearly during a transition; Kind switches
// discretely at the crossfade midpoint.
type Params struct {
	Kind               PrecipKind
	PrecipIntensity    float64 // 0..1
	HazeDensity        float64 // 0..0.05, exponential-fog coefficient
	DischargeFrequency float64 // 0..1, lightning strikes likelihood
	SkyDarkness        float64 // 0..1
	WindMultiplier     float64 // 0..3, scales the wind model's base speed
}

// Color is a normalized RGB triple carried as an opaque rendering hint.
type Color struct {
	R, G, B float64
}

// Hints carries per-condition rendering payload. The core never interprets
// these values; they pass straight through to whatever consumes Snapshot.
type Hints struct {
	SkyColor     Color
	FogColor     Color
	ParticleSize float64
	ParticleTint Color
}

// Profile is one immutable catalog entry.
type Profile struct {
	State  State
	Params Params
	Hints  Hints
}

// Catalog maps every member of the closed state set to its profile.
// Built once at load and never mutated; safe for shared reads.
type Catalog struct {
	profiles map[State]Profile
}

// NewCatalog validates that profiles covers the full state set exactly and
// that every field sits inside its documented range.
func NewCatalog(profiles []Profile) (*Catalog, error) {
	byState := make(map[State]Profile, len(profiles))
	for _, p := range profiles {
		if !KnownState(p.State) {
			return nil, fmt.Errorf("%w: catalog entry for unknown state %q", ErrConfiguration, p.State)
		}
		if _, dup := byState[p.State]; dup {
			return nil, fmt.Errorf("%w: duplicate catalog entry for %q", ErrConfiguration, p.State)
		}
		if err := validateParams(p.State, p.Params); err != nil {
			return nil, err
		}
		byState[p.State] = p
	}
	for _, s := range AllStates() {
		if _, ok := byState[s]; !ok {
			return nil, fmt.Errorf("%w: catalog missing state %q", ErrConfiguration, s)
		}
	}
	return &Catalog{profiles: byState}, nil
}

// DefaultCatalog builds the catalog from the built-in profile table.
// The table is compiled in, so a failure here is a programming error.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(defaultProfiles())
	if err != nil {
		panic(err)
	}
	return c
}

// Lookup returns the profile for id, or UnknownStateError for an
// identifier outside the closed set.
func (c *Catalog) Lookup(id State) (Profile, error) {
	p, ok := c.profiles[id]
	if !ok {
		return Profile{}, unknownState(string(id))
	}
	return p, nil
}

func validateParams(s State, p Params) error {
	switch p.Kind {
	case PrecipNone, PrecipRain, PrecipSnow, PrecipDust:
	default:
		return fmt.Errorf("%w: %s: invalid precipitation kind %q", ErrConfiguration, s, p.Kind)
	}
	checks := []struct {
		name     string
		val      float64
		min, max float64
	}{
		{"precipIntensity", p.PrecipIntensity, 0, 1},
		{"hazeDensity", p.HazeDensity, 0, 0.05},
		{"dischargeFrequency", p.DischargeFrequency, 0, 1},
		{"skyDarkness", p.SkyDarkness, 0, 1},
		{"windMultiplier", p.WindMultiplier, 0, 3},
	}
	for _, c := range checks {
		if c.val < c.min || c.val > c.max {
			return fmt.Errorf("%w: %s: %s %.3f outside [%.2f, %.2f]", ErrConfiguration, s, c.name, c.val, c.min, c.max)
		}
	}
	return nil
}

func defaultProfiles() []Profile {
	return []Profile{
		{
			State: StateClear,
			Params: Params{
				Kind:           PrecipNone,
				HazeDensity:    0.0015,
				WindMultiplier: 0.4,
			},
			Hints: Hints{
				SkyColor: Color{R: 0.36, G: 0.58, B: 0.92},
				FogColor: Color{R: 0.72, G: 0.82, B: 0.95},
			},
		},
		{
			State: StateCloudy,
			Params: Params{
				Kind:           PrecipNone,
				HazeDensity:    0.004,
				SkyDarkness:    0.2,
				WindMultiplier: 0.7,
			},
			Hints: Hints{
				SkyColor: Color{R: 0.55, G: 0.62, B: 0.72},
				FogColor: Color{R: 0.70, G: 0.74, B: 0.80},
			},
		},
		{
			State: StateOvercast,
			Params: Params{
				Kind:           PrecipNone,
				HazeDensity:    0.008,
				SkyDarkness:    0.4,
				WindMultiplier: 0.8,
			},
			Hints: Hints{
				SkyColor: Color{R: 0.44, G: 0.48, B: 0.55},
				FogColor: Color{R: 0.58, G: 0.61, B: 0.66},
			},
		},
		{
			State: StateFog,
			Params: Params{
				Kind:           PrecipNone,
				HazeDensity:    0.045,
				SkyDarkness:    0.3,
				WindMultiplier: 0.2,
			},
			Hints: Hints{
				SkyColor: Color{R: 0.66, G: 0.68, B: 0.70},
				FogColor: Color{R: 0.78, G: 0.79, B: 0.80},
			},
		},
		{
			State: StateDrizzle,
			Params: Params{
				Kind:            PrecipRain,
				PrecipIntensity: 0.25,
				HazeDensity:     0.010,
				SkyDarkness:     0.35,
				WindMultiplier:  0.8,
			},
			Hints: Hints{
				SkyColor:     Color{R: 0.48, G: 0.52, B: 0.60},
				FogColor:     Color{R: 0.60, G: 0.63, B: 0.68},
				ParticleSize: 0.6,
				ParticleTint: Color{R: 0.68, G: 0.74, B: 0.84},
			},
		},
		{
			State: StateRain,
			Params: Params{
				Kind:            PrecipRain,
				PrecipIntensity: 0.7,
				HazeDensity:     0.014,
				SkyDarkness:     0.5,
				WindMultiplier:  1.1,
			},
			Hints: Hints{
				SkyColor:     Color{R: 0.38, G: 0.42, B: 0.50},
				FogColor:     Color{R: 0.50, G: 0.53, B: 0.58},
				ParticleSize: 1.0,
				ParticleTint: Color{R: 0.62, G: 0.70, B: 0.82},
			},
		},
		{
			State: StateHeavyRain,
			Params: Params{
				Kind:               PrecipRain,
				PrecipIntensity:    0.9,
				HazeDensity:        0.020,
				DischargeFrequency: 0.15,
				SkyDarkness:        0.7,
				WindMultiplier:     1.6,
			},
			Hints: Hints{
				SkyColor:     Color{R: 0.28, G: 0.31, B: 0.38},
				FogColor:     Color{R: 0.40, G: 0.43, B: 0.48},
				ParticleSize: 1.3,
				ParticleTint: Color{R: 0.58, G: 0.66, B: 0.78},
			},
		},
		{
			State: StateStorm,
			Params: Params{
				Kind:               PrecipRain,
				PrecipIntensity:    1.0,
				HazeDensity:        0.026,
				DischargeFrequency: 0.8,
				SkyDarkness:        0.85,
				WindMultiplier:     2.4,
			},
			Hints: Hints{
				SkyColor:     Color{R: 0.16, G: 0.18, B: 0.24},
				FogColor:     Color{R: 0.28, G: 0.30, B: 0.35},
				ParticleSize: 1.5,
				ParticleTint: Color{R: 0.55, G: 0.62, B: 0.75},
			},
		},
		{
			State: StateLightSnow,
			Params: Params{
				Kind:            PrecipSnow,
				PrecipIntensity: 0.3,
				HazeDensity:     0.010,
				SkyDarkness:     0.3,
				WindMultiplier:  0.5,
			},
			Hints: Hints{
				SkyColor:     Color{R: 0.62, G: 0.66, B: 0.74},
				FogColor:     Color{R: 0.80, G: 0.82, B: 0.86},
				ParticleSize: 0.8,
				ParticleTint: Color{R: 0.95, G: 0.96, B: 0.99},
			},
		},
		{
			State: StateSnow,
			Params: Params{
				Kind:            PrecipSnow,
				PrecipIntensity: 0.65,
				HazeDensity:     0.018,
				SkyDarkness:     0.45,
				WindMultiplier:  0.9,
			},
			Hints: Hints{
				SkyColor:     Color{R: 0.54, G: 0.58, B: 0.66},
				FogColor:     Color{R: 0.76, G: 0.78, B: 0.82},
				ParticleSize: 1.1,
				ParticleTint: Color{R: 0.97, G: 0.97, B: 1.0},
			},
		},
		{
			State: StateBlizzard,
			Params: Params{
				Kind:            PrecipSnow,
				PrecipIntensity: 1.0,
				HazeDensity:     0.040,
				SkyDarkness:     0.65,
				WindMultiplier:  3.0,
			},
			Hints: Hints{
				SkyColor:     Color{R: 0.46, G: 0.48, B: 0.54},
				FogColor:     Color{R: 0.72, G: 0.73, B: 0.76},
				ParticleSize: 1.2,
				ParticleTint: Color{R: 0.94, G: 0.95, B: 0.98},
			},
		},
		{
			State: StateSandstorm,
			Params: Params{
				Kind:            PrecipDust,
				PrecipIntensity: 0.85,
				HazeDensity:     0.050,
				SkyDarkness:     0.55,
				WindMultiplier:  2.6,
			},
			Hints: Hints{
				SkyColor:     Color{R: 0.70, G: 0.56, B: 0.34},
				FogColor:     Color{R: 0.76, G: 0.62, B: 0.40},
				ParticleSize: 0.5,
				ParticleTint: Color{R: 0.82, G: 0.70, B: 0.48},
			},
		},
	}
}
