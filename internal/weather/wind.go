package weather

import "math"

const gustFraction = 0.6

// WindConfig sets the static shape of the wind field. Direction is
// normalized at construction; Y components are kept (downdrafts are a
// legitimate hint for particle renderers).
type WindConfig struct {
	Direction  Vec3
	BaseSpeed  float64
	Turbulence float64 // amplitude of the cross-direction wobble, in speed units
}

// Wind produces the time-varying force vector. The base speed is pushed
// in each tick by the controller from the live wind multiplier; coupling
// is strictly one way, state machine to wind.
type Wind struct {
	direction  Vec3
	base       float64
	turbulence float64
	phase      float64
}

func NewWind(cfg WindConfig) *Wind {
	dir := cfg.Direction.Normalize()
	return &Wind{
		direction:  dir,
		base:       cfg.BaseSpeed,
		turbulence: cfg.Turbulence,
	}
}

// Tick advances the internal phase clock.
func (w *Wind) Tick(dt float64) {
	w.phase += dt
}

// SetBase overrides the base speed for subsequent Force calls.
func (w *Wind) SetBase(speed float64) {
	w.base = math.Max(0, speed)
}

// Force returns direction * (base + gust) + turbulence. The gust envelope
// is a slow sinusoid mapped to [0,1]; turbulence is a faster, small
// perturbation along the horizontal perpendicular of the main direction
// with a touch of vertical flutter.
func (w *Wind) Force() Vec3 {
	gust := (math.Sin(w.phase*0.9) + 1) / 2
	speed := w.base + gust*w.base*gustFraction

	perp := w.direction.Cross(Vec3{Y: 1}).Normalize()
	turb := perp.Scale(math.Sin(w.phase*3.7) * w.turbulence)
	turb.Y += math.Sin(w.phase*2.3) * w.turbulence * 0.3

	return w.direction.Scale(speed).Add(turb)
}
