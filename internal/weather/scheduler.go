package weather

import (
	"log/slog"
	"math/rand/v2"

	"github.com/appengine-ltd/weathervane/internal/observability"
)

// Scheduler periodically samples a next target from a biome's
// distribution and hands it to the controller. It never re-requests the
// state already in flight, so a draw equal to the current target only
// reseeds the dwell countdown.
type Scheduler struct {
	biome     BiomeProfile
	ctrl      *Controller
	rng       *rand.Rand
	countdown float64 // seconds until the next resample
	metrics   *observability.Metrics
	log       *slog.Logger
}

// NewScheduler validates the biome and seeds the dwell countdown. A
// fixed seed reproduces the full request sequence, which the tests rely
// on. Logger may be nil.
func NewScheduler(biome BiomeProfile, ctrl *Controller, seed int64, metrics *observability.Metrics, log *slog.Logger) (*Scheduler, error) {
	if err := biome.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = discardLogger()
	}
	s := &Scheduler{
		biome:   biome,
		ctrl:    ctrl,
		rng:     seededRNG(seed),
		metrics: metrics,
		log:     log,
	}
	s.reseed()
	return s, nil
}

// Tick counts down the dwell timer by dt seconds and resamples on expiry.
func (s *Scheduler) Tick(dt float64) error {
	s.countdown -= dt
	if s.countdown > 0 {
		return nil
	}
	s.reseed()

	next := s.sample()
	if s.metrics != nil {
		s.metrics.SchedulerResamples.Inc()
	}
	if next == s.ctrl.TargetState() {
		return nil
	}
	s.log.Info("biome scheduler selected next state", "biome", s.biome.ID, "state", next)
	return s.ctrl.SetState(next)
}

// Biome returns the profile this scheduler samples from.
func (s *Scheduler) Biome() BiomeProfile { return s.biome }

// sample draws a state by cumulative-weight inversion on a uniform [0,1)
// roll.
func (s *Scheduler) sample() State {
	roll := s.rng.Float64()
	cumulative := 0.0
	for _, w := range s.biome.Weights {
		cumulative += w.Weight
		if roll < cumulative {
			return w.State
		}
	}
	return s.biome.Weights[len(s.biome.Weights)-1].State
}

func (s *Scheduler) reseed() {
	min := s.biome.MinDwell.Seconds()
	max := s.biome.MaxDwell.Seconds()
	s.countdown = min + s.rng.Float64()*(max-min)
}
