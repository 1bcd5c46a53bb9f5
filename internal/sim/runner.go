// Package sim drives a weather controller in real time. The per-frame
// engine itself is dt-driven and clock-agnostic; Runner supplies the
// clock, converting a fixed tick rate into dt seconds. Tests swap in a
// fake clockwork clock and step it.
package sim

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/appengine-ltd/weathervane/internal/weather"
)

// RunnerConfig assembles a Runner. Scheduler, OnSnapshot, Clock and
// Logger are optional.
type RunnerConfig struct {
	Controller *weather.Controller
	Scheduler  *weather.Scheduler
	TickRate   time.Duration // default 50ms (20 Hz)
	Clock      clockwork.Clock
	Logger     *slog.Logger
	OnSnapshot func(weather.Snapshot)
}

// Runner ticks the controller (and scheduler, when attached) at a fixed
// rate until its context is cancelled.
type Runner struct {
	ctrl     *weather.Controller
	sched    *weather.Scheduler
	rate     time.Duration
	clock    clockwork.Clock
	log      *slog.Logger
	onSnap   func(weather.Snapshot)
	lastSeen weather.State
}

func NewRunner(cfg RunnerConfig) *Runner {
	if cfg.TickRate <= 0 {
		cfg.TickRate = 50 * time.Millisecond
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Runner{
		ctrl:     cfg.Controller,
		sched:    cfg.Scheduler,
		rate:     cfg.TickRate,
		clock:    cfg.Clock,
		log:      cfg.Logger,
		onSnap:   cfg.OnSnapshot,
		lastSeen: cfg.Controller.CurrentState(),
	}
}

// Run blocks until ctx is cancelled. Each tick advances the controller by
// the fixed tick-rate dt; a dropped frame therefore slows the sky rather
// than jumping it, which is the right failure mode for ambience.
func (r *Runner) Run(ctx context.Context) error {
	ticker := r.clock.NewTicker(r.rate)
	defer ticker.Stop()

	dt := r.rate.Seconds()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.Chan():
			if err := r.step(dt); err != nil {
				return err
			}
		}
	}
}

func (r *Runner) step(dt float64) error {
	if r.sched != nil {
		if err := r.sched.Tick(dt); err != nil {
			return err
		}
	}
	snap, err := r.ctrl.Tick(dt)
	if err != nil {
		return err
	}
	if cur := r.ctrl.CurrentState(); cur != r.lastSeen {
		r.log.Info("weather changed",
			"from", r.lastSeen,
			"to", cur,
			"target", r.ctrl.TargetState(),
			"kind", snap.Params.Kind)
		r.lastSeen = cur
	}
	if r.onSnap != nil {
		r.onSnap(snap)
	}
	return nil
}
