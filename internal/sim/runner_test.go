package sim

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appengine-ltd/weathervane/internal/weather"
)

func newTestController(t *testing.T) *weather.Controller {
	t.Helper()
	ctrl, err := weather.NewController(weather.ControllerConfig{
		Start:       weather.StateClear,
		HopDuration: time.Second,
	})
	require.NoError(t, err)
	return ctrl
}

func TestRunnerStepAdvancesTransition(t *testing.T) {
	ctrl := newTestController(t)
	require.NoError(t, ctrl.SetState(weather.StateCloudy))

	snaps := 0
	var last weather.Snapshot
	runner := NewRunner(RunnerConfig{
		Controller: ctrl,
		TickRate:   50 * time.Millisecond,
		OnSnapshot: func(s weather.Snapshot) {
			snaps++
			last = s
		},
	})

	// One natural hop at a 1s hop duration: 21 ticks of 50ms converge
	// even with float accumulation error.
	for i := 0; i < 21; i++ {
		require.NoError(t, runner.step(0.05))
	}

	assert.Equal(t, 21, snaps)
	assert.False(t, ctrl.InTransition())
	assert.Equal(t, weather.StateCloudy, ctrl.CurrentState())

	cloudy, err := weather.DefaultCatalog().Lookup(weather.StateCloudy)
	require.NoError(t, err)
	assert.Equal(t, cloudy.Params, last.Params)
}

func TestRunnerStepDrivesScheduler(t *testing.T) {
	ctrl := newTestController(t)
	biome := weather.BiomeProfile{
		ID: "fast",
		Weights: []weather.StateWeight{
			{State: weather.StateRain, Weight: 0.5},
			{State: weather.StateSnow, Weight: 0.5},
		},
		MinDwell: 100 * time.Millisecond,
		MaxDwell: 200 * time.Millisecond,
	}
	sched, err := weather.NewScheduler(biome, ctrl, 11, nil, nil)
	require.NoError(t, err)

	runner := NewRunner(RunnerConfig{Controller: ctrl, Scheduler: sched})

	// The dwell expires within 0.2 simulated seconds; the first draw can
	// only be rain or snow, so the target must move off clear.
	for i := 0; i < 10; i++ {
		require.NoError(t, runner.step(0.05))
	}
	assert.NotEqual(t, weather.StateClear, ctrl.TargetState())
	assert.Contains(t, []weather.State{weather.StateRain, weather.StateSnow}, ctrl.TargetState())
}

func TestRunnerStepRejectsNegativeDT(t *testing.T) {
	runner := NewRunner(RunnerConfig{Controller: newTestController(t)})
	assert.Error(t, runner.step(-0.05))
}

func TestRunnerRunStopsOnCancel(t *testing.T) {
	ctrl := newTestController(t)
	clock := clockwork.NewFakeClock()
	var snaps atomic.Int64
	runner := NewRunner(RunnerConfig{
		Controller: ctrl,
		TickRate:   50 * time.Millisecond,
		Clock:      clock,
		OnSnapshot: func(weather.Snapshot) { snaps.Add(1) },
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runner.Run(ctx) }()

	require.NoError(t, clock.BlockUntilContext(ctx, 1))
	clock.Advance(50 * time.Millisecond)
	require.Eventually(t, func() bool { return snaps.Load() >= 1 },
		time.Second, time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("runner did not stop on cancellation")
	}
}

func TestRunnerDefaults(t *testing.T) {
	runner := NewRunner(RunnerConfig{Controller: newTestController(t)})
	assert.Equal(t, 50*time.Millisecond, runner.rate)
	assert.NotNil(t, runner.clock)
	assert.NotNil(t, runner.log)
}
