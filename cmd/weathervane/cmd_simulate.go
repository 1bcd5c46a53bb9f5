package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/appengine-ltd/weathervane/internal/config"
	"github.com/appengine-ltd/weathervane/internal/observability"
	"github.com/appengine-ltd/weathervane/internal/sim"
	"github.com/appengine-ltd/weathervane/internal/weather"
)

var (
	simBiome    string
	simStart    string
	simSeed     int64
	simDuration time.Duration
	simRate     time.Duration
	simConfig   string
	simVerbose  bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the weather engine headless and print each state change",
	RunE:  runSimulate,
}

func init() {
	simulateCmd.Flags().StringVar(&simBiome, "biome", "temperate", "biome profile driving the scheduler")
	simulateCmd.Flags().StringVar(&simStart, "start", "clear", "initial weather state")
	simulateCmd.Flags().Int64Var(&simSeed, "seed", 0, "scheduler seed (0 = current time)")
	simulateCmd.Flags().DurationVar(&simDuration, "duration", 0, "stop after this long (0 = run until interrupted)")
	simulateCmd.Flags().DurationVar(&simRate, "rate", 50*time.Millisecond, "tick interval")
	simulateCmd.Flags().StringVar(&simConfig, "config", "", "optional YAML tuning/biome file")
	simulateCmd.Flags().BoolVar(&simVerbose, "verbose", false, "print a snapshot line every second")
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg := &config.Config{}
	if simConfig != "" {
		loaded, err := config.Load(simConfig)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	ctrlCfg := cfg.ControllerConfig()
	ctrlCfg.Start = weather.State(simStart)
	ctrlCfg.Metrics = observability.NewMetrics()
	ctrlCfg.Logger = log
	ctrl, err := weather.NewController(ctrlCfg)
	if err != nil {
		return err
	}

	biome, ok := cfg.Biome(simBiome)
	if !ok {
		return fmt.Errorf("unknown biome %q", simBiome)
	}
	seed := simSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	sched, err := weather.NewScheduler(biome, ctrl, seed, ctrlCfg.Metrics, log)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer cancel()
	if simDuration > 0 {
		ctx, cancel = context.WithTimeout(ctx, simDuration)
		defer cancel()
	}

	var lastPrint time.Time
	runner := sim.NewRunner(sim.RunnerConfig{
		Controller: ctrl,
		Scheduler:  sched,
		TickRate:   simRate,
		Logger:     log,
		OnSnapshot: func(s weather.Snapshot) {
			if !simVerbose || time.Since(lastPrint) < time.Second {
				return
			}
			lastPrint = time.Now()
			fmt.Printf("state=%s target=%s progress=%.2f kind=%s precip=%.2f haze=%.4f discharge=%.2f dark=%.2f wind=(%.1f, %.1f, %.1f)\n",
				ctrl.CurrentState(), ctrl.TargetState(), ctrl.Progress(),
				s.Params.Kind, s.Params.PrecipIntensity, s.Params.HazeDensity,
				s.Params.DischargeFrequency, s.Params.SkyDarkness,
				s.Wind.X, s.Wind.Y, s.Wind.Z)
		},
	})

	err = runner.Run(ctx)
	if err == context.Canceled || err == context.DeadlineExceeded {
		return nil
	}
	return err
}
