// weathervane-gl is the visual demo: a raylib window whose sky tint, fog,
// precipitation particles and lightning flashes are driven entirely by the
// controller's live parameter vector and wind force. Number keys jump
// between conditions, B cycles biome-scheduled mode.
package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/appengine-ltd/weathervane/internal/bolt"
	"github.com/appengine-ltd/weathervane/internal/weather"
)

const (
	screenW       = 1280
	screenH       = 720
	maxParticles  = 900
	flickerWindow = 45 * time.Millisecond
)

type particle struct {
	x, y  float32
	speed float32
	drift float32
}

var keyBindings = []struct {
	key   int32
	state weather.State
}{
	{rl.KeyOne, weather.StateClear},
	{rl.KeyTwo, weather.StateCloudy},
	{rl.KeyThree, weather.StateFog},
	{rl.KeyFour, weather.StateDrizzle},
	{rl.KeyFive, weather.StateRain},
	{rl.KeySix, weather.StateStorm},
	{rl.KeySeven, weather.StateLightSnow},
	{rl.KeyEight, weather.StateSnow},
	{rl.KeyNine, weather.StateBlizzard},
	{rl.KeyZero, weather.StateSandstorm},
}

func main() {
	var (
		startState string
		biomeID    string
		seed       int64
	)
	flag.StringVar(&startState, "start", "clear", "initial weather state")
	flag.StringVar(&biomeID, "biome", "temperate", "biome profile for scheduled mode")
	flag.Int64Var(&seed, "seed", 0, "scheduler seed (0 = current time)")
	flag.Parse()

	ctrl, err := weather.NewController(weather.ControllerConfig{
		Start: weather.State(startState),
		Wind:  weather.WindConfig{Direction: weather.Vec3{X: 1, Z: 0.1}, BaseSpeed: 40, Turbulence: 12},
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	biome, ok := weather.BiomeByID(biomeID)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown biome %q\n", biomeID)
		os.Exit(1)
	}
	sched, err := weather.NewScheduler(biome, ctrl, seed, nil, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	rl.SetConfigFlags(rl.FlagMsaa4xHint)
	rl.InitWindow(screenW, screenH, "weathervane")
	rl.SetTargetFPS(60)
	defer rl.CloseWindow()

	particles := make([]particle, maxParticles)
	for i := range particles {
		particles[i] = newParticle()
	}

	scheduled := false
	flashUntil := time.Time{}
	var activeBolt bolt.Bolt

	for !rl.WindowShouldClose() {
		dt := float64(rl.GetFrameTime())

		for _, kb := range keyBindings {
			if rl.IsKeyPressed(kb.key) {
				scheduled = false
				_ = ctrl.SetState(kb.state)
			}
		}
		if rl.IsKeyPressed(rl.KeyB) {
			scheduled = !scheduled
		}

		if scheduled {
			_ = sched.Tick(dt)
		}
		snap, err := ctrl.Tick(dt)
		if err != nil {
			continue
		}

		// Lightning: discharge frequency is strikes-per-second-ish; roll
		// once per frame and hold the flash for a few frames.
		if rand.Float64() < snap.Params.DischargeFrequency*dt*1.5 {
			flashUntil = time.Now().Add(180 * time.Millisecond)
			s := bolt.FlickerSeed(seed, time.Now(), flickerWindow)
			activeBolt = bolt.Generate(s,
				bolt.Point{X: 200 + rand.Float64()*880, Y: 0},
				bolt.Point{X: 200 + rand.Float64()*880, Y: 560 + rand.Float64()*120},
				bolt.Options{Depth: 6, Jitter: 0.22, BranchChance: 0.12},
			)
		}

		updateParticles(particles, snap, dt)

		rl.BeginDrawing()
		rl.ClearBackground(skyColor(snap))

		if time.Now().Before(flashUntil) {
			drawBolt(activeBolt)
			rl.DrawRectangle(0, 0, screenW, screenH, rl.Fade(rl.White, 0.10))
		}

		drawParticles(particles, snap)

		// Haze reads as a translucent wash toward the fog color.
		fogAlpha := float32(snap.Params.HazeDensity / 0.05 * 0.85)
		rl.DrawRectangle(0, 0, screenW, screenH, rl.Fade(tint(snap.Hints.FogColor), fogAlpha))

		drawHUD(ctrl, snap, scheduled, biome.ID)
		rl.EndDrawing()
	}
}

func newParticle() particle {
	return particle{
		x:     rand.Float32() * screenW,
		y:     rand.Float32() * screenH,
		speed: 0.6 + rand.Float32()*0.8,
		drift: rand.Float32()*2 - 1,
	}
}

func updateParticles(ps []particle, snap weather.Snapshot, dt float64) {
	fall := fallSpeed(snap.Params.Kind)
	windX := float32(snap.Wind.X * 6 * dt)
	for i := range ps {
		p := &ps[i]
		p.y += p.speed * fall * float32(dt)
		p.x += windX*p.speed + p.drift*float32(dt)*20
		if p.y > screenH || p.x < -20 || p.x > screenW+20 {
			*p = newParticle()
			p.y = -5
		}
	}
}

func fallSpeed(kind weather.PrecipKind) float32 {
	switch kind {
	case weather.PrecipRain:
		return 900
	case weather.PrecipSnow:
		return 160
	case weather.PrecipDust:
		return 60
	default:
		return 0
	}
}

func drawParticles(ps []particle, snap weather.Snapshot) {
	visible := int(snap.Params.PrecipIntensity * maxParticles)
	col := tint(snap.Hints.ParticleTint)
	for i := 0; i < visible && i < len(ps); i++ {
		p := ps[i]
		switch snap.Params.Kind {
		case weather.PrecipRain:
			rl.DrawLineEx(
				rl.NewVector2(p.x, p.y),
				rl.NewVector2(p.x+float32(snap.Wind.X)*0.25, p.y+10*p.speed),
				1.2, rl.Fade(col, 0.7))
		case weather.PrecipSnow:
			rl.DrawCircleV(rl.NewVector2(p.x, p.y), 1.6*p.speed, rl.Fade(col, 0.85))
		case weather.PrecipDust:
			rl.DrawCircleV(rl.NewVector2(p.x, p.y), 1.1*p.speed, rl.Fade(col, 0.45))
		}
	}
}

func drawBolt(b bolt.Bolt) {
	drawPath := func(pts []bolt.Point, width float32, alpha float32) {
		for i := 0; i < len(pts)-1; i++ {
			rl.DrawLineEx(
				rl.NewVector2(float32(pts[i].X), float32(pts[i].Y)),
				rl.NewVector2(float32(pts[i+1].X), float32(pts[i+1].Y)),
				width, rl.Fade(rl.RayWhite, alpha))
		}
	}
	drawPath(b.Points, 2.4, 0.95)
	for _, br := range b.Branches {
		drawPath(br, 1.2, 0.55)
	}
}

func skyColor(snap weather.Snapshot) rl.Color {
	c := snap.Hints.SkyColor
	dark := 1 - snap.Params.SkyDarkness*0.8
	return rl.NewColor(
		uint8(c.R*dark*255),
		uint8(c.G*dark*255),
		uint8(c.B*dark*255),
		255,
	)
}

func tint(c weather.Color) rl.Color {
	return rl.NewColor(uint8(c.R*255), uint8(c.G*255), uint8(c.B*255), 255)
}

func drawHUD(ctrl *weather.Controller, snap weather.Snapshot, scheduled bool, biome string) {
	mode := "manual (1-0 keys, B = biome mode)"
	if scheduled {
		mode = "biome: " + biome
	}
	line := fmt.Sprintf("%s -> %s  %.0f%%  |  %s", ctrl.CurrentState(), ctrl.TargetState(), ctrl.Progress()*100, mode)
	rl.DrawText(line, 16, 16, 20, rl.RayWhite)
	stats := fmt.Sprintf("precip %.2f  haze %.4f  discharge %.2f  dark %.2f  wind %.1f",
		snap.Params.PrecipIntensity, snap.Params.HazeDensity,
		snap.Params.DischargeFrequency, snap.Params.SkyDarkness, snap.Wind.Length())
	rl.DrawText(stats, 16, 42, 20, rl.Fade(rl.RayWhite, 0.7))
}
