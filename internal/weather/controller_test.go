package weather

import (
	"errors"
	"math"
	"testing"
	"time"
)

func newTestController(t *testing.T, start State) *Controller {
	t.Helper()
	ctrl, err := NewController(ControllerConfig{
		Start:       start,
		HopDuration: time.Second,
	})
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	return ctrl
}

// tickUntilSettled advances in small steps until the in-flight plan is
// fully walked, failing if it never converges.
func tickUntilSettled(t *testing.T, ctrl *Controller) Snapshot {
	t.Helper()
	var last Snapshot
	for i := 0; i < 10000; i++ {
		snap, err := ctrl.Tick(0.05)
		if err != nil {
			t.Fatalf("tick: %v", err)
		}
		last = snap
		if !ctrl.InTransition() {
			return last
		}
	}
	t.Fatal("transition never converged")
	return last
}

func TestClearToStormConvergesOnStormProfile(t *testing.T) {
	ctrl := newTestController(t, StateClear)
	if err := ctrl.SetState(StateStorm); err != nil {
		t.Fatalf("set state: %v", err)
	}

	snap := tickUntilSettled(t, ctrl)
	if ctrl.CurrentState() != StateStorm || ctrl.TargetState() != StateStorm {
		t.Fatalf("expected storm, got current=%s target=%s", ctrl.CurrentState(), ctrl.TargetState())
	}
	if snap.Params.Kind != PrecipRain {
		t.Fatalf("settled kind = %s, want rain", snap.Params.Kind)
	}
	if snap.Params.DischargeFrequency != 0.8 {
		t.Fatalf("settled discharge = %.2f, want 0.8", snap.Params.DischargeFrequency)
	}
	if snap.Params.SkyDarkness != 0.85 {
		t.Fatalf("settled darkness = %.2f, want 0.85", snap.Params.SkyDarkness)
	}
}

func TestSelfTransitionIsIdempotent(t *testing.T) {
	for _, s := range AllStates() {
		ctrl := newTestController(t, s)
		if err := ctrl.SetState(s); err != nil {
			t.Fatalf("set %s: %v", s, err)
		}
		if ctrl.InTransition() {
			t.Fatalf("%s->%s should be a no-op while converged", s, s)
		}
		snap, err := ctrl.Tick(0.1)
		if err != nil {
			t.Fatalf("tick: %v", err)
		}
		want := mustProfile(DefaultCatalog(), s).Params
		if snap.Params != want {
			t.Fatalf("steady-state vector for %s = %+v, want %+v", s, snap.Params, want)
		}
		if ctrl.Progress() != 1 {
			t.Fatalf("steady-state progress = %.2f, want 1", ctrl.Progress())
		}
	}
}

func TestAllPairsReachTarget(t *testing.T) {
	for _, from := range AllStates() {
		for _, to := range AllStates() {
			ctrl := newTestController(t, from)
			if err := ctrl.SetState(to); err != nil {
				t.Fatalf("set %s->%s: %v", from, to, err)
			}
			tickUntilSettled(t, ctrl)
			if ctrl.CurrentState() != to {
				t.Fatalf("%s->%s settled at %s", from, to, ctrl.CurrentState())
			}
		}
	}
}

func TestRetargetMidTransitionKeepsContinuity(t *testing.T) {
	ctrl := newTestController(t, StateClear)
	if err := ctrl.SetState(StateStorm); err != nil {
		t.Fatalf("set state: %v", err)
	}
	// Walk partway into the plan.
	for i := 0; i < 30; i++ {
		if _, err := ctrl.Tick(0.05); err != nil {
			t.Fatalf("tick: %v", err)
		}
	}
	before, err := ctrl.Tick(0)
	if err != nil {
		t.Fatalf("tick: %v", err)
	}

	// Retarget; the very next frame must not jump.
	if err := ctrl.SetState(StateClear); err != nil {
		t.Fatalf("retarget: %v", err)
	}
	after, err := ctrl.Tick(0.001)
	if err != nil {
		t.Fatalf("tick: %v", err)
	}
	if math.Abs(after.Params.SkyDarkness-before.Params.SkyDarkness) > 0.01 {
		t.Fatalf("retarget popped skyDarkness from %.3f to %.3f", before.Params.SkyDarkness, after.Params.SkyDarkness)
	}
	if math.Abs(after.Params.PrecipIntensity-before.Params.PrecipIntensity) > 0.01 {
		t.Fatalf("retarget popped precipIntensity from %.3f to %.3f", before.Params.PrecipIntensity, after.Params.PrecipIntensity)
	}

	tickUntilSettled(t, ctrl)
	if ctrl.CurrentState() != StateClear {
		t.Fatalf("retargeted transition settled at %s, want clear", ctrl.CurrentState())
	}
}

func TestSetStateUnknownLeavesCursorUntouched(t *testing.T) {
	ctrl := newTestController(t, StateClear)
	var unknown *UnknownStateError
	if err := ctrl.SetState(State("maelstrom")); !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownStateError, got %v", err)
	}
	if ctrl.InTransition() || ctrl.CurrentState() != StateClear || ctrl.TargetState() != StateClear {
		t.Fatal("rejected request must not mutate the cursor")
	}
}

func TestNegativeDtRejected(t *testing.T) {
	ctrl := newTestController(t, StateClear)
	if err := ctrl.SetState(StateCloudy); err != nil {
		t.Fatalf("set state: %v", err)
	}
	progress := ctrl.Progress()
	if _, err := ctrl.Tick(-0.1); err == nil {
		t.Fatal("expected error for negative dt")
	}
	if ctrl.Progress() != progress {
		t.Fatal("failed tick must not advance progress")
	}
}

func TestWindCouplingFollowsMultiplier(t *testing.T) {
	ctrl := newTestController(t, StateClear)
	calm, err := ctrl.Tick(0.05)
	if err != nil {
		t.Fatalf("tick: %v", err)
	}

	if err := ctrl.SetState(StateStorm); err != nil {
		t.Fatalf("set state: %v", err)
	}
	stormy := tickUntilSettled(t, ctrl)

	if stormy.Wind.Length() <= calm.Wind.Length() {
		t.Fatalf("storm wind %.2f should exceed clear wind %.2f", stormy.Wind.Length(), calm.Wind.Length())
	}
}

func TestMultiHopTakesLongerThanOneHop(t *testing.T) {
	direct := newTestController(t, StateRain)
	if err := direct.SetState(StateCloudy); err != nil {
		t.Fatalf("set state: %v", err)
	}
	routed := newTestController(t, StateClear)
	if err := routed.SetState(StateStorm); err != nil {
		t.Fatalf("set state: %v", err)
	}

	directTicks, routedTicks := 0, 0
	for direct.InTransition() {
		if _, err := direct.Tick(0.05); err != nil {
			t.Fatalf("tick: %v", err)
		}
		directTicks++
	}
	for routed.InTransition() {
		if _, err := routed.Tick(0.05); err != nil {
			t.Fatalf("tick: %v", err)
		}
		routedTicks++
	}
	if routedTicks <= directTicks {
		t.Fatalf("4-hop plan took %d ticks, direct hop %d", routedTicks, directTicks)
	}
}
