package weather

import (
	"errors"
	"testing"
)

func TestDefaultAdjacencyIsComplete(t *testing.T) {
	adj := DefaultAdjacency()
	for _, from := range AllStates() {
		for _, to := range AllStates() {
			if _, err := adj.Classify(from, to); err != nil {
				t.Fatalf("classify %s->%s: %v", from, to, err)
			}
		}
	}
}

func TestSelfTransitionsAreNatural(t *testing.T) {
	adj := DefaultAdjacency()
	for _, s := range AllStates() {
		cls, err := adj.Classify(s, s)
		if err != nil {
			t.Fatalf("classify %s->%s: %v", s, s, err)
		}
		if cls != Natural {
			t.Fatalf("%s->%s = %s, want natural", s, s, cls)
		}
	}
}

func TestClassificationIsDirectional(t *testing.T) {
	adj := DefaultAdjacency()

	// Each direction is graded independently: clear->sandstorm is an
	// acceptable abrupt onset, the reverse must be routed.
	cases := []struct {
		from, to State
		want     Classification
	}{
		{StateClear, StateStorm, Forbidden},
		{StateStorm, StateClear, Forbidden},
		{StateRain, StateCloudy, Natural},
		{StateCloudy, StateStorm, Forbidden},
		{StateStorm, StateRain, Abrupt},
		{StateClear, StateSandstorm, Abrupt},
		{StateSandstorm, StateClear, Forbidden},
		{StateSnow, StateBlizzard, Natural},
		{StateRain, StateSnow, Forbidden},
	}
	for _, tc := range cases {
		cls, err := adj.Classify(tc.from, tc.to)
		if err != nil {
			t.Fatalf("classify %s->%s: %v", tc.from, tc.to, err)
		}
		if cls != tc.want {
			t.Fatalf("%s->%s = %s, want %s", tc.from, tc.to, cls, tc.want)
		}
	}
}

func TestAdjacencyRejectsIncompleteRow(t *testing.T) {
	rows := defaultAdjacencyRows()
	rows[0].forbidden = rows[0].forbidden[:len(rows[0].forbidden)-1]
	_, err := NewAdjacency(rows)
	if !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected configuration error for short row, got %v", err)
	}
}

func TestAdjacencyRejectsDoubleClassification(t *testing.T) {
	rows := defaultAdjacencyRows()
	rows[0].abrupt = append(rows[0].abrupt, rows[0].natural[0])
	_, err := NewAdjacency(rows)
	if !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected configuration error for doubly classified pair, got %v", err)
	}
}
