package weather

import (
	"errors"
	"fmt"

	"github.com/agnivade/levenshtein"
)

// ErrConfiguration marks fatal load-time table problems. Anything wrapping
// it means the static data is incomplete or inconsistent and the engine
// must not start.
var ErrConfiguration = errors.New("weather: invalid configuration")

// UnknownStateError reports a caller-supplied identifier outside the
// closed state set. The cursor is never mutated on this path.
type UnknownStateError struct {
	ID         string
	Suggestion State // zero when no close match exists
}

func (e *UnknownStateError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("weather: unknown state %q (did you mean %q?)", e.ID, e.Suggestion)
	}
	return fmt.Sprintf("weather: unknown state %q", e.ID)
}

func unknownState(id string) *UnknownStateError {
	return &UnknownStateError{ID: id, Suggestion: closestState(id)}
}

// closestState fuzzy-matches id against the state set so typos in hand
// written config or console input produce a usable hint.
func closestState(id string) State {
	const maxDistance = 3
	best := State("")
	bestDist := maxDistance + 1
	for _, s := range AllStates() {
		d := levenshtein.ComputeDistance(id, string(s))
		if d < bestDist {
			bestDist = d
			best = s
		}
	}
	if bestDist > maxDistance {
		return ""
	}
	return best
}
