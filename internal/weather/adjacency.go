package weather

import "fmt"

// Classification grades the physical plausibility of a direct ordered
// transition. Direction matters: clear→storm and storm→clear are graded
// independently.
type Classification int8

const (
	// Natural transitions are the expected progression between
	// neighbouring conditions.
	Natural Classification = iota
	// Abrupt transitions skip a step but remain visually acceptable.
	Abrupt
	// Forbidden transitions must be routed through intermediates.
	Forbidden
)

func (c Classification) String() string {
	switch c {
	case Natural:
		return "natural"
	case Abrupt:
		return "abrupt"
	case Forbidden:
		return "forbidden"
	default:
		return "unknown"
	}
}

// Adjacency is the 12x12 ordered-pair classification grid. Immutable after
// load; safe for shared reads.
type Adjacency struct {
	grid map[State]map[State]Classification
}

// adjacencyRow declares one source state's full outgoing classification.
// Self-transitions are implicitly natural and must not be listed.
type adjacencyRow struct {
	from      State
	natural   []State
	abrupt    []State
	forbidden []State
}

// NewAdjacency validates that every row covers each of the other eleven
// states exactly once. A gap or an overlap is a fatal configuration error.
func NewAdjacency(rows []adjacencyRow) (*Adjacency, error) {
	grid := make(map[State]map[State]Classification, len(AllStates()))
	for _, row := range rows {
		if !KnownState(row.from) {
			return nil, fmt.Errorf("%w: adjacency row for unknown state %q", ErrConfiguration, row.from)
		}
		if _, dup := grid[row.from]; dup {
			return nil, fmt.Errorf("%w: duplicate adjacency row for %q", ErrConfiguration, row.from)
		}
		out := map[State]Classification{row.from: Natural}
		for cls, list := range map[Classification][]State{Natural: row.natural, Abrupt: row.abrupt, Forbidden: row.forbidden} {
			for _, to := range list {
				if !KnownState(to) {
					return nil, fmt.Errorf("%w: adjacency %s->%q references unknown state", ErrConfiguration, row.from, to)
				}
				if _, dup := out[to]; dup {
					return nil, fmt.Errorf("%w: adjacency %s->%s classified twice", ErrConfiguration, row.from, to)
				}
				out[to] = cls
			}
		}
		if len(out) != len(AllStates()) {
			return nil, fmt.Errorf("%w: adjacency row %s covers %d of %d states", ErrConfiguration, row.from, len(out), len(AllStates()))
		}
		grid[row.from] = out
	}
	for _, s := range AllStates() {
		if _, ok := grid[s]; !ok {
			return nil, fmt.Errorf("%w: adjacency missing row for %q", ErrConfiguration, s)
		}
	}
	return &Adjacency{grid: grid}, nil
}

// DefaultAdjacency builds the grid from the built-in table.
func DefaultAdjacency() *Adjacency {
	a, err := NewAdjacency(defaultAdjacencyRows())
	if err != nil {
		panic(err)
	}
	return a
}

// Classify returns the grade of the ordered pair (from, to).
func (a *Adjacency) Classify(from, to State) (Classification, error) {
	row, ok := a.grid[from]
	if !ok {
		return Forbidden, unknownState(string(from))
	}
	cls, ok := row[to]
	if !ok {
		return Forbidden, unknownState(string(to))
	}
	return cls, nil
}

// ForbiddenPairs lists every ordered pair graded Forbidden, in state
// order. Used by load-time validation to report route-table gaps.
func (a *Adjacency) ForbiddenPairs() [][2]State {
	var out [][2]State
	for _, from := range AllStates() {
		for _, to := range AllStates() {
			if a.grid[from][to] == Forbidden {
				out = append(out, [2]State{from, to})
			}
		}
	}
	return out
}

// The grid follows a severity ladder: one rung is natural, a two-rung skip
// is abrupt, and jumps across the ladder or between precipitation families
// are forbidden and must be routed.
func defaultAdjacencyRows() []adjacencyRow {
	return []adjacencyRow{
		{
			from:      StateClear,
			natural:   []State{StateCloudy},
			abrupt:    []State{StateOvercast, StateFog, StateSandstorm},
			forbidden: []State{StateDrizzle, StateRain, StateHeavyRain, StateStorm, StateLightSnow, StateSnow, StateBlizzard},
		},
		{
			from:      StateCloudy,
			natural:   []State{StateClear, StateOvercast, StateFog, StateDrizzle, StateRain, StateLightSnow},
			abrupt:    []State{StateHeavyRain, StateSnow, StateSandstorm},
			forbidden: []State{StateStorm, StateBlizzard},
		},
		{
			from:      StateOvercast,
			natural:   []State{StateCloudy, StateFog, StateDrizzle, StateRain, StateLightSnow, StateSnow},
			abrupt:    []State{StateClear, StateHeavyRain, StateStorm, StateBlizzard},
			forbidden: []State{StateSandstorm},
		},
		{
			from:      StateFog,
			natural:   []State{StateClear, StateCloudy, StateOvercast, StateDrizzle},
			abrupt:    []State{StateRain, StateLightSnow},
			forbidden: []State{StateHeavyRain, StateStorm, StateSnow, StateBlizzard, StateSandstorm},
		},
		{
			from:      StateDrizzle,
			natural:   []State{StateCloudy, StateOvercast, StateFog, StateRain},
			abrupt:    []State{StateClear, StateHeavyRain, StateLightSnow},
			forbidden: []State{StateStorm, StateSnow, StateBlizzard, StateSandstorm},
		},
		{
			from:      StateRain,
			natural:   []State{StateCloudy, StateOvercast, StateDrizzle, StateHeavyRain},
			abrupt:    []State{StateFog, StateStorm, StateLightSnow},
			forbidden: []State{StateClear, StateSnow, StateBlizzard, StateSandstorm},
		},
		{
			from:      StateHeavyRain,
			natural:   []State{StateRain, StateStorm},
			abrupt:    []State{StateCloudy, StateOvercast, StateDrizzle},
			forbidden: []State{StateClear, StateFog, StateLightSnow, StateSnow, StateBlizzard, StateSandstorm},
		},
		{
			from:      StateStorm,
			natural:   []State{StateHeavyRain},
			abrupt:    []State{StateRain},
			forbidden: []State{StateClear, StateCloudy, StateOvercast, StateFog, StateDrizzle, StateLightSnow, StateSnow, StateBlizzard, StateSandstorm},
		},
		{
			from:      StateLightSnow,
			natural:   []State{StateCloudy, StateOvercast, StateSnow},
			abrupt:    []State{StateClear, StateFog, StateBlizzard},
			forbidden: []State{StateDrizzle, StateRain, StateHeavyRain, StateStorm, StateSandstorm},
		},
		{
			from:      StateSnow,
			natural:   []State{StateOvercast, StateLightSnow, StateBlizzard},
			abrupt:    []State{StateCloudy},
			forbidden: []State{StateClear, StateFog, StateDrizzle, StateRain, StateHeavyRain, StateStorm, StateSandstorm},
		},
		{
			from:      StateBlizzard,
			natural:   []State{StateSnow},
			abrupt:    []State{StateLightSnow},
			forbidden: []State{StateClear, StateCloudy, StateOvercast, StateFog, StateDrizzle, StateRain, StateHeavyRain, StateStorm, StateSandstorm},
		},
		{
			from:      StateSandstorm,
			natural:   []State{},
			abrupt:    []State{StateCloudy, StateOvercast},
			forbidden: []State{StateClear, StateFog, StateDrizzle, StateRain, StateHeavyRain, StateStorm, StateLightSnow, StateSnow, StateBlizzard},
		},
	}
}
