package weather

import "fmt"

// routeStep is one element of an authored route: either a concrete state
// or a reference to another route's (from, to) key, spliced in at load.
type routeStep struct {
	state State
	ref   *routeKey
}

type routeKey struct {
	from, to State
}

func step(s State) routeStep { return routeStep{state: s} }

func via(from, to State) routeStep { return routeStep{ref: &routeKey{from: from, to: to}} }

// routeDef is one authored route for a forbidden ordered pair.
type routeDef struct {
	from, to State
	steps    []routeStep
}

// RouteTable holds the expanded intermediate sequences for forbidden
// pairs. References are resolved once at load with a cycle check, so
// lookups at runtime are a plain map read.
type RouteTable struct {
	routes map[routeKey][]State
}

// NewRouteTable expands references and validates every route: endpoints
// and intermediates must be known states, the final step must equal the
// route's destination, and no consecutive pair along the expanded path may
// be graded Forbidden.
func NewRouteTable(defs []routeDef, adj *Adjacency) (*RouteTable, error) {
	byKey := make(map[routeKey]routeDef, len(defs))
	for _, def := range defs {
		key := routeKey{from: def.from, to: def.to}
		if _, dup := byKey[key]; dup {
			return nil, fmt.Errorf("%w: duplicate route %s->%s", ErrConfiguration, def.from, def.to)
		}
		byKey[key] = def
	}

	t := &RouteTable{routes: make(map[routeKey][]State, len(defs))}
	for key, def := range byKey {
		expanded, err := expandRoute(def, byKey, map[routeKey]bool{key: true})
		if err != nil {
			return nil, err
		}
		if len(expanded) == 0 {
			return nil, fmt.Errorf("%w: empty route %s->%s", ErrConfiguration, def.from, def.to)
		}
		if expanded[len(expanded)-1] != def.to {
			return nil, fmt.Errorf("%w: route %s->%s ends at %s", ErrConfiguration, def.from, def.to, expanded[len(expanded)-1])
		}
		if err := validateHops(def.from, expanded, adj); err != nil {
			return nil, err
		}
		t.routes[key] = expanded
	}
	return t, nil
}

// DefaultRouteTable builds the route table from the built-in definitions.
func DefaultRouteTable(adj *Adjacency) *RouteTable {
	t, err := NewRouteTable(defaultRoutes(), adj)
	if err != nil {
		panic(err)
	}
	return t
}

// Lookup returns the expanded hop sequence for (from, to), if registered.
func (t *RouteTable) Lookup(from, to State) ([]State, bool) {
	hops, ok := t.routes[routeKey{from: from, to: to}]
	return hops, ok
}

// expandRoute splices referenced routes in place, collapsing consecutive
// duplicates at the splice points. visited bounds the expansion: a
// reference chain that revisits a key is a cycle and fails fast.
func expandRoute(def routeDef, byKey map[routeKey]routeDef, visited map[routeKey]bool) ([]State, error) {
	var out []State
	appendState := func(s State) {
		if !KnownState(s) {
			return
		}
		if len(out) > 0 && out[len(out)-1] == s {
			return
		}
		out = append(out, s)
	}
	for _, st := range def.steps {
		if st.ref == nil {
			if !KnownState(st.state) {
				return nil, fmt.Errorf("%w: route %s->%s references unknown state %q", ErrConfiguration, def.from, def.to, st.state)
			}
			appendState(st.state)
			continue
		}
		key := *st.ref
		if visited[key] {
			return nil, fmt.Errorf("%w: route %s->%s reference cycle through %s->%s", ErrConfiguration, def.from, def.to, key.from, key.to)
		}
		sub, ok := byKey[key]
		if !ok {
			return nil, fmt.Errorf("%w: route %s->%s references unregistered route %s->%s", ErrConfiguration, def.from, def.to, key.from, key.to)
		}
		visited[key] = true
		expanded, err := expandRoute(sub, byKey, visited)
		delete(visited, key)
		if err != nil {
			return nil, err
		}
		for _, s := range expanded {
			appendState(s)
		}
	}
	return out, nil
}

func validateHops(from State, hops []State, adj *Adjacency) error {
	prev := from
	for _, hop := range hops {
		cls, err := adj.Classify(prev, hop)
		if err != nil {
			return fmt.Errorf("%w: route %s->%s: %v", ErrConfiguration, from, hops[len(hops)-1], err)
		}
		if cls == Forbidden {
			return fmt.Errorf("%w: route %s->%s contains forbidden hop %s->%s", ErrConfiguration, from, hops[len(hops)-1], prev, hop)
		}
		prev = hop
	}
	return nil
}

// Authored intermediate paths for the forbidden pairs the biome profiles
// actually traverse. Gaps are reported by ValidateTables and degrade to a
// direct hop at runtime.
func defaultRoutes() []routeDef {
	return []routeDef{
		{from: StateClear, to: StateStorm, steps: []routeStep{step(StateCloudy), step(StateRain), step(StateHeavyRain), step(StateStorm)}},
		{from: StateStorm, to: StateClear, steps: []routeStep{step(StateRain), step(StateCloudy), step(StateClear)}},
		{from: StateClear, to: StateRain, steps: []routeStep{step(StateCloudy), step(StateDrizzle), step(StateRain)}},
		{from: StateRain, to: StateClear, steps: []routeStep{step(StateCloudy), step(StateClear)}},
		{from: StateClear, to: StateHeavyRain, steps: []routeStep{step(StateCloudy), step(StateRain), step(StateHeavyRain)}},
		{from: StateHeavyRain, to: StateClear, steps: []routeStep{step(StateRain), step(StateCloudy), step(StateClear)}},
		{from: StateClear, to: StateDrizzle, steps: []routeStep{step(StateCloudy), step(StateDrizzle)}},
		{from: StateClear, to: StateLightSnow, steps: []routeStep{step(StateCloudy), step(StateLightSnow)}},
		{from: StateClear, to: StateSnow, steps: []routeStep{step(StateCloudy), step(StateLightSnow), step(StateSnow)}},
		{from: StateSnow, to: StateClear, steps: []routeStep{step(StateLightSnow), step(StateClear)}},
		{from: StateClear, to: StateBlizzard, steps: []routeStep{step(StateCloudy), step(StateLightSnow), step(StateSnow), step(StateBlizzard)}},
		{from: StateBlizzard, to: StateClear, steps: []routeStep{step(StateSnow), step(StateLightSnow), step(StateClear)}},
		{from: StateBlizzard, to: StateCloudy, steps: []routeStep{step(StateSnow), step(StateLightSnow), step(StateCloudy)}},
		{from: StateStorm, to: StateCloudy, steps: []routeStep{step(StateHeavyRain), step(StateRain), step(StateCloudy)}},
		{from: StateStorm, to: StateBlizzard, steps: []routeStep{via(StateStorm, StateCloudy), step(StateLightSnow), step(StateSnow), step(StateBlizzard)}},
		{from: StateSandstorm, to: StateClear, steps: []routeStep{step(StateCloudy), step(StateClear)}},
		{from: StateSandstorm, to: StateRain, steps: []routeStep{via(StateSandstorm, StateClear), step(StateCloudy), step(StateDrizzle), step(StateRain)}},
		{from: StateRain, to: StateSandstorm, steps: []routeStep{step(StateCloudy), step(StateSandstorm)}},
		{from: StateStorm, to: StateSandstorm, steps: []routeStep{via(StateStorm, StateCloudy), step(StateSandstorm)}},
		{from: StateSandstorm, to: StateStorm, steps: []routeStep{step(StateCloudy), step(StateRain), step(StateHeavyRain), step(StateStorm)}},
	}
}
