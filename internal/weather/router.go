package weather

// Plan is the ordered hop sequence from a source to a destination. Hops
// never repeats the source and always ends in the destination. Degraded
// marks the documented fallback: a forbidden pair with no registered
// route collapses to the direct hop so the sky keeps moving, and the
// caller's observability layer is expected to count it.
type Plan struct {
	From     State
	Hops     []State
	Degraded bool
}

// Router turns a requested (from, to) pair into a concrete Plan. Pure:
// the same pair and tables always produce the same plan.
type Router struct {
	adjacency *Adjacency
	routes    *RouteTable
}

func NewRouter(adj *Adjacency, routes *RouteTable) *Router {
	return &Router{adjacency: adj, routes: routes}
}

// Route resolves (from, to). Natural and abrupt pairs transition directly;
// forbidden pairs follow their registered route, or degrade to the direct
// hop when none is registered.
func (r *Router) Route(from, to State) (Plan, error) {
	cls, err := r.adjacency.Classify(from, to)
	if err != nil {
		return Plan{}, err
	}
	if cls != Forbidden {
		return Plan{From: from, Hops: []State{to}}, nil
	}
	if hops, ok := r.routes.Lookup(from, to); ok {
		return Plan{From: from, Hops: hops}, nil
	}
	return Plan{From: from, Hops: []State{to}, Degraded: true}, nil
}

// ValidateTables cross-checks the static data the way load-time
// configuration errors are surfaced: every forbidden pair lacking a
// registered route is returned so operators can close the gaps before
// the degraded fallback fires in production.
func ValidateTables(adj *Adjacency, routes *RouteTable) [][2]State {
	var missing [][2]State
	for _, pair := range adj.ForbiddenPairs() {
		if _, ok := routes.Lookup(pair[0], pair[1]); !ok {
			missing = append(missing, pair)
		}
	}
	return missing
}
