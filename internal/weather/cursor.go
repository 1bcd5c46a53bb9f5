package weather

// cursor is the mutable transition state owned by a Controller. origin is
// the parameter vector blending starts from on the active hop — normally
// the previous state's profile, but after a mid-transition retarget it is
// the live blended vector captured at the moment of the request, which is
// what keeps retargeting free of visual pops.
type cursor struct {
	current  State
	target   State
	origin   Params
	plan     []State // remaining hops; head is the active destination
	progress float64 // 0..1 within the active hop
}

func newCursor(start State, startParams Params) cursor {
	return cursor{
		current:  start,
		target:   start,
		origin:   startParams,
		progress: 1,
	}
}

func (c *cursor) inTransition() bool {
	return len(c.plan) > 0
}

// retarget replaces any in-flight plan. live is the currently displayed
// vector; anchor is the state routing resolved from.
func (c *cursor) retarget(anchor State, live Params, plan Plan) {
	c.current = anchor
	c.target = plan.Hops[len(plan.Hops)-1]
	c.origin = live
	c.plan = append([]State(nil), plan.Hops...)
	c.progress = 0
}

// advance drives progress and walks the plan. catalog lookups along a
// validated plan cannot fail, so hop profiles are fetched unchecked.
func (c *cursor) advance(dt, speed float64, catalog *Catalog) {
	if !c.inTransition() {
		return
	}
	c.progress = clamp(c.progress+dt*speed, 0, 1)
	for c.progress >= 1 && len(c.plan) > 0 {
		head := c.plan[0]
		c.current = head
		c.plan = c.plan[1:]
		if len(c.plan) == 0 {
			c.progress = 1
			c.origin = mustProfile(catalog, head).Params
			return
		}
		c.origin = mustProfile(catalog, head).Params
		c.progress = 0
	}
}

// live computes the blended parameter vector for the active hop. The
// discrete precipitation kind flips at the crossfade midpoint; every
// numeric field interpolates linearly, so each stays bounded by its
// endpoint values.
func (c *cursor) live(catalog *Catalog) Params {
	if !c.inTransition() {
		return c.origin
	}
	dest := mustProfile(catalog, c.plan[0]).Params
	return blendParams(c.origin, dest, c.progress)
}

func blendParams(from, to Params, t float64) Params {
	kind := from.Kind
	if t >= 0.5 {
		kind = to.Kind
	}
	return Params{
		Kind:               kind,
		PrecipIntensity:    lerp(from.PrecipIntensity, to.PrecipIntensity, t),
		HazeDensity:        lerp(from.HazeDensity, to.HazeDensity, t),
		DischargeFrequency: lerp(from.DischargeFrequency, to.DischargeFrequency, t),
		SkyDarkness:        lerp(from.SkyDarkness, to.SkyDarkness, t),
		WindMultiplier:     lerp(from.WindMultiplier, to.WindMultiplier, t),
	}
}

func mustProfile(catalog *Catalog, s State) Profile {
	p, err := catalog.Lookup(s)
	if err != nil {
		panic(err)
	}
	return p
}
