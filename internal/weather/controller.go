package weather

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/appengine-ltd/weathervane/internal/observability"
)

// DefaultHopDuration is the nominal wall-clock length of a single hop.
const DefaultHopDuration = 2500 * time.Millisecond

// Snapshot is the per-tick output handed to rendering collaborators: the
// live blended parameter vector, its rendering hints, and the wind force.
type Snapshot struct {
	Params Params
	Hints  Hints
	Wind   Vec3
}

// ControllerConfig assembles a Controller. Catalog, Adjacency and Routes
// default to the built-in tables; Metrics and Logger may be nil.
type ControllerConfig struct {
	Catalog     *Catalog
	Adjacency   *Adjacency
	Routes      *RouteTable
	Start       State
	HopDuration time.Duration
	Wind        WindConfig
	Metrics     *observability.Metrics
	Logger      *slog.Logger
}

// Controller is the façade composing catalog, router, interpolation and
// wind. One Controller owns one cursor and one wind state; it is driven
// by a single Tick caller and is not safe for concurrent mutation.
type Controller struct {
	catalog *Catalog
	router  *Router
	wind    *Wind
	cursor  cursor
	speed   float64
	base    float64
	metrics *observability.Metrics
	log     *slog.Logger
}

func NewController(cfg ControllerConfig) (*Controller, error) {
	if cfg.Catalog == nil {
		cfg.Catalog = DefaultCatalog()
	}
	if cfg.Adjacency == nil {
		cfg.Adjacency = DefaultAdjacency()
	}
	if cfg.Routes == nil {
		cfg.Routes = DefaultRouteTable(cfg.Adjacency)
	}
	if cfg.Start == "" {
		cfg.Start = StateClear
	}
	if cfg.HopDuration <= 0 {
		cfg.HopDuration = DefaultHopDuration
	}
	if cfg.Wind.Direction == (Vec3{}) {
		cfg.Wind.Direction = Vec3{X: 1, Z: 0.2}
	}
	if cfg.Wind.BaseSpeed <= 0 {
		cfg.Wind.BaseSpeed = 6
	}
	if cfg.Logger == nil {
		cfg.Logger = discardLogger()
	}

	start, err := cfg.Catalog.Lookup(cfg.Start)
	if err != nil {
		return nil, err
	}

	return &Controller{
		catalog: cfg.Catalog,
		router:  NewRouter(cfg.Adjacency, cfg.Routes),
		wind:    NewWind(cfg.Wind),
		cursor:  newCursor(start.State, start.Params),
		speed:   1 / cfg.HopDuration.Seconds(),
		base:    cfg.Wind.BaseSpeed,
		metrics: cfg.Metrics,
		log:     cfg.Logger,
	}, nil
}

// SetState requests a transition to id. Already converged on id is a
// no-op. Mid-transition requests replace the in-flight plan: routing
// restarts from the blended position and only the latest request is
// honoured. An unknown id is rejected without touching the cursor.
func (c *Controller) SetState(id State) error {
	if _, err := c.catalog.Lookup(id); err != nil {
		return err
	}
	if !c.cursor.inTransition() && c.cursor.target == id {
		return nil
	}

	anchor := c.anchorState()
	plan, err := c.router.Route(anchor, id)
	if err != nil {
		return err
	}
	live := c.cursor.live(c.catalog)
	c.cursor.retarget(anchor, live, plan)

	if c.metrics != nil {
		c.metrics.TransitionsRequested.Inc()
		if plan.Degraded {
			c.metrics.DegradedTransitions.Inc()
		}
	}
	if plan.Degraded {
		c.log.Warn("forbidden pair has no registered route, degrading to direct hop",
			"from", anchor, "to", id)
	}
	c.log.Debug("transition planned", "from", anchor, "to", id, "hops", len(plan.Hops))
	return nil
}

// anchorState is the catalog state routing resolves from: past the
// crossfade midpoint the active hop's destination is visually dominant,
// before it the hop's source still is.
func (c *Controller) anchorState() State {
	if c.cursor.inTransition() && c.cursor.progress >= 0.5 {
		return c.cursor.plan[0]
	}
	return c.cursor.current
}

// Tick advances wind and interpolation by dt seconds and returns the
// snapshot for this frame. Negative dt is rejected without mutation.
func (c *Controller) Tick(dt float64) (Snapshot, error) {
	if dt < 0 {
		return Snapshot{}, fmt.Errorf("weather: negative dt %.4f", dt)
	}

	hopsBefore := len(c.cursor.plan)
	c.wind.Tick(dt)
	c.cursor.advance(dt, c.speed, c.catalog)
	if c.metrics != nil {
		if completed := hopsBefore - len(c.cursor.plan); completed > 0 {
			c.metrics.HopsTraversed.Add(float64(completed))
		}
		if c.cursor.inTransition() {
			c.metrics.InTransition.Set(1)
		} else {
			c.metrics.InTransition.Set(0)
		}
	}

	live := c.cursor.live(c.catalog)
	c.wind.SetBase(c.base * live.WindMultiplier)

	return Snapshot{
		Params: live,
		Hints:  c.currentHints(),
		Wind:   c.wind.Force(),
	}, nil
}

// currentHints passes through the hints of whichever endpoint owns the
// active kind; hints are opaque payload, never blended by the core.
func (c *Controller) currentHints() Hints {
	s := c.cursor.current
	if c.cursor.inTransition() && c.cursor.progress >= 0.5 {
		s = c.cursor.plan[0]
	}
	return mustProfile(c.catalog, s).Hints
}

// CurrentState is the source endpoint of the active hop, or the settled
// state when no transition is in flight.
func (c *Controller) CurrentState() State { return c.cursor.current }

// TargetState is the terminal state of the in-flight plan, or the settled
// state.
func (c *Controller) TargetState() State { return c.cursor.target }

// Progress is the normalized position within the active hop; 1 at steady
// state.
func (c *Controller) Progress() float64 { return c.cursor.progress }

// InTransition reports whether a plan is still being walked.
func (c *Controller) InTransition() bool { return c.cursor.inTransition() }
