// Package bolt generates procedural lightning-bolt geometry. Generation
// is a pure function of its inputs: the same seed, endpoints and options
// always yield the same point sequence, so bolts can be rebuilt per frame
// (or per flicker bucket) with no shared state and in parallel.
package bolt

import (
	"math"
	"math/rand/v2"
	"time"
)

// Point is one vertex of a bolt polyline.
type Point struct {
	X, Y, Z float64
}

// Options tunes the subdivision. Zero values pick the defaults.
type Options struct {
	Depth        int     // subdivision passes; segments = 2^Depth
	Jitter       float64 // midpoint displacement relative to segment length
	BranchChance float64 // per-midpoint probability of spawning a fork
	BranchDecay  float64 // length multiplier applied to each fork
}

func (o Options) withDefaults() Options {
	if o.Depth <= 0 {
		o.Depth = 5
	}
	if o.Jitter <= 0 {
		o.Jitter = 0.18
	}
	if o.BranchDecay <= 0 {
		o.BranchDecay = 0.4
	}
	return o
}

// Bolt is a main polyline plus any forks spawned during subdivision.
type Bolt struct {
	Points   []Point
	Branches [][]Point
}

// Generate builds a bolt from start to end by recursive midpoint
// displacement: each pass splits every segment and pushes the midpoint
// along a perpendicular by a jitter proportional to the segment length.
func Generate(seed int64, start, end Point, opts Options) Bolt {
	opts = opts.withDefaults()
	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))

	points := []Point{start, end}
	var branches [][]Point

	for d := 0; d < opts.Depth; d++ {
		next := make([]Point, 0, len(points)*2-1)
		for i := 0; i < len(points)-1; i++ {
			a, b := points[i], points[i+1]
			mid := displaceMidpoint(a, b, opts.Jitter, rng)
			next = append(next, a, mid)

			if opts.BranchChance > 0 && rng.Float64() < opts.BranchChance {
				branches = append(branches, fork(mid, b, opts, rng))
			}
		}
		next = append(next, points[len(points)-1])
		points = next
	}

	return Bolt{Points: points, Branches: branches}
}

// FlickerSeed quantizes t into interval-sized buckets so a bolt holds one
// shape for a short moment and then snaps to the next, the way the
// flicker of a sustained strike reads on screen.
func FlickerSeed(seed int64, t time.Time, interval time.Duration) int64 {
	if interval <= 0 {
		interval = 40 * time.Millisecond
	}
	return seed*31337 + t.UnixMilli()/interval.Milliseconds()
}

// displaceMidpoint pushes the midpoint of a-b along a vector
// perpendicular to the segment, scaled by jitter and the segment length.
func displaceMidpoint(a, b Point, jitter float64, rng *rand.Rand) Point {
	mid := Point{
		X: (a.X + b.X) / 2,
		Y: (a.Y + b.Y) / 2,
		Z: (a.Z + b.Z) / 2,
	}
	dx, dy, dz := b.X-a.X, b.Y-a.Y, b.Z-a.Z
	length := math.Sqrt(dx*dx + dy*dy + dz*dz)
	if length == 0 {
		return mid
	}

	// Perpendicular in the horizontal plane, plus a smaller vertical wobble.
	px, pz := -dz, dx
	plen := math.Sqrt(px*px + pz*pz)
	if plen == 0 {
		px, pz, plen = 1, 0, 1
	}
	amount := jitter * length * (rng.Float64() - 0.5) * 2
	mid.X += px / plen * amount
	mid.Z += pz / plen * amount
	mid.Y += jitter * length * (rng.Float64() - 0.5)
	return mid
}

// fork spawns a shorter secondary bolt continuing roughly along a-b.
func fork(from, toward Point, opts Options, rng *rand.Rand) []Point {
	end := Point{
		X: from.X + (toward.X-from.X)*opts.BranchDecay,
		Y: from.Y + (toward.Y-from.Y)*opts.BranchDecay,
		Z: from.Z + (toward.Z-from.Z)*opts.BranchDecay,
	}
	sub := Generate(int64(rng.Uint64()), from, end, Options{
		Depth:  opts.Depth - 2,
		Jitter: opts.Jitter * 1.4,
	})
	return sub.Points
}
