// Package random generates synthetic GeoJSON geometries for fixtures and
// tests.
//
// Every multi-position geometry is a bounded random walk: the first
// position is drawn inside the bounding box and each following position is
// one step away from the previous one, heading in a randomly perturbed
// direction. Step length and perturbation are limited by config.Config.
package random

import (
	"math"
	"math/rand/v2"

	"github.com/paulmach/orb"

	"github.com/tingold/orb-geotools/config"
)

// Generator produces random positions and geometries. It is safe for
// concurrent use as long as its source is.
type Generator struct {
	cfg config.Config
	rnd *rand.Rand
}

// New creates a generator from cfg. A nil src uses the runtime's global
// source; use NewSource for reproducible output.
func New(cfg config.Config, src rand.Source) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		src = runtimeSource{}
	}
	return &Generator{cfg: cfg, rnd: rand.New(src)}, nil
}

// Config returns the configuration the generator was built with.
func (g *Generator) Config() config.Config {
	return g.cfg
}

// Longitude returns a longitude drawn uniformly between the west and east
// edges of the bounding box.
func (g *Generator) Longitude(opts ...Option) (float64, error) {
	o, err := resolve(opts)
	if err != nil {
		return 0, err
	}
	return g.longitude(g.bbox(o)), nil
}

// Latitude returns a latitude drawn uniformly between the south and north
// edges of the bounding box.
func (g *Generator) Latitude(opts ...Option) (float64, error) {
	o, err := resolve(opts)
	if err != nil {
		return 0, err
	}
	return g.latitude(g.bbox(o)), nil
}

// Position returns the next position of a random walk. Without an origin
// the walk starts from a random position inside the bounding box.
func (g *Generator) Position(opts ...Option) (orb.Point, error) {
	o, err := resolve(opts)
	if err != nil {
		return orb.Point{}, err
	}
	return g.position(o), nil
}

// Positions returns a connected random walk of WithVertices positions
// (default 2).
func (g *Generator) Positions(opts ...Option) ([]orb.Point, error) {
	o, err := resolve(opts)
	if err != nil {
		return nil, err
	}
	return g.positions(o.withDefaults(positionDefaults)), nil
}

func (g *Generator) bbox(o options) orb.Bound {
	if o.bbox != nil {
		return *o.bbox
	}
	return g.cfg.BBox
}

func (g *Generator) longitude(b orb.Bound) float64 {
	return g.rnd.Float64()*(b.Max[0]-b.Min[0]) + b.Min[0]
}

func (g *Generator) latitude(b orb.Bound) float64 {
	return g.rnd.Float64()*(b.Max[1]-b.Min[1]) + b.Min[1]
}

func (g *Generator) position(o options) orb.Point {
	bbox := g.bbox(o)

	angle := o.angle.or(func() float64 {
		return g.rnd.Float64() * 2 * math.Pi
	})
	angle += (g.rnd.Float64() - 0.5) * g.cfg.MaxRotation * 2

	distance := o.distance.or(func() float64 {
		return g.rnd.Float64() * g.cfg.MaxLength
	})

	lon := o.longitude.or(func() float64 { return g.longitude(bbox) })
	lat := o.latitude.or(func() float64 { return g.latitude(bbox) })

	return clamp(orb.Point{
		lon + distance*math.Cos(angle),
		lat + distance*math.Sin(angle),
	}, bbox)
}

// positions walks o.vertices steps, each one starting where the previous
// one ended.
func (g *Generator) positions(o options) []orb.Point {
	points := make([]orb.Point, 0, o.vertices)
	for i := 0; i < o.vertices; i++ {
		p := g.position(o)
		o.longitude = optionalFloat{value: p.Lon(), set: true}
		o.latitude = optionalFloat{value: p.Lat(), set: true}
		points = append(points, p)
	}
	return points
}

// clamp keeps p inside b.
func clamp(p orb.Point, b orb.Bound) orb.Point {
	return orb.Point{
		math.Min(math.Max(p[0], b.Min[0]), b.Max[0]),
		math.Min(math.Max(p[1], b.Min[1]), b.Max[1]),
	}
}
