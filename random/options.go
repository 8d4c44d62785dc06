package random

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"

	geotools "github.com/tingold/orb-geotools"
	"github.com/tingold/orb-geotools/config"
)

// Option configures a single generator call.
type Option func(*options)

// optionalFloat tracks whether a value was supplied so an explicit zero is
// honoured instead of being replaced by a random draw.
type optionalFloat struct {
	value float64
	set   bool
}

func (f optionalFloat) or(fallback func() float64) float64 {
	if f.set {
		return f.value
	}
	return fallback()
}

type options struct {
	bbox      *orb.Bound
	vertices  int
	lines     int
	polygons  int
	kinds     int
	angle     optionalFloat
	distance  optionalFloat
	longitude optionalFloat
	latitude  optionalFloat
}

// WithBBox limits generated positions to b.
func WithBBox(b orb.Bound) Option {
	return func(o *options) {
		o.bbox = &b
	}
}

// WithVertices sets how many positions each geometry part holds. Polygons
// use at least 3 (plus the closing position), line strings and multi points
// at least 2.
func WithVertices(n int) Option {
	return func(o *options) {
		o.vertices = n
	}
}

// WithLines sets how many line strings a MultiLineString holds.
func WithLines(n int) Option {
	return func(o *options) {
		o.lines = n
	}
}

// WithPolygons sets how many polygons a MultiPolygon holds.
func WithPolygons(n int) Option {
	return func(o *options) {
		o.polygons = n
	}
}

// WithKinds sets how many distinct geometry kinds a GeometryCollection
// holds. When unset the collection falls back to the vertex count.
func WithKinds(n int) Option {
	return func(o *options) {
		o.kinds = n
	}
}

// WithAngle fixes the base heading, in radians, of each random walk step.
// The step is still perturbed by up to Config.MaxRotation.
func WithAngle(radians float64) Option {
	return func(o *options) {
		o.angle = optionalFloat{value: radians, set: true}
	}
}

// WithDistance fixes the length of each random walk step.
func WithDistance(d float64) Option {
	return func(o *options) {
		o.distance = optionalFloat{value: d, set: true}
	}
}

// WithLongitude fixes the longitude the first step starts from.
func WithLongitude(lon float64) Option {
	return func(o *options) {
		o.longitude = optionalFloat{value: lon, set: true}
	}
}

// WithLatitude fixes the latitude the first step starts from.
func WithLatitude(lat float64) Option {
	return func(o *options) {
		o.latitude = optionalFloat{value: lat, set: true}
	}
}

// WithOrigin fixes the position the first step starts from.
func WithOrigin(p orb.Point) Option {
	return func(o *options) {
		o.longitude = optionalFloat{value: p.Lon(), set: true}
		o.latitude = optionalFloat{value: p.Lat(), set: true}
	}
}

// defaults holds the per-builder fallback counts applied to zero fields.
type defaults struct {
	vertices int
	lines    int
	polygons int
}

var (
	positionDefaults   = defaults{vertices: 2}
	lineDefaults       = defaults{vertices: 2}
	polygonDefaults    = defaults{vertices: 3}
	multiLineDefaults  = defaults{vertices: 2, lines: 2}
	multiPolyDefaults  = defaults{vertices: 3, polygons: 2}
	collectionDefaults = defaults{vertices: 3, lines: 2, polygons: 2}
)

func resolve(opts []Option) (options, error) {
	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o, o.validate()
}

func (o options) withDefaults(d defaults) options {
	if o.vertices == 0 {
		o.vertices = d.vertices
	}
	if o.lines == 0 {
		o.lines = d.lines
	}
	if o.polygons == 0 {
		o.polygons = d.polygons
	}
	return o
}

func (o options) validate() error {
	counts := []struct {
		name  string
		value int
	}{
		{"vertices", o.vertices},
		{"lines", o.lines},
		{"polygons", o.polygons},
		{"kinds", o.kinds},
	}
	for _, c := range counts {
		if c.value < 0 {
			return &geotools.InvalidOptionError{
				Option: c.name,
				Reason: fmt.Sprintf("must not be negative, got %d", c.value),
			}
		}
	}

	if o.bbox != nil {
		if err := config.ValidateBBox(*o.bbox); err != nil {
			return err
		}
	}

	floats := []struct {
		name  string
		value optionalFloat
	}{
		{"angle", o.angle},
		{"distance", o.distance},
		{"longitude", o.longitude},
		{"latitude", o.latitude},
	}
	for _, f := range floats {
		if f.value.set && !isFinite(f.value.value) {
			return &geotools.InvalidOptionError{Option: f.name, Reason: "must be finite"}
		}
	}
	if o.distance.set && o.distance.value < 0 {
		return &geotools.InvalidOptionError{Option: "distance", Reason: "must not be negative"}
	}

	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
