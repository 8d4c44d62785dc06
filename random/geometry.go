package random

import (
	"github.com/paulmach/orb"
)

const (
	minLineVertices    = 2
	minPolygonVertices = 3
)

// Point returns a random point. Vertex counts are ignored.
func (g *Generator) Point(opts ...Option) (orb.Point, error) {
	o, err := resolve(opts)
	if err != nil {
		return orb.Point{}, err
	}
	return g.point(o), nil
}

// LineString returns a random walk of WithVertices positions (default 2).
func (g *Generator) LineString(opts ...Option) (orb.LineString, error) {
	o, err := resolve(opts)
	if err != nil {
		return nil, err
	}
	return g.lineString(o.withDefaults(lineDefaults)), nil
}

// Polygon returns a single ring polygon with WithVertices distinct
// positions (default and minimum 3) plus the closing position.
func (g *Generator) Polygon(opts ...Option) (orb.Polygon, error) {
	o, err := resolve(opts)
	if err != nil {
		return nil, err
	}
	return g.polygon(o.withDefaults(polygonDefaults)), nil
}

// MultiPoint returns WithVertices points (default 2) taken from one walk.
func (g *Generator) MultiPoint(opts ...Option) (orb.MultiPoint, error) {
	o, err := resolve(opts)
	if err != nil {
		return nil, err
	}
	return g.multiPoint(o.withDefaults(lineDefaults)), nil
}

// MultiLineString returns WithLines independent line strings (default 2) of
// WithVertices positions each (default 2).
func (g *Generator) MultiLineString(opts ...Option) (orb.MultiLineString, error) {
	o, err := resolve(opts)
	if err != nil {
		return nil, err
	}
	return g.multiLineString(o.withDefaults(multiLineDefaults)), nil
}

// MultiPolygon returns WithPolygons independent single ring polygons
// (default 2) of WithVertices positions each (default 3).
func (g *Generator) MultiPolygon(opts ...Option) (orb.MultiPolygon, error) {
	o, err := resolve(opts)
	if err != nil {
		return nil, err
	}
	return g.multiPolygon(o.withDefaults(multiPolyDefaults)), nil
}

func (g *Generator) point(o options) orb.Point {
	return g.position(o)
}

func (g *Generator) lineString(o options) orb.LineString {
	o.vertices = max(o.vertices, minLineVertices)
	return orb.LineString(g.positions(o))
}

func (g *Generator) multiPoint(o options) orb.MultiPoint {
	o.vertices = max(o.vertices, minLineVertices)
	return orb.MultiPoint(g.positions(o))
}

func (g *Generator) ring(o options) orb.Ring {
	o.vertices = max(o.vertices, minPolygonVertices)
	ring := orb.Ring(g.positions(o))
	return append(ring, ring[0])
}

func (g *Generator) polygon(o options) orb.Polygon {
	return orb.Polygon{g.ring(o)}
}

func (g *Generator) multiLineString(o options) orb.MultiLineString {
	mls := make(orb.MultiLineString, 0, o.lines)
	for i := 0; i < o.lines; i++ {
		mls = append(mls, g.lineString(o))
	}
	return mls
}

func (g *Generator) multiPolygon(o options) orb.MultiPolygon {
	mp := make(orb.MultiPolygon, 0, o.polygons)
	for i := 0; i < o.polygons; i++ {
		mp = append(mp, g.polygon(o))
	}
	return mp
}
