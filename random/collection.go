package random

import (
	"fmt"
	"strings"

	"github.com/paulmach/orb"

	geotools "github.com/tingold/orb-geotools"
)

// builder turns resolved options into one geometry kind.
type builder struct {
	kind  string
	build func(g *Generator, o options) orb.Geometry
}

var builders = []builder{
	{geotools.KindPoint, func(g *Generator, o options) orb.Geometry { return g.point(o) }},
	{geotools.KindLineString, func(g *Generator, o options) orb.Geometry { return g.lineString(o) }},
	{geotools.KindPolygon, func(g *Generator, o options) orb.Geometry { return g.polygon(o) }},
	{geotools.KindMultiPoint, func(g *Generator, o options) orb.Geometry { return g.multiPoint(o) }},
	{geotools.KindMultiLineString, func(g *Generator, o options) orb.Geometry { return g.multiLineString(o) }},
	{geotools.KindMultiPolygon, func(g *Generator, o options) orb.Geometry { return g.multiPolygon(o) }},
}

// Geometry returns one of the six geometry kinds chosen uniformly at
// random. Unset counts default to 3 vertices, 2 lines and 2 polygons.
func (g *Generator) Geometry(opts ...Option) (orb.Geometry, error) {
	o, err := resolve(opts)
	if err != nil {
		return nil, err
	}
	b := builders[g.rnd.IntN(len(builders))]
	return b.build(g, o.withDefaults(collectionDefaults)), nil
}

// GeometryCollection returns a collection holding WithKinds distinct
// geometry kinds in random order. Without WithKinds the vertex count is
// used, as older callers expect; the default is 3. Counts above the six
// available kinds are clamped to six.
func (g *Generator) GeometryCollection(opts ...Option) (orb.Collection, error) {
	o, err := resolve(opts)
	if err != nil {
		return nil, err
	}
	o = o.withDefaults(collectionDefaults)

	kinds := o.kinds
	if kinds == 0 {
		kinds = o.vertices
	}
	kinds = min(kinds, len(builders))

	coll := make(orb.Collection, 0, kinds)
	for _, i := range g.rnd.Perm(len(builders))[:kinds] {
		coll = append(coll, builders[i].build(g, o))
	}
	return coll, nil
}

// Kind generates a geometry of the named GeoJSON kind. Matching is case
// insensitive; an empty kind picks one at random like Geometry.
func (g *Generator) Kind(kind string, opts ...Option) (orb.Geometry, error) {
	switch {
	case kind == "":
		return g.Geometry(opts...)
	case strings.EqualFold(kind, geotools.KindGeometryCollection):
		return g.GeometryCollection(opts...)
	}

	for _, b := range builders {
		if !strings.EqualFold(kind, b.kind) {
			continue
		}
		o, err := resolve(opts)
		if err != nil {
			return nil, err
		}
		return b.build(g, o.withDefaults(kindDefaults(b.kind))), nil
	}

	return nil, &geotools.InvalidOptionError{
		Option: "kind",
		Reason: fmt.Sprintf("unknown geometry kind %q", kind),
	}
}

func kindDefaults(kind string) defaults {
	switch kind {
	case geotools.KindPolygon:
		return polygonDefaults
	case geotools.KindMultiLineString:
		return multiLineDefaults
	case geotools.KindMultiPolygon:
		return multiPolyDefaults
	default:
		return lineDefaults
	}
}
