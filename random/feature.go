package random

import (
	"github.com/paulmach/orb/geojson"

	geotools "github.com/tingold/orb-geotools"
)

// Feature wraps a random geometry of the given kind in a GeoJSON feature.
// The feature's "kind" property records the geometry type.
func (g *Generator) Feature(kind string, opts ...Option) (*geojson.Feature, error) {
	geom, err := g.Kind(kind, opts...)
	if err != nil {
		return nil, err
	}

	f := geojson.NewFeature(geom)
	f.Properties["kind"] = geom.GeoJSONType()
	return f, nil
}

// FeatureCollection returns n random features of the given kind.
func (g *Generator) FeatureCollection(kind string, n int, opts ...Option) (*geojson.FeatureCollection, error) {
	if n < 0 {
		return nil, &geotools.InvalidOptionError{Option: "count", Reason: "must not be negative"}
	}

	fc := geojson.NewFeatureCollection()
	for i := 0; i < n; i++ {
		f, err := g.Feature(kind, opts...)
		if err != nil {
			return nil, err
		}
		f.Properties["index"] = i
		fc.Append(f)
	}
	return fc, nil
}
