// Package calculation holds small geometric helpers: centroids and parsing
// of delimited coordinate strings into geometries.
package calculation

import (
	"encoding/json"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"

	geotools "github.com/tingold/orb-geotools"
)

// CentroidOf returns the mean of all vertices of g. The closing position of
// every ring is skipped so it is not counted twice.
func CentroidOf(g orb.Geometry) (orb.Point, error) {
	var acc accumulator
	acc.add(g)
	return acc.mean()
}

// CentroidOfFeatures returns the mean of all vertices of every feature
// geometry in fc.
func CentroidOfFeatures(fc *geojson.FeatureCollection) (orb.Point, error) {
	if fc == nil {
		return orb.Point{}, fmt.Errorf("centroid: %w", geotools.ErrEmptyGeometry)
	}
	var acc accumulator
	for _, f := range fc.Features {
		if f != nil {
			acc.add(f.Geometry)
		}
	}
	return acc.mean()
}

// CentroidOfGeoJSON decodes a GeoJSON geometry, Feature or
// FeatureCollection and returns its vertex centroid.
func CentroidOfGeoJSON(data []byte) (orb.Point, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return orb.Point{}, geotools.NewValidationError("", []string{err.Error()})
	}

	switch probe.Type {
	case geotools.KindFeatureCollection:
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return orb.Point{}, geotools.NewValidationError(probe.Type, []string{err.Error()})
		}
		return CentroidOfFeatures(fc)

	case geotools.KindFeature:
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return orb.Point{}, geotools.NewValidationError(probe.Type, []string{err.Error()})
		}
		return CentroidOf(f.Geometry)

	default:
		g, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return orb.Point{}, geotools.NewValidationError(probe.Type, []string{err.Error()})
		}
		return CentroidOf(g.Geometry())
	}
}

// CenterOfMass returns the area weighted centroid of g. Lines are weighted
// by length and points are averaged, following orb/planar.
func CenterOfMass(g orb.Geometry) (orb.Point, error) {
	var acc accumulator
	acc.add(g)
	if acc.n == 0 {
		return orb.Point{}, fmt.Errorf("center of mass: %w", geotools.ErrEmptyGeometry)
	}
	c, _ := planar.CentroidArea(g)
	return c, nil
}

type accumulator struct {
	x, y float64
	n    int
}

func (a *accumulator) point(p orb.Point) {
	a.x += p[0]
	a.y += p[1]
	a.n++
}

func (a *accumulator) ring(r orb.Ring) {
	end := len(r)
	if end > 1 && r.Closed() {
		end--
	}
	for _, p := range r[:end] {
		a.point(p)
	}
}

func (a *accumulator) add(g orb.Geometry) {
	switch v := g.(type) {
	case nil:
	case orb.Point:
		a.point(v)
	case orb.MultiPoint:
		for _, p := range v {
			a.point(p)
		}
	case orb.LineString:
		for _, p := range v {
			a.point(p)
		}
	case orb.MultiLineString:
		for _, ls := range v {
			a.add(ls)
		}
	case orb.Ring:
		a.ring(v)
	case orb.Polygon:
		for _, r := range v {
			a.ring(r)
		}
	case orb.MultiPolygon:
		for _, p := range v {
			a.add(p)
		}
	case orb.Collection:
		for _, child := range v {
			a.add(child)
		}
	case orb.Bound:
		a.add(v.ToPolygon())
	}
}

func (a *accumulator) mean() (orb.Point, error) {
	if a.n == 0 {
		return orb.Point{}, fmt.Errorf("centroid: %w", geotools.ErrEmptyGeometry)
	}
	return orb.Point{a.x / float64(a.n), a.y / float64(a.n)}, nil
}
