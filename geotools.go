// Package geotools provides geospatial convenience helpers built on the orb
// geometry library: random geometry generation for fixtures and tests,
// GeoJSON validation, coordinate string parsing, centroids and pull-based
// feature readers for common file formats.
//
// The root package only holds what the sub packages share: geometry kind
// names and error types. See the random, validation, calculation, read and
// fgb packages for the actual functionality.
package geotools

import (
	"errors"
)

// GeoJSON object type names.
const (
	KindPoint              = "Point"
	KindLineString         = "LineString"
	KindPolygon            = "Polygon"
	KindMultiPoint         = "MultiPoint"
	KindMultiLineString    = "MultiLineString"
	KindMultiPolygon       = "MultiPolygon"
	KindGeometryCollection = "GeometryCollection"
	KindFeature            = "Feature"
	KindFeatureCollection  = "FeatureCollection"
)

// GeometryKinds lists the six non-collection geometry kinds in the order
// used by the random generators.
var GeometryKinds = []string{
	KindPoint,
	KindLineString,
	KindPolygon,
	KindMultiPoint,
	KindMultiLineString,
	KindMultiPolygon,
}

// IsGeometryKind reports whether kind names a GeoJSON geometry type,
// including GeometryCollection.
func IsGeometryKind(kind string) bool {
	if kind == KindGeometryCollection {
		return true
	}
	for _, k := range GeometryKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// Common errors returned by the geotools packages.
var (
	ErrEmptyGeometry     = errors.New("geotools: empty geometry")
	ErrUnsupportedFormat = errors.New("geotools: unsupported file format")
)
