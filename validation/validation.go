// Package validation checks GeoJSON objects against RFC 7946.
//
// Every check returns the full list of problems found instead of stopping
// at the first one. The Is* functions report (valid, messages); Check wraps
// the messages in a *geotools.ValidationError.
package validation

import (
	"encoding/json"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	geotools "github.com/tingold/orb-geotools"
)

// KindGeometry accepts any of the seven geometry types.
const KindGeometry = "Geometry"

// Check validates data as the given kind. An empty kind accepts any GeoJSON
// object. The returned error is nil or a *geotools.ValidationError.
func Check(kind string, data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return geotools.NewValidationError(kind, []string{"invalid json: " + err.Error()})
	}

	c := &checker{}
	switch kind {
	case "":
		c.any("", v)
	case KindGeometry:
		c.geometry("", v)
	case geotools.KindFeature:
		c.feature("", v)
	case geotools.KindFeatureCollection:
		c.featureCollection("", v)
	default:
		if !geotools.IsGeometryKind(kind) {
			return &geotools.InvalidOptionError{Option: "kind", Reason: fmt.Sprintf("unknown GeoJSON kind %q", kind)}
		}
		if obj, ok := c.object("", v); ok && c.typeIs("", obj, kind) {
			c.geometry("", obj)
		}
	}

	return geotools.NewValidationError(kind, c.messages)
}

// ValidateGeometry checks an orb geometry by rendering it as GeoJSON.
func ValidateGeometry(g orb.Geometry) error {
	if g == nil {
		return geotools.NewValidationError(KindGeometry, []string{"geometry is nil"})
	}
	data, err := json.Marshal(geojson.NewGeometry(g))
	if err != nil {
		return geotools.NewValidationError(g.GeoJSONType(), []string{err.Error()})
	}
	return Check(g.GeoJSONType(), data)
}

func is(kind string, data []byte) (bool, []string) {
	err := Check(kind, data)
	if err == nil {
		return true, nil
	}
	if verr, ok := err.(*geotools.ValidationError); ok {
		return false, verr.Messages
	}
	return false, []string{err.Error()}
}

// IsValid reports whether data is any valid GeoJSON object.
func IsValid(data []byte) (bool, []string) { return is("", data) }

// IsGeometry reports whether data is a valid GeoJSON geometry of any type.
func IsGeometry(data []byte) (bool, []string) { return is(KindGeometry, data) }

// IsPoint reports whether data is a valid GeoJSON Point.
func IsPoint(data []byte) (bool, []string) { return is(geotools.KindPoint, data) }

// IsMultiPoint reports whether data is a valid GeoJSON MultiPoint.
func IsMultiPoint(data []byte) (bool, []string) { return is(geotools.KindMultiPoint, data) }

// IsLineString reports whether data is a valid GeoJSON LineString.
func IsLineString(data []byte) (bool, []string) { return is(geotools.KindLineString, data) }

// IsMultiLineString reports whether data is a valid GeoJSON MultiLineString.
func IsMultiLineString(data []byte) (bool, []string) {
	return is(geotools.KindMultiLineString, data)
}

// IsPolygon reports whether data is a valid GeoJSON Polygon.
func IsPolygon(data []byte) (bool, []string) { return is(geotools.KindPolygon, data) }

// IsMultiPolygon reports whether data is a valid GeoJSON MultiPolygon.
func IsMultiPolygon(data []byte) (bool, []string) { return is(geotools.KindMultiPolygon, data) }

// IsGeometryCollection reports whether data is a valid GeoJSON
// GeometryCollection.
func IsGeometryCollection(data []byte) (bool, []string) {
	return is(geotools.KindGeometryCollection, data)
}

// IsFeature reports whether data is a valid GeoJSON Feature.
func IsFeature(data []byte) (bool, []string) { return is(geotools.KindFeature, data) }

// IsFeatureCollection reports whether data is a valid GeoJSON
// FeatureCollection.
func IsFeatureCollection(data []byte) (bool, []string) {
	return is(geotools.KindFeatureCollection, data)
}
