package calculation

import (
	"errors"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	geotools "github.com/tingold/orb-geotools"
)

func TestCentroidOf(t *testing.T) {
	tests := []struct {
		name     string
		geom     orb.Geometry
		expected orb.Point
	}{
		{"Point", orb.Point{3, 4}, orb.Point{3, 4}},
		{"LineString", orb.LineString{{0, 0}, {2, 2}}, orb.Point{1, 1}},
		{"MultiPoint", orb.MultiPoint{{0, 0}, {4, 0}, {2, 6}}, orb.Point{2, 2}},
		// the closing position is not counted
		{"Polygon", orb.Polygon{{{0, 0}, {4, 0}, {4, 4}, {0, 4}, {0, 0}}}, orb.Point{2, 2}},
		{"Ring", orb.Ring{{0, 0}, {2, 0}, {2, 2}, {0, 2}, {0, 0}}, orb.Point{1, 1}},
		{"MultiPolygon", orb.MultiPolygon{
			{{{0, 0}, {2, 0}, {2, 2}, {0, 2}, {0, 0}}},
			{{{10, 10}, {12, 10}, {12, 12}, {10, 12}, {10, 10}}},
		}, orb.Point{6, 6}},
		{"Collection", orb.Collection{orb.Point{0, 0}, orb.LineString{{2, 2}, {4, 4}}}, orb.Point{2, 2}},
		{"Bound", orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{2, 4}}, orb.Point{1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := CentroidOf(tt.geom)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected[0], c[0], 1e-12)
			assert.InDelta(t, tt.expected[1], c[1], 1e-12)
		})
	}
}

func TestCentroidOf_Empty(t *testing.T) {
	_, err := CentroidOf(nil)
	assert.True(t, errors.Is(err, geotools.ErrEmptyGeometry))

	_, err = CentroidOf(orb.MultiPoint{})
	assert.True(t, errors.Is(err, geotools.ErrEmptyGeometry))
}

func TestCentroidOfFeatures(t *testing.T) {
	fc := geojson.NewFeatureCollection()
	fc.Append(geojson.NewFeature(orb.Point{0, 0}))
	fc.Append(geojson.NewFeature(orb.Point{10, 20}))

	c, err := CentroidOfFeatures(fc)
	require.NoError(t, err)
	assert.Equal(t, orb.Point{5, 10}, c)

	_, err = CentroidOfFeatures(nil)
	assert.True(t, errors.Is(err, geotools.ErrEmptyGeometry))
}

func TestCentroidOfGeoJSON(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		expected orb.Point
	}{
		{"geometry", `{"type":"LineString","coordinates":[[0,0],[4,4]]}`, orb.Point{2, 2}},
		{"feature", `{"type":"Feature","geometry":{"type":"Point","coordinates":[1,2]},"properties":{}}`, orb.Point{1, 2}},
		{"collection", `{"type":"FeatureCollection","features":[
			{"type":"Feature","geometry":{"type":"Point","coordinates":[0,0]},"properties":{}},
			{"type":"Feature","geometry":{"type":"Point","coordinates":[2,4]},"properties":{}}]}`, orb.Point{1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := CentroidOfGeoJSON([]byte(tt.data))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, c)
		})
	}

	_, err := CentroidOfGeoJSON([]byte(`{"type":`))
	var verr *geotools.ValidationError
	require.True(t, errors.As(err, &verr))
}

func TestCenterOfMass(t *testing.T) {
	// an L shape: vertex mean and area centroid differ
	poly := orb.Polygon{{{0, 0}, {4, 0}, {4, 1}, {1, 1}, {1, 4}, {0, 4}, {0, 0}}}

	c, err := CenterOfMass(poly)
	require.NoError(t, err)
	assert.InDelta(t, 9.5/7, c[0], 1e-9)
	assert.InDelta(t, 9.5/7, c[1], 1e-9)

	mean, err := CentroidOf(poly)
	require.NoError(t, err)
	assert.NotEqual(t, c, mean)

	_, err = CenterOfMass(orb.Collection{})
	assert.True(t, errors.Is(err, geotools.ErrEmptyGeometry))
}
