package read

import (
	"errors"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	geotools "github.com/tingold/orb-geotools"
)

func TestOpenGeoJSON(t *testing.T) {
	r, err := OpenGeoJSON(writeFile(t, "points.geojson", pointsGeoJSON))
	require.NoError(t, err)

	features := collect(t, r)
	require.Len(t, features, 3)
	assert.Equal(t, orb.Point{1, 2}, features[0].Geometry)
	assert.Equal(t, "c", features[2].Properties["name"])
}

func TestOpenGeoJSON_SingleObjects(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    orb.Geometry
	}{
		{"feature", `{"properties":{"a":1},"geometry":{"type":"LineString","coordinates":[[0,0],[1,1]]},"type":"Feature"}`, orb.LineString{{0, 0}, {1, 1}}},
		{"geometry", `{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]}`, orb.Polygon{{{0, 0}, {1, 0}, {1, 1}, {0, 0}}}},
		{"collection", `{"type":"GeometryCollection","geometries":[{"type":"Point","coordinates":[1,2]}]}`, orb.Collection{orb.Point{1, 2}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := OpenGeoJSON(writeFile(t, "single.geojson", tt.content))
			require.NoError(t, err)

			features := collect(t, r)
			require.Len(t, features, 1)
			assert.Equal(t, tt.want, features[0].Geometry)
		})
	}
}

func TestOpenGeoJSON_FeaturesBeforeType(t *testing.T) {
	r, err := OpenGeoJSON(writeFile(t, "reordered.geojson",
		`{"features":[{"type":"Feature","geometry":null,"properties":null}],"type":"FeatureCollection"}`))
	require.NoError(t, err)
	assert.Len(t, collect(t, r), 1)
}

func TestOpenGeoJSON_EmptyCollection(t *testing.T) {
	for _, content := range []string{
		`{"type":"FeatureCollection","features":[]}`,
		`{"type":"FeatureCollection"}`,
	} {
		r, err := OpenGeoJSON(writeFile(t, "empty.geojson", content))
		require.NoError(t, err)
		assert.Empty(t, collect(t, r))
	}
}

func TestOpenGeoJSON_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty file", ""},
		{"scalar", `42`},
		{"unknown type", `{"type":"Circle","radius":3}`},
		{"no type", `{"coordinates":[1,2]}`},
		{"features not array", `{"type":"FeatureCollection","features":{}}`},
		{"broken geometry", `{"type":"Point","coordinates":"x"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := OpenGeoJSON(writeFile(t, "invalid.geojson", tt.content))
			var ioErr *geotools.IOError
			require.True(t, errors.As(err, &ioErr), "got %v", err)
		})
	}
}

func TestOpenJSON(t *testing.T) {
	path := writeFile(t, "records.json", `[
		{"name":"a","lng":1.5,"lat":"2.5"},
		{"name":"b","geometry":{"type":"Point","coordinates":[3,4]}},
		{"name":"c","wkt":"LINESTRING (0 0, 1 1)"},
		{"type":"Feature","geometry":{"type":"Point","coordinates":[5,6]},"properties":{"name":"d"}},
		{"name":"e","tags":["x","y"]},
		null
	]`)

	r, err := OpenJSON(path)
	require.NoError(t, err)
	features := collect(t, r)
	require.Len(t, features, 5)

	assert.Equal(t, orb.Point{1.5, 2.5}, features[0].Geometry)
	assert.Equal(t, 1.5, features[0].Properties["lng"])

	assert.Equal(t, orb.Point{3, 4}, features[1].Geometry)
	_, ok := features[1].Properties["geometry"]
	assert.False(t, ok)

	assert.Equal(t, orb.LineString{{0, 0}, {1, 1}}, features[2].Geometry)

	assert.Equal(t, orb.Point{5, 6}, features[3].Geometry)
	assert.Equal(t, "d", features[3].Properties["name"])

	assert.Nil(t, features[4].Geometry)
	assert.Equal(t, []any{"x", "y"}, features[4].Properties["tags"])
}

func TestOpenJSON_ObjectIsGeoJSON(t *testing.T) {
	r, err := OpenJSON(writeFile(t, "points.json", pointsGeoJSON))
	require.NoError(t, err)
	assert.Len(t, collect(t, r), 3)
}

func TestOpenJSON_InvalidRecord(t *testing.T) {
	r, err := OpenJSON(writeFile(t, "bad.json", `[{"lon":1,"lat":2},[1,2]]`))
	require.NoError(t, err)

	_, err = All(r)
	var ioErr *geotools.IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Contains(t, ioErr.Messages, "element 1")

	r, err = OpenJSON(writeFile(t, "badlon.json", `[{"lon":true,"lat":2}]`))
	require.NoError(t, err)
	_, err = All(r)
	require.True(t, errors.As(err, &ioErr))
}
