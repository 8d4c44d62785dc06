package validation

import (
	"errors"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	geotools "github.com/tingold/orb-geotools"
	"github.com/tingold/orb-geotools/config"
	"github.com/tingold/orb-geotools/random"
)

func TestIsPoint(t *testing.T) {
	tests := []struct {
		name  string
		data  string
		valid bool
	}{
		{"valid", `{"type":"Point","coordinates":[30.5,-1.2]}`, true},
		{"with altitude", `{"type":"Point","coordinates":[30.5,-1.2,100]}`, true},
		{"with bbox", `{"type":"Point","coordinates":[1,2],"bbox":[1,2,1,2]}`, true},
		{"one element", `{"type":"Point","coordinates":[30.5]}`, false},
		{"string element", `{"type":"Point","coordinates":["30.5",1]}`, false},
		{"wrong type", `{"type":"LineString","coordinates":[30.5,1]}`, false},
		{"missing coordinates", `{"type":"Point"}`, false},
		{"bad bbox", `{"type":"Point","coordinates":[1,2],"bbox":[1,2,3]}`, false},
		{"not json", `{"type":`, false},
		{"not an object", `[1,2]`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, messages := IsPoint([]byte(tt.data))
			assert.Equal(t, tt.valid, valid, "messages: %v", messages)
			if tt.valid {
				assert.Empty(t, messages)
			} else {
				assert.NotEmpty(t, messages)
			}
		})
	}
}

func TestIsLineString(t *testing.T) {
	valid, _ := IsLineString([]byte(`{"type":"LineString","coordinates":[[0,0],[1,1]]}`))
	assert.True(t, valid)

	valid, messages := IsLineString([]byte(`{"type":"LineString","coordinates":[[0,0]]}`))
	assert.False(t, valid)
	assert.Equal(t, []string{"coordinates: must have at least 2 positions, got 1"}, messages)
}

func TestIsMultiPoint(t *testing.T) {
	valid, _ := IsMultiPoint([]byte(`{"type":"MultiPoint","coordinates":[[0,0],[1,1]]}`))
	assert.True(t, valid)

	valid, _ = IsMultiPoint([]byte(`{"type":"MultiPoint","coordinates":[[0,0],[1]]}`))
	assert.False(t, valid)
}

func TestIsMultiLineString(t *testing.T) {
	valid, _ := IsMultiLineString([]byte(`{"type":"MultiLineString","coordinates":[[[0,0],[1,1]],[[2,2],[3,3]]]}`))
	assert.True(t, valid)

	valid, messages := IsMultiLineString([]byte(`{"type":"MultiLineString","coordinates":[[[0,0],[1,1]],[[2,2]]]}`))
	assert.False(t, valid)
	assert.Len(t, messages, 1)
	assert.Contains(t, messages[0], "coordinates[1]")
}

func TestIsPolygon(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		valid    bool
		messages int
	}{
		{"valid", `{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]}`, true, 0},
		{"with hole", `{"type":"Polygon","coordinates":[[[0,0],[10,0],[10,10],[0,0]],[[1,1],[2,1],[2,2],[1,1]]]}`, true, 0},
		{"not closed", `{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,1]]]}`, false, 1},
		{"too short", `{"type":"Polygon","coordinates":[[[0,0],[1,0],[0,0]]]}`, false, 1},
		{"two bad rings", `{"type":"Polygon","coordinates":[[[0,0],[1,0],[0,0]],[[0,0],[1,0],[1,1],[0,1]]]}`, false, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, messages := IsPolygon([]byte(tt.data))
			assert.Equal(t, tt.valid, valid)
			assert.Len(t, messages, tt.messages, "%v", messages)
		})
	}
}

func TestIsMultiPolygon(t *testing.T) {
	valid, _ := IsMultiPolygon([]byte(`{"type":"MultiPolygon","coordinates":[[[[0,0],[1,0],[1,1],[0,0]]],[[[5,5],[6,5],[6,6],[5,5]]]]}`))
	assert.True(t, valid)

	valid, messages := IsMultiPolygon([]byte(`{"type":"MultiPolygon","coordinates":[[[[0,0],[1,0],[1,1],[0,0]]],[[[5,5],[6,5],[6,6],[5,6]]]]}`))
	assert.False(t, valid)
	assert.Contains(t, messages[0], "coordinates[1][0]")
}

func TestIsGeometryCollection(t *testing.T) {
	valid, _ := IsGeometryCollection([]byte(`{"type":"GeometryCollection","geometries":[{"type":"Point","coordinates":[1,2]},{"type":"LineString","coordinates":[[0,0],[1,1]]}]}`))
	assert.True(t, valid)

	valid, messages := IsGeometryCollection([]byte(`{"type":"GeometryCollection","geometries":[{"type":"Point","coordinates":[1]}]}`))
	assert.False(t, valid)
	assert.Contains(t, messages[0], "geometries[0].coordinates")

	valid, _ = IsGeometryCollection([]byte(`{"type":"GeometryCollection"}`))
	assert.False(t, valid)
}

func TestIsFeature(t *testing.T) {
	tests := []struct {
		name  string
		data  string
		valid bool
	}{
		{"valid", `{"type":"Feature","geometry":{"type":"Point","coordinates":[1,2]},"properties":{"name":"a"}}`, true},
		{"null geometry", `{"type":"Feature","geometry":null,"properties":null}`, true},
		{"string id", `{"type":"Feature","id":"a","geometry":null,"properties":{}}`, true},
		{"bad id", `{"type":"Feature","id":[1],"geometry":null,"properties":{}}`, false},
		{"missing geometry", `{"type":"Feature","properties":{}}`, false},
		{"missing properties", `{"type":"Feature","geometry":null}`, false},
		{"bad properties", `{"type":"Feature","geometry":null,"properties":[1]}`, false},
		{"bad geometry", `{"type":"Feature","geometry":{"type":"Point"},"properties":{}}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, messages := IsFeature([]byte(tt.data))
			assert.Equal(t, tt.valid, valid, "messages: %v", messages)
		})
	}
}

func TestIsFeatureCollection(t *testing.T) {
	valid, _ := IsFeatureCollection([]byte(`{"type":"FeatureCollection","features":[]}`))
	assert.True(t, valid)

	valid, messages := IsFeatureCollection([]byte(`{"type":"FeatureCollection","features":[{"type":"Feature","geometry":null,"properties":null},{"type":"Feature"}]}`))
	assert.False(t, valid)
	assert.Len(t, messages, 2)
	assert.Contains(t, messages[0], "features[1]")
}

func TestIsValidAndIsGeometry(t *testing.T) {
	feature := []byte(`{"type":"Feature","geometry":null,"properties":null}`)
	point := []byte(`{"type":"Point","coordinates":[1,2]}`)

	valid, _ := IsValid(feature)
	assert.True(t, valid)
	valid, _ = IsValid(point)
	assert.True(t, valid)
	valid, _ = IsValid([]byte(`{"type":"Circle"}`))
	assert.False(t, valid)

	valid, _ = IsGeometry(point)
	assert.True(t, valid)
	valid, _ = IsGeometry(feature)
	assert.False(t, valid)
}

func TestCheck(t *testing.T) {
	err := Check(geotools.KindPoint, []byte(`{"type":"Point","coordinates":[1]}`))

	var verr *geotools.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, geotools.KindPoint, verr.Kind)
	assert.NotEmpty(t, verr.Messages)

	require.NoError(t, Check(geotools.KindPoint, []byte(`{"type":"Point","coordinates":[1,2]}`)))

	err = Check("Circle", []byte(`{}`))
	var optErr *geotools.InvalidOptionError
	require.True(t, errors.As(err, &optErr))
}

func TestValidateGeometry(t *testing.T) {
	require.NoError(t, ValidateGeometry(orb.Point{1, 2}))
	require.NoError(t, ValidateGeometry(orb.Polygon{{{0, 0}, {1, 0}, {1, 1}, {0, 0}}}))
	require.Error(t, ValidateGeometry(orb.Polygon{{{0, 0}, {1, 0}, {1, 1}}}))
	require.Error(t, ValidateGeometry(orb.LineString{{0, 0}}))
	require.Error(t, ValidateGeometry(nil))
}

func TestValidateGeometry_RandomGeometries(t *testing.T) {
	g, err := random.New(config.Default(), random.NewSource(7))
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		geom, err := g.Geometry(random.WithVertices(i%8 + 1))
		require.NoError(t, err)
		require.NoError(t, ValidateGeometry(geom), "%#v", geom)
	}

	for k := 1; k <= 6; k++ {
		coll, err := g.GeometryCollection(random.WithKinds(k))
		require.NoError(t, err)
		require.NoError(t, ValidateGeometry(coll))
	}
}
