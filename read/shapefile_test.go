package read

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	geotools "github.com/tingold/orb-geotools"
)

// writeShapefile writes shapes and their attribute rows to dir/name.shp.
func writeShapefile(t *testing.T, name string, typ shp.ShapeType, shapes []shp.Shape, fields []shp.Field, rows [][]any) string {
	t.Helper()
	dir := t.TempDir()
	base := filepath.Join(dir, name)

	w, err := shp.Create(base+".shp", typ)
	require.NoError(t, err)
	if fields != nil {
		require.NoError(t, w.SetFields(fields))
	}
	for i, s := range shapes {
		w.Write(s)
		for j, v := range rows[i] {
			require.NoError(t, w.WriteAttribute(i, j, v))
		}
	}
	w.Close()

	// go-shp v0.1.1 writes the table as <base>dbf but reads <base>.dbf
	if fields != nil {
		require.NoError(t, os.Rename(base+"dbf", base+".dbf"))
	} else {
		require.NoError(t, os.Remove(base+"dbf"))
	}
	return base + ".shp"
}

func TestOpenShapefile_Points(t *testing.T) {
	path := writeShapefile(t, "points", shp.POINT,
		[]shp.Shape{&shp.Point{X: -9.1, Y: 38.7}, &shp.Point{X: -8.6, Y: 41.1}},
		[]shp.Field{shp.StringField("NAME", 20), shp.NumberField("POP", 10), shp.FloatField("AREA", 12, 2)},
		[][]any{{"Lisboa", 545000, 100.05}, {"Porto", 231000, 41.42}},
	)

	r, err := OpenShapefile(path)
	require.NoError(t, err)
	features := collect(t, r)
	require.Len(t, features, 2)

	assert.Equal(t, orb.Point{-9.1, 38.7}, features[0].Geometry)
	assert.Equal(t, "Lisboa", features[0].Properties["NAME"])
	assert.Equal(t, int64(545000), features[0].Properties["POP"])
	assert.Equal(t, 100.05, features[0].Properties["AREA"])

	assert.Equal(t, orb.Point{-8.6, 41.1}, features[1].Geometry)
	assert.Equal(t, "Porto", features[1].Properties["NAME"])
}

func TestOpenShapefile_WithoutDBF(t *testing.T) {
	path := writeShapefile(t, "lines", shp.POLYLINE,
		[]shp.Shape{
			shp.NewPolyLine([][]shp.Point{{{X: 0, Y: 0}, {X: 1, Y: 1}}}),
			shp.NewPolyLine([][]shp.Point{
				{{X: 0, Y: 0}, {X: 1, Y: 1}},
				{{X: 5, Y: 5}, {X: 6, Y: 6}, {X: 7, Y: 5}},
			}),
		},
		nil, nil,
	)

	r, err := OpenShapefile(path)
	require.NoError(t, err)
	features := collect(t, r)
	require.Len(t, features, 2)

	assert.Equal(t, orb.LineString{{0, 0}, {1, 1}}, features[0].Geometry)
	assert.Equal(t, orb.MultiLineString{{{0, 0}, {1, 1}}, {{5, 5}, {6, 6}, {7, 5}}}, features[1].Geometry)
	assert.Empty(t, features[0].Properties)
}

func TestOpenShapefile_Polygons(t *testing.T) {
	// clockwise outer rings, counter clockwise hole
	outer := []shp.Point{{X: 0, Y: 0}, {X: 0, Y: 10}, {X: 10, Y: 10}, {X: 10, Y: 0}, {X: 0, Y: 0}}
	hole := []shp.Point{{X: 2, Y: 2}, {X: 4, Y: 2}, {X: 4, Y: 4}, {X: 2, Y: 4}, {X: 2, Y: 2}}
	island := []shp.Point{{X: 20, Y: 20}, {X: 20, Y: 21}, {X: 21, Y: 21}, {X: 20, Y: 20}}

	withHole := shp.Polygon(*shp.NewPolyLine([][]shp.Point{outer, hole}))
	multi := shp.Polygon(*shp.NewPolyLine([][]shp.Point{outer, island}))

	path := writeShapefile(t, "polygons", shp.POLYGON, []shp.Shape{&withHole, &multi},
		[]shp.Field{shp.StringField("ID", 4)}, [][]any{{"a"}, {"b"}})

	r, err := OpenShapefile(path)
	require.NoError(t, err)
	features := collect(t, r)
	require.Len(t, features, 2)

	poly, ok := features[0].Geometry.(orb.Polygon)
	require.True(t, ok, "got %T", features[0].Geometry)
	assert.Len(t, poly, 2)

	mp, ok := features[1].Geometry.(orb.MultiPolygon)
	require.True(t, ok, "got %T", features[1].Geometry)
	assert.Len(t, mp, 2)
	assert.Equal(t, "b", features[1].Properties["ID"])
}

func TestOpenShapefile_Errors(t *testing.T) {
	_, err := OpenShapefile(writeFile(t, "points.txt", ""))
	assert.True(t, errors.Is(err, geotools.ErrUnsupportedFormat))

	_, err = OpenShapefile(filepath.Join(t.TempDir(), "missing.shp"))
	var ioErr *geotools.IOError
	require.True(t, errors.As(err, &ioErr))
}

func TestParts_CorruptOffsets(t *testing.T) {
	pts := []shp.Point{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}, {X: 3, Y: 3}}

	tests := []struct {
		name   string
		starts []int32
		want   [][]orb.Point
	}{
		{"valid", []int32{0, 2}, [][]orb.Point{{{0, 0}, {1, 1}}, {{2, 2}, {3, 3}}}},
		{"negative first", []int32{-1, 2}, [][]orb.Point{}},
		{"negative second", []int32{0, -3}, [][]orb.Point{}},
		{"past the end", []int32{0, 9}, [][]orb.Point{}},
		{"decreasing", []int32{3, 1}, [][]orb.Point{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got [][]orb.Point
			require.NotPanics(t, func() { got = parts(tt.starts, pts) })
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAttribute(t *testing.T) {
	tests := []struct {
		field shp.Field
		value string
		want  any
	}{
		{shp.StringField("S", 10), " text ", "text"},
		{shp.StringField("S", 10), "   ", nil},
		{shp.NumberField("N", 10), "42", int64(42)},
		{shp.NumberField("N", 10), "4.5", 4.5},
		{shp.FloatField("F", 10, 2), "1.25", 1.25},
		{shp.FloatField("F", 10, 2), "n/a", "n/a"},
		{shp.Field{Fieldtype: 'L', Size: 1}, "T", true},
		{shp.Field{Fieldtype: 'L', Size: 1}, "n", false},
		{shp.Field{Fieldtype: 'L', Size: 1}, "?", "?"},
		{shp.DateField("D"), "20240131", "20240131"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, attribute(tt.field, tt.value), "%c %q", tt.field.Fieldtype, tt.value)
	}
}
