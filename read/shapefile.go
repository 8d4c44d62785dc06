package read

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/rs/zerolog"

	geotools "github.com/tingold/orb-geotools"
)

type shapefileReader struct {
	path   string
	shp    *shp.Reader
	fields []shp.Field
	log    zerolog.Logger

	feature *geojson.Feature
	err     error
	closed  bool
}

// OpenShapefile reads the shapes of a .shp file. Attributes come from the
// .dbf file next to it when there is one: numeric fields are decoded as
// numbers, logical fields as booleans and everything else as strings.
func OpenShapefile(path string, opts ...Option) (FeatureReader, error) {
	if !strings.EqualFold(filepath.Ext(path), ".shp") {
		return nil, geotools.NewIOError(path, geotools.ErrUnsupportedFormat, "expected a .shp file")
	}

	r, err := shp.Open(path)
	if err != nil {
		return nil, geotools.NewIOError(path, err)
	}

	o := newOptions(opts)
	sr := &shapefileReader{
		path:   path,
		shp:    r,
		fields: r.Fields(),
		log:    o.readerLogger(path, "shapefile"),
	}
	sr.log.Debug().Int("fields", len(sr.fields)).Int32("type", int32(r.GeometryType)).Msg("opened shapefile")
	return sr, nil
}

func (r *shapefileReader) Next() bool {
	if r.err != nil || r.closed {
		return false
	}

	for r.shp.Next() {
		row, shape := r.shp.Shape()

		geom, ok := shapeGeometry(shape)
		if !ok {
			r.log.Debug().Int("row", row).Str("shape", fmt.Sprintf("%T", shape)).Msg("skipping unsupported shape")
			continue
		}

		r.feature = geojson.NewFeature(geom)
		for i, field := range r.fields {
			r.feature.Properties[field.String()] = attribute(field, r.shp.ReadAttribute(row, i))
		}
		return true
	}

	if err := r.shp.Err(); err != nil {
		r.err = geotools.NewIOError(r.path, err)
	}
	return false
}

func (r *shapefileReader) Feature() *geojson.Feature {
	return r.feature
}

func (r *shapefileReader) Err() error {
	return r.err
}

func (r *shapefileReader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	return r.shp.Close()
}

// attribute decodes a DBF value by field type. Values that fail to parse
// are kept as strings; blank values are nil. Unused field bytes may be NUL
// padded rather than space padded.
func attribute(field shp.Field, v string) any {
	v = strings.TrimSpace(strings.Trim(v, "\x00"))
	if v == "" {
		return nil
	}

	switch field.Fieldtype {
	case 'N', 'F':
		if field.Fieldtype == 'N' && field.Precision == 0 {
			if n, err := strconv.ParseInt(v, 10, 64); err == nil {
				return n
			}
		}
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	case 'L':
		switch strings.ToUpper(v) {
		case "T", "Y":
			return true
		case "F", "N":
			return false
		}
	}
	return v
}

// shapeGeometry converts a shape to an orb geometry. Null shapes yield a nil
// geometry; ok is false for shapes with no orb equivalent.
func shapeGeometry(s shp.Shape) (orb.Geometry, bool) {
	switch v := s.(type) {
	case *shp.Null:
		return nil, true
	case *shp.Point:
		return orb.Point{v.X, v.Y}, true
	case *shp.PointZ:
		return orb.Point{v.X, v.Y}, true
	case *shp.PointM:
		return orb.Point{v.X, v.Y}, true
	case *shp.MultiPoint:
		return orb.MultiPoint(points(v.Points)), true
	case *shp.MultiPointZ:
		return orb.MultiPoint(points(v.Points)), true
	case *shp.MultiPointM:
		return orb.MultiPoint(points(v.Points)), true
	case *shp.PolyLine:
		return lines(parts(v.Parts, v.Points)), true
	case *shp.PolyLineZ:
		return lines(parts(v.Parts, v.Points)), true
	case *shp.PolyLineM:
		return lines(parts(v.Parts, v.Points)), true
	case *shp.Polygon:
		return polygons(parts(v.Parts, v.Points)), true
	case *shp.PolygonZ:
		return polygons(parts(v.Parts, v.Points)), true
	case *shp.PolygonM:
		return polygons(parts(v.Parts, v.Points)), true
	}
	return nil, false
}

func points(pts []shp.Point) []orb.Point {
	out := make([]orb.Point, len(pts))
	for i, p := range pts {
		out[i] = orb.Point{p.X, p.Y}
	}
	return out
}

// parts splits pts at the part start offsets. Splitting stops at the first
// offset outside pts.
func parts(starts []int32, pts []shp.Point) [][]orb.Point {
	all := points(pts)
	out := make([][]orb.Point, 0, len(starts))
	for i, start := range starts {
		end := len(all)
		if i+1 < len(starts) {
			end = int(starts[i+1])
		}
		if start < 0 || int(start) > end || end > len(all) {
			break
		}
		out = append(out, all[start:end])
	}
	return out
}

func lines(parts [][]orb.Point) orb.Geometry {
	if len(parts) == 1 {
		return orb.LineString(parts[0])
	}
	mls := make(orb.MultiLineString, len(parts))
	for i, p := range parts {
		mls[i] = p
	}
	return mls
}

// polygons groups rings into polygons. Shapefile outer rings wind
// clockwise and each is followed by its counter clockwise holes.
func polygons(parts [][]orb.Point) orb.Geometry {
	var mp orb.MultiPolygon
	for _, p := range parts {
		ring := orb.Ring(p)
		if ring.Orientation() == orb.CCW && len(mp) > 0 {
			mp[len(mp)-1] = append(mp[len(mp)-1], ring)
			continue
		}
		mp = append(mp, orb.Polygon{ring})
	}

	if len(mp) == 1 {
		return mp[0]
	}
	return mp
}
