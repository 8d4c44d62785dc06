package fgb

import (
	"github.com/flatgeobuf/flatgeobuf/src/go/flattypes"
	"github.com/flatgeobuf/flatgeobuf/src/go/writer"
	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/paulmach/orb"
)

func geometryType(g orb.Geometry) flattypes.GeometryType {
	switch g.(type) {
	case orb.Point:
		return flattypes.GeometryTypePoint
	case orb.MultiPoint:
		return flattypes.GeometryTypeMultiPoint
	case orb.LineString:
		return flattypes.GeometryTypeLineString
	case orb.MultiLineString:
		return flattypes.GeometryTypeMultiLineString
	case orb.Ring, orb.Polygon, orb.Bound:
		return flattypes.GeometryTypePolygon
	case orb.MultiPolygon:
		return flattypes.GeometryTypeMultiPolygon
	case orb.Collection:
		return flattypes.GeometryTypeGeometryCollection
	}
	return flattypes.GeometryTypeUnknown
}

// layerType is the shared type of geoms, or Unknown for a mixed layer.
func layerType(geoms []orb.Geometry) flattypes.GeometryType {
	t := flattypes.GeometryTypeUnknown
	for i, g := range geoms {
		gt := geometryType(g)
		if i == 0 {
			t = gt
		} else if gt != t {
			return flattypes.GeometryTypeUnknown
		}
	}
	return t
}

// encodeGeometry returns nil for geometries FlatGeobuf cannot hold.
func encodeGeometry(b *flatbuffers.Builder, g orb.Geometry) *writer.Geometry {
	switch v := g.(type) {
	case orb.Ring:
		return encodeGeometry(b, orb.Polygon{v})
	case orb.Bound:
		return encodeGeometry(b, v.ToPolygon())
	}

	out := writer.NewGeometry(b)
	out.SetType(geometryType(g))

	switch v := g.(type) {
	case orb.Point:
		out.SetXY([]float64{v[0], v[1]})
	case orb.MultiPoint:
		out.SetXY(flatten(v))
	case orb.LineString:
		out.SetXY(flatten(v))
	case orb.MultiLineString:
		parts := make([][]orb.Point, len(v))
		for i, ls := range v {
			parts[i] = ls
		}
		xy, ends := flattenParts(parts)
		out.SetXY(xy)
		out.SetEnds(ends)
	case orb.Polygon:
		parts := make([][]orb.Point, len(v))
		for i, r := range v {
			parts[i] = r
		}
		xy, ends := flattenParts(parts)
		out.SetXY(xy)
		out.SetEnds(ends)
	case orb.MultiPolygon:
		parts := make([]writer.Geometry, 0, len(v))
		for _, p := range v {
			parts = append(parts, *encodeGeometry(b, p))
		}
		out.SetParts(parts)
	case orb.Collection:
		parts := make([]writer.Geometry, 0, len(v))
		for _, child := range v {
			if enc := encodeGeometry(b, child); enc != nil {
				parts = append(parts, *enc)
			}
		}
		out.SetParts(parts)
	default:
		return nil
	}
	return out
}

func flatten(points []orb.Point) []float64 {
	xy := make([]float64, 0, 2*len(points))
	for _, p := range points {
		xy = append(xy, p[0], p[1])
	}
	return xy
}

// flattenParts concatenates parts and records the running end offset of each.
func flattenParts(parts [][]orb.Point) ([]float64, []uint32) {
	var xy []float64
	ends := make([]uint32, 0, len(parts))
	for _, part := range parts {
		xy = append(xy, flatten(part)...)
		ends = append(ends, uint32(len(xy)/2))
	}
	return xy, ends
}

func decodeGeometry(g *flattypes.Geometry) orb.Geometry {
	if g == nil {
		return nil
	}

	switch g.Type() {
	case flattypes.GeometryTypePoint:
		pts := points(g)
		if len(pts) == 0 {
			return orb.Point{}
		}
		return pts[0]
	case flattypes.GeometryTypeMultiPoint:
		return orb.MultiPoint(points(g))
	case flattypes.GeometryTypeLineString:
		return orb.LineString(points(g))
	case flattypes.GeometryTypeMultiLineString:
		var mls orb.MultiLineString
		for _, part := range split(g) {
			mls = append(mls, orb.LineString(part))
		}
		return mls
	case flattypes.GeometryTypePolygon:
		return decodePolygon(g)
	case flattypes.GeometryTypeMultiPolygon:
		if g.PartsLength() == 0 {
			return orb.MultiPolygon{decodePolygon(g)}
		}
		var mp orb.MultiPolygon
		eachPart(g, func(part *flattypes.Geometry) {
			if poly := decodePolygon(part); len(poly) > 0 {
				mp = append(mp, poly)
			}
		})
		return mp
	case flattypes.GeometryTypeGeometryCollection:
		coll := orb.Collection{}
		eachPart(g, func(part *flattypes.Geometry) {
			if child := decodeGeometry(part); child != nil {
				coll = append(coll, child)
			}
		})
		return coll
	}
	return nil
}

func decodePolygon(g *flattypes.Geometry) orb.Polygon {
	var poly orb.Polygon
	for _, part := range split(g) {
		poly = append(poly, orb.Ring(part))
	}
	return poly
}

func points(g *flattypes.Geometry) []orb.Point {
	n := g.XyLength() / 2
	pts := make([]orb.Point, n)
	for i := range pts {
		pts[i] = orb.Point{g.Xy(2 * i), g.Xy(2*i + 1)}
	}
	return pts
}

// split cuts the coordinates of g at its ends. A geometry without ends is a
// single part.
func split(g *flattypes.Geometry) [][]orb.Point {
	pts := points(g)
	if len(pts) == 0 {
		return nil
	}
	if g.EndsLength() == 0 {
		return [][]orb.Point{pts}
	}

	parts := make([][]orb.Point, 0, g.EndsLength())
	start := 0
	for i := 0; i < g.EndsLength(); i++ {
		end := min(int(g.Ends(i)), len(pts))
		if end < start {
			break
		}
		parts = append(parts, pts[start:end:end])
		start = end
	}
	return parts
}

func eachPart(g *flattypes.Geometry, fn func(*flattypes.Geometry)) {
	for i := 0; i < g.PartsLength(); i++ {
		var part flattypes.Geometry
		if g.Parts(&part, i) {
			fn(&part)
		}
	}
}
