package fgb

import (
	"fmt"
	"io"

	"github.com/flatgeobuf/flatgeobuf/src/go/flattypes"
	"github.com/flatgeobuf/flatgeobuf/src/go/writer"
	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// WriteGeometries writes geoms as features without properties.
func WriteGeometries(w io.Writer, geoms []orb.Geometry, opts ...Option) error {
	fc := geojson.NewFeatureCollection()
	for _, g := range geoms {
		if g != nil {
			fc.Append(geojson.NewFeature(g))
		}
	}
	return WriteFeatures(w, fc, opts...)
}

// WriteFeature writes a single feature layer.
func WriteFeature(w io.Writer, f *geojson.Feature, opts ...Option) error {
	if f == nil {
		return ErrEmpty
	}
	return WriteFeatures(w, &geojson.FeatureCollection{Features: []*geojson.Feature{f}}, opts...)
}

// WriteFeatures writes fc as one indexed layer. Features without a geometry
// are skipped; a geometry FlatGeobuf cannot hold fails the write.
func WriteFeatures(w io.Writer, fc *geojson.FeatureCollection, opts ...Option) error {
	if fc == nil {
		return ErrEmpty
	}

	features := make([]*geojson.Feature, 0, len(fc.Features))
	geoms := make([]orb.Geometry, 0, len(fc.Features))
	for _, f := range fc.Features {
		if f == nil || f.Geometry == nil {
			continue
		}
		if geometryType(f.Geometry) == flattypes.GeometryTypeUnknown {
			return fmt.Errorf("%w: %T", ErrUnsupportedType, f.Geometry)
		}
		features = append(features, f)
		geoms = append(geoms, f.Geometry)
	}
	if len(features) == 0 {
		return ErrEmpty
	}

	o := newOptions(opts)
	s := inferSchema(features)
	b := flatbuffers.NewBuilder(4096)

	header := writer.NewHeader(b)
	header.SetGeometryType(layerType(geoms))
	if o.name != "" {
		header.SetName(o.name)
	}
	if o.description != "" {
		header.SetDescription(o.description)
	}
	if cols := s.columns(b); cols != nil {
		header.SetColumns(cols)
	}
	if o.crs != nil {
		header.SetCrs(newCrs(b, o.crs))
	}

	gen := &featureGenerator{features: features, schema: s}
	if _, err := writer.NewWriter(header, true, gen, nil).Write(w); err != nil {
		return fmt.Errorf("fgb: write: %w", err)
	}
	return nil
}

func newCrs(b *flatbuffers.Builder, c *CRS) *writer.Crs {
	crs := writer.NewCrs(b)
	crs.SetOrg("EPSG")
	if c.Code > 0 {
		crs.SetCode(int32(c.Code))
	}
	if c.Name != "" {
		crs.SetName(c.Name)
	}
	switch {
	case c.Description != "":
		crs.SetDescription(c.Description)
	case c.WKT != "":
		crs.SetDescription(c.WKT)
	}
	return crs
}

// featureGenerator feeds the flatgeobuf writer one feature at a time.
type featureGenerator struct {
	features []*geojson.Feature
	schema   schema
	next     int
}

func (g *featureGenerator) Generate() *writer.Feature {
	if g.next >= len(g.features) {
		return nil
	}
	f := g.features[g.next]
	g.next++

	b := flatbuffers.NewBuilder(1024)
	feature := writer.NewFeature(b)
	feature.SetGeometry(encodeGeometry(b, f.Geometry))
	if props := g.schema.encode(f.Properties); len(props) > 0 {
		feature.SetProperties(props)
	}
	return feature
}
