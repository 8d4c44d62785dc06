package fgb

import (
	"fmt"

	flatgeobuf "github.com/flatgeobuf/flatgeobuf/src/go"
	"github.com/flatgeobuf/flatgeobuf/src/go/flattypes"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Reader reads an indexed FlatGeobuf layer.
type Reader struct {
	fgb    *flatgeobuf.FlatGeoBuf
	schema schema
}

// NewReader memory maps the file at path.
func NewReader(path string) (*Reader, error) {
	f, err := flatgeobuf.New(path)
	if err != nil {
		return nil, fmt.Errorf("fgb: open %s: %w", path, err)
	}
	return newReader(f)
}

// NewReaderFromData reads a layer held in memory.
func NewReaderFromData(data []byte) (*Reader, error) {
	f, err := flatgeobuf.NewWithData(data)
	if err != nil {
		return nil, fmt.Errorf("fgb: parse: %w", err)
	}
	return newReader(f)
}

func newReader(f *flatgeobuf.FlatGeoBuf) (*Reader, error) {
	h := f.Header()
	if h == nil {
		return nil, ErrInvalidData
	}
	return &Reader{fgb: f, schema: headerSchema(h)}, nil
}

// Header returns the layer metadata.
func (r *Reader) Header() *Header {
	if r.fgb == nil {
		return nil
	}
	h := r.fgb.Header()

	header := &Header{
		Name:          string(h.Name()),
		Description:   string(h.Description()),
		GeometryType:  flattypes.EnumNamesGeometryType[h.GeometryType()],
		FeaturesCount: h.FeaturesCount(),
		HasIndex:      h.IndexNodeSize() > 0,
	}
	if bound, ok := envelope(h); ok {
		header.Envelope = bound
	}

	var crs flattypes.Crs
	if h.Crs(&crs) != nil {
		header.CRS = &CRS{
			Code:        int(crs.Code()),
			Name:        string(crs.Name()),
			Description: string(crs.Description()),
		}
	}

	for i := 0; i < h.ColumnsLength(); i++ {
		var col flattypes.Column
		if !h.Columns(&col, i) {
			continue
		}
		header.Columns = append(header.Columns, Column{
			Name:        string(col.Name()),
			Type:        flattypes.EnumNamesColumnType[col.Type()],
			Title:       string(col.Title()),
			Description: string(col.Description()),
			Nullable:    col.Nullable(),
		})
	}
	return header
}

// Features returns every feature of the layer by searching the index over
// the header envelope.
func (r *Reader) Features() ([]*geojson.Feature, error) {
	c, err := r.Cursor()
	if err != nil {
		return nil, err
	}
	return c.all(), nil
}

// Geometries returns the geometry of every feature.
func (r *Reader) Geometries() ([]orb.Geometry, error) {
	features, err := r.Features()
	if err != nil {
		return nil, err
	}
	geoms := make([]orb.Geometry, len(features))
	for i, f := range features {
		geoms[i] = f.Geometry
	}
	return geoms, nil
}

// Search returns the features whose bounding boxes intersect bound.
func (r *Reader) Search(bound orb.Bound) ([]*geojson.Feature, error) {
	c, err := r.SearchCursor(bound)
	if err != nil {
		return nil, err
	}
	return c.all(), nil
}

// Cursor walks every feature of the layer like Features, decoding one
// feature per call to Next.
func (r *Reader) Cursor() (*Cursor, error) {
	if r.fgb == nil {
		return nil, ErrClosed
	}
	h := r.fgb.Header()
	if h.FeaturesCount() == 0 {
		return &Cursor{r: r}, nil
	}
	bound, ok := envelope(h)
	if !ok {
		return nil, ErrNoIndex
	}
	return r.SearchCursor(bound)
}

// SearchCursor walks the features whose bounding boxes intersect bound.
func (r *Reader) SearchCursor(bound orb.Bound) (*Cursor, error) {
	if r.fgb == nil {
		return nil, ErrClosed
	}
	if r.fgb.Header().IndexNodeSize() == 0 {
		return nil, ErrNoIndex
	}

	found, err := r.fgb.Search(bound.Min[0], bound.Min[1], bound.Max[0], bound.Max[1])
	if err != nil {
		return nil, fmt.Errorf("fgb: search: %w", err)
	}
	return &Cursor{r: r, found: found}, nil
}

// Cursor iterates over index search results. Features without a readable
// geometry are skipped. A cursor stops once its reader is closed.
type Cursor struct {
	r       *Reader
	found   []*flattypes.Feature
	next    int
	feature *geojson.Feature
}

// Next decodes the next feature and reports whether there was one.
func (c *Cursor) Next() bool {
	c.feature = nil
	for c.r.fgb != nil && c.next < len(c.found) {
		f := c.r.feature(c.found[c.next])
		c.found[c.next] = nil
		c.next++
		if f != nil {
			c.feature = f
			return true
		}
	}
	return false
}

// Feature returns the feature decoded by the last call to Next.
func (c *Cursor) Feature() *geojson.Feature {
	return c.feature
}

// Len returns how many search results are left to decode.
func (c *Cursor) Len() int {
	return len(c.found) - c.next
}

func (c *Cursor) all() []*geojson.Feature {
	features := make([]*geojson.Feature, 0, c.Len())
	for c.Next() {
		features = append(features, c.feature)
	}
	return features
}

// Close drops the mapping; the reader must not be used afterwards.
func (r *Reader) Close() error {
	r.fgb = nil
	return nil
}

func (r *Reader) feature(f *flattypes.Feature) *geojson.Feature {
	if f == nil {
		return nil
	}
	var g flattypes.Geometry
	geom := decodeGeometry(f.Geometry(&g))
	if geom == nil {
		return nil
	}

	feature := geojson.NewFeature(geom)
	if props := r.schema.decode(f.PropertiesBytes()); props != nil {
		feature.Properties = props
	}
	return feature
}

func envelope(h *flattypes.Header) (orb.Bound, bool) {
	if h.EnvelopeLength() < 4 {
		return orb.Bound{}, false
	}
	return orb.Bound{
		Min: orb.Point{h.Envelope(0), h.Envelope(1)},
		Max: orb.Point{h.Envelope(2), h.Envelope(3)},
	}, true
}
