package read

import (
	"github.com/paulmach/orb/geojson"

	geotools "github.com/tingold/orb-geotools"
	"github.com/tingold/orb-geotools/fgb"
)

type flatGeobufReader struct {
	r      *fgb.Reader
	cursor *fgb.Cursor
	closed bool
}

// OpenFlatGeobuf reads an indexed FlatGeobuf file. The file is memory
// mapped and searched through its spatial index when the reader is opened;
// each feature is decoded on the call to Next that reaches it.
func OpenFlatGeobuf(path string, opts ...Option) (FeatureReader, error) {
	r, err := fgb.NewReader(path)
	if err != nil {
		return nil, geotools.NewIOError(path, err)
	}

	cursor, err := r.Cursor()
	if err != nil {
		r.Close()
		return nil, geotools.NewIOError(path, err)
	}

	o := newOptions(opts)
	h := r.Header()
	o.readerLogger(path, "flatgeobuf").Debug().
		Str("name", h.Name).Str("geometry", h.GeometryType).Uint64("features", h.FeaturesCount).
		Msg("opened flatgeobuf")

	return &flatGeobufReader{r: r, cursor: cursor}, nil
}

func (r *flatGeobufReader) Next() bool {
	if r.closed {
		return false
	}
	return r.cursor.Next()
}

func (r *flatGeobufReader) Feature() *geojson.Feature {
	if r.closed {
		return nil
	}
	return r.cursor.Feature()
}

func (r *flatGeobufReader) Err() error {
	return nil
}

func (r *flatGeobufReader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	return r.r.Close()
}
