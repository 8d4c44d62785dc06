package read

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/paulmach/orb/geojson"
	"github.com/rs/zerolog"

	geotools "github.com/tingold/orb-geotools"
)

// jsonReader streams the elements of a JSON array one at a time. For a
// GeoJSON FeatureCollection the array is the "features" member; a lone
// Feature or geometry is read whole and yields a single feature.
type jsonReader struct {
	path   string
	file   *os.File
	dec    *json.Decoder
	decode func(json.RawMessage) (*geojson.Feature, error)
	log    zerolog.Logger

	pending *geojson.Feature
	feature *geojson.Feature
	index   int
	err     error
	closed  bool
}

// OpenGeoJSON reads a FeatureCollection, a Feature or a bare geometry.
// Features of a collection are decoded one at a time, so the whole file is
// never held in memory.
func OpenGeoJSON(path string, opts ...Option) (FeatureReader, error) {
	o := newOptions(opts)
	return openJSON(path, o.readerLogger(path, "geojson"), decodeFeature)
}

// OpenJSON reads a JSON array of objects. Objects that are GeoJSON Features
// are taken as is; any other object becomes a feature whose properties are
// its members, with the geometry taken from a "geometry" member (GeoJSON
// object or WKT string) or from longitude and latitude members. A file
// holding a JSON object is read as GeoJSON.
func OpenJSON(path string, opts ...Option) (FeatureReader, error) {
	o := newOptions(opts)
	return openJSON(path, o.readerLogger(path, "json"), o.decodeRecord)
}

func openJSON(path string, log zerolog.Logger, decode func(json.RawMessage) (*geojson.Feature, error)) (FeatureReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, geotools.NewIOError(path, err)
	}

	r := &jsonReader{
		path:   path,
		file:   f,
		dec:    json.NewDecoder(bufio.NewReader(f)),
		decode: decode,
		log:    log,
	}
	if err := r.start(); err != nil {
		f.Close()
		return nil, err
	}
	return r, nil
}

// start positions the decoder at the first array element, or decodes a
// single object into pending.
func (r *jsonReader) start() error {
	tok, err := r.dec.Token()
	if err != nil {
		return geotools.NewIOError(r.path, err, "not a JSON document")
	}

	switch tok {
	case json.Delim('['):
		r.log.Debug().Msg("reading json array")
		return nil
	case json.Delim('{'):
	default:
		return geotools.NewIOError(r.path, nil, fmt.Sprintf("expected an object or array, got %v", tok))
	}

	members := make(map[string]json.RawMessage)
	for r.dec.More() {
		tok, err := r.dec.Token()
		if err != nil {
			return geotools.NewIOError(r.path, err)
		}
		key, _ := tok.(string)

		if key == "features" {
			tok, err := r.dec.Token()
			if err != nil {
				return geotools.NewIOError(r.path, err)
			}
			if tok != json.Delim('[') {
				return geotools.NewIOError(r.path, nil, "features must be an array")
			}
			r.decode = decodeFeature
			r.log.Debug().Msg("streaming feature collection")
			return nil
		}

		var raw json.RawMessage
		if err := r.dec.Decode(&raw); err != nil {
			return geotools.NewIOError(r.path, err)
		}
		members[key] = raw
	}
	r.dec = nil

	var kind string
	if err := json.Unmarshal(members["type"], &kind); err != nil {
		return geotools.NewIOError(r.path, nil, "missing GeoJSON type")
	}
	data, err := json.Marshal(members)
	if err != nil {
		return geotools.NewIOError(r.path, err)
	}

	switch {
	case kind == geotools.KindFeatureCollection:
	case kind == geotools.KindFeature:
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return geotools.NewIOError(r.path, err)
		}
		r.pending = f
	case geotools.IsGeometryKind(kind):
		g, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return geotools.NewIOError(r.path, err)
		}
		r.pending = geojson.NewFeature(g.Geometry())
	default:
		return geotools.NewIOError(r.path, nil, fmt.Sprintf("unsupported GeoJSON type %q", kind))
	}
	return nil
}

func (r *jsonReader) Next() bool {
	if r.err != nil || r.closed {
		return false
	}
	if r.pending != nil {
		r.feature, r.pending = r.pending, nil
		return true
	}
	if r.dec == nil {
		return false
	}

	for r.dec.More() {
		var raw json.RawMessage
		if err := r.dec.Decode(&raw); err != nil {
			r.err = geotools.NewIOError(r.path, err, fmt.Sprintf("element %d", r.index))
			return false
		}
		r.index++

		f, err := r.decode(raw)
		if err != nil {
			r.err = geotools.NewIOError(r.path, err, fmt.Sprintf("element %d", r.index-1))
			return false
		}
		if f == nil {
			r.log.Debug().Int("element", r.index-1).Msg("skipping null element")
			continue
		}
		r.feature = f
		return true
	}

	r.dec = nil
	return false
}

func (r *jsonReader) Feature() *geojson.Feature {
	return r.feature
}

func (r *jsonReader) Err() error {
	return r.err
}

func (r *jsonReader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	return r.file.Close()
}

var null = []byte("null")

func decodeFeature(raw json.RawMessage) (*geojson.Feature, error) {
	if bytes.Equal(bytes.TrimSpace(raw), null) {
		return nil, nil
	}
	return geojson.UnmarshalFeature(raw)
}

func (o options) decodeRecord(raw json.RawMessage) (*geojson.Feature, error) {
	var record map[string]any
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, fmt.Errorf("not an object: %w", err)
	}
	if record == nil {
		return nil, nil
	}
	if record["type"] == geotools.KindFeature {
		return geojson.UnmarshalFeature(raw)
	}

	keys := make([]string, 0, len(record))
	for k := range record {
		keys = append(keys, k)
	}

	props := geojson.Properties(record)
	geom, used, err := o.columns(keys).geometry(props)
	if err != nil {
		return nil, err
	}
	if used != "" {
		delete(props, used)
	}

	f := geojson.NewFeature(geom)
	f.Properties = props
	return f, nil
}
