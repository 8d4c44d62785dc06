package read

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/paulmach/orb/geojson"
	"github.com/rs/zerolog"

	geotools "github.com/tingold/orb-geotools"
)

const bom = "\ufeff"

type csvReader struct {
	path    string
	file    *os.File
	csv     *csv.Reader
	header  []string
	columns columns
	log     zerolog.Logger

	feature *geojson.Feature
	err     error
	closed  bool
}

// OpenCSV reads a delimited text file whose first row names the columns.
// Every other row becomes a feature with the row's values as string
// properties. A geometry column holding WKT, or a longitude and latitude
// column pair, gives the feature its geometry; rows without one have a nil
// geometry. Blank rows are skipped.
func OpenCSV(path string, opts ...Option) (FeatureReader, error) {
	o := newOptions(opts)
	if o.delimiter == 0 {
		o.delimiter = ','
		if strings.EqualFold(filepath.Ext(path), ".tsv") {
			o.delimiter = '\t'
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, geotools.NewIOError(path, err)
	}

	cr := csv.NewReader(bufio.NewReader(f))
	cr.Comma = o.delimiter
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		f.Close()
		if errors.Is(err, io.EOF) {
			return nil, geotools.NewIOError(path, err, "missing header row")
		}
		return nil, geotools.NewIOError(path, err)
	}

	names := make([]string, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, bom)
		}
		names[i] = strings.TrimSpace(h)
	}

	r := &csvReader{
		path:    path,
		file:    f,
		csv:     cr,
		header:  names,
		columns: o.columns(names),
		log:     o.readerLogger(path, "csv"),
	}
	r.log.Debug().Strs("columns", names).
		Str("lon", r.columns.lon).Str("lat", r.columns.lat).Str("wkt", r.columns.wkt).
		Msg("opened csv")
	return r, nil
}

func (r *csvReader) Next() bool {
	if r.err != nil || r.closed {
		return false
	}

	for {
		record, err := r.csv.Read()
		if errors.Is(err, io.EOF) {
			return false
		}
		if err != nil {
			r.err = geotools.NewIOError(r.path, err)
			return false
		}
		line, _ := r.csv.FieldPos(0)

		if blank(record) {
			r.log.Debug().Int("line", line).Msg("skipping blank row")
			continue
		}
		if len(record) > len(r.header) {
			r.log.Debug().Int("line", line).Int("fields", len(record)).
				Msg("ignoring fields beyond the header")
		}

		props := make(geojson.Properties, len(r.header))
		for i, name := range r.header {
			if i < len(record) {
				props[name] = strings.TrimSpace(record[i])
			}
		}

		geom, used, err := r.columns.geometry(props)
		if err != nil {
			r.err = geotools.NewIOError(r.path, err, fmt.Sprintf("line %d", line))
			return false
		}
		if used != "" {
			delete(props, used)
		}

		r.feature = geojson.NewFeature(geom)
		r.feature.Properties = props
		return true
	}
}

func (r *csvReader) Feature() *geojson.Feature {
	return r.feature
}

func (r *csvReader) Err() error {
	return r.err
}

func (r *csvReader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	return r.file.Close()
}

func blank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
