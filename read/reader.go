// Package read streams features out of GeoJSON, CSV, JSON, Shapefile and
// FlatGeobuf files.
//
// Every Open function returns a FeatureReader, a lazy pull iterator:
//
//	r, err := read.Open("points.csv")
//	if err != nil {
//		return err
//	}
//	defer r.Close()
//	for r.Next() {
//		f := r.Feature()
//		...
//	}
//	return r.Err()
//
// A reader is finite and cannot be restarted. Each wraps the loop for
// callers that prefer a callback and want to abort by returning an error.
package read

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/paulmach/orb/geojson"
	"github.com/rs/zerolog"

	geotools "github.com/tingold/orb-geotools"
)

// FeatureReader iterates over the features of a file.
type FeatureReader interface {
	// Next advances to the next feature. It returns false at the end of the
	// file or on the first error.
	Next() bool

	// Feature returns the feature Next advanced to.
	Feature() *geojson.Feature

	// Err returns the error that stopped iteration, if any.
	Err() error

	// Close releases the file. It is safe to call more than once.
	Close() error
}

// Each calls fn for every feature of r and closes r. Iteration stops at the
// first error returned by fn, which is returned as is.
func Each(r FeatureReader, fn func(*geojson.Feature) error) (err error) {
	defer func() {
		if cerr := r.Close(); err == nil {
			err = cerr
		}
	}()

	for r.Next() {
		if err := fn(r.Feature()); err != nil {
			return err
		}
	}
	return r.Err()
}

// All drains r into a feature collection and closes it.
func All(r FeatureReader) (*geojson.FeatureCollection, error) {
	fc := geojson.NewFeatureCollection()
	err := Each(r, func(f *geojson.Feature) error {
		fc.Append(f)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return fc, nil
}

// Open picks a reader from the file extension: .geojson, .json, .csv, .shp
// or .fgb.
func Open(path string, opts ...Option) (FeatureReader, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".geojson":
		return OpenGeoJSON(path, opts...)
	case ".json":
		return OpenJSON(path, opts...)
	case ".csv", ".tsv":
		return OpenCSV(path, opts...)
	case ".shp":
		return OpenShapefile(path, opts...)
	case ".fgb":
		return OpenFlatGeobuf(path, opts...)
	}
	return nil, geotools.NewIOError(path, geotools.ErrUnsupportedFormat,
		fmt.Sprintf("unknown extension %q", filepath.Ext(path)))
}

// Default column names probed, case insensitively, when no column is set.
var (
	LongitudeColumns = []string{"longitude", "lon", "lng", "long", "x"}
	LatitudeColumns  = []string{"latitude", "lat", "y"}
	WKTColumns       = []string{"wkt", "geometry", "geom", "the_geom"}
)

// Option configures a reader.
type Option func(*options)

type options struct {
	logger    zerolog.Logger
	delimiter rune
	lon, lat  string
	wkt       string
}

func newOptions(opts []Option) options {
	o := options{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger sets the logger used to report skipped rows. The default
// discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithDelimiter sets the CSV field delimiter. Default ','; files with a .tsv
// extension default to a tab.
func WithDelimiter(r rune) Option {
	return func(o *options) {
		o.delimiter = r
	}
}

// WithCoordinateColumns names the columns holding longitude and latitude
// in CSV and JSON records.
func WithCoordinateColumns(lon, lat string) Option {
	return func(o *options) {
		o.lon = lon
		o.lat = lat
	}
}

// WithWKTColumn names the column holding a WKT geometry in CSV and JSON
// records.
func WithWKTColumn(name string) Option {
	return func(o *options) {
		o.wkt = name
	}
}

func (o options) readerLogger(path, format string) zerolog.Logger {
	return o.logger.With().Str("path", path).Str("format", format).Logger()
}
