package main

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/paulmach/orb/geojson"
	"github.com/rs/zerolog/log"

	"github.com/tingold/orb-geotools/read"
)

// ReadCommand converts a supported data file to GeoJSON, YAML or
// FlatGeobuf.
type ReadCommand struct {
	Delimiter string `short:"d" long:"delimiter" description:"CSV field delimiter, comma or tab by extension when empty"`
	Lon       string `long:"lon" description:"Longitude column name"`
	Lat       string `long:"lat" description:"Latitude column name"`
	WKT       string `long:"wkt" description:"WKT or GeoJSON geometry column name"`
	Limit     int    `long:"limit" description:"Stop after this many features, all when 0"`

	OutputOptions `group:"Output options"`

	Args struct {
		File string `positional-arg-name:"FILE" description:"Input file (.geojson, .json, .csv, .tsv, .shp, .fgb)"`
	} `positional-args:"yes" required:"yes"`
}

func (c *ReadCommand) Execute([]string) error {
	readOpts, err := c.options()
	if err != nil {
		return err
	}

	r, err := read.Open(c.Args.File, readOpts...)
	if err != nil {
		return err
	}

	fc := geojson.NewFeatureCollection()
	err = read.Each(r, func(f *geojson.Feature) error {
		if c.Limit > 0 && len(fc.Features) >= c.Limit {
			return errLimit
		}
		fc.Append(f)
		return nil
	})
	if err != nil && !errors.Is(err, errLimit) {
		return err
	}

	log.Info().Str("file", c.Args.File).Int("features", len(fc.Features)).Msg("Features read")
	return c.write(fc)
}

var errLimit = errors.New("feature limit reached")

func (c *ReadCommand) options() ([]read.Option, error) {
	out := []read.Option{read.WithLogger(log.Logger)}

	if c.Delimiter != "" {
		d := c.Delimiter
		if d == `\t` {
			d = "\t"
		}
		r, size := utf8.DecodeRuneInString(d)
		if size != len(d) {
			return nil, fmt.Errorf("delimiter must be a single character, got %q", c.Delimiter)
		}
		out = append(out, read.WithDelimiter(r))
	}
	if c.Lon != "" || c.Lat != "" {
		out = append(out, read.WithCoordinateColumns(c.Lon, c.Lat))
	}
	if c.WKT != "" {
		out = append(out, read.WithWKTColumn(c.WKT))
	}
	return out, nil
}
