package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/rs/zerolog/log"

	geotools "github.com/tingold/orb-geotools"
	"github.com/tingold/orb-geotools/calculation"
	"github.com/tingold/orb-geotools/read"
)

// CentroidCommand prints the centroid of a file as a GeoJSON Point.
type CentroidCommand struct {
	Mass bool `short:"m" long:"mass" description:"Area weighted center of mass instead of the vertex mean"`

	Args struct {
		File string `positional-arg-name:"FILE" description:"GeoJSON file, - reads stdin; other formats are read by extension"`
	} `positional-args:"yes" required:"yes"`
}

func (c *CentroidCommand) Execute([]string) error {
	p, err := c.centroid()
	if err != nil {
		return err
	}

	log.Debug().Str("file", c.Args.File).Bool("mass", c.Mass).Floats64("centroid", p[:]).Msg("Centroid computed")
	return json.NewEncoder(os.Stdout).Encode(geojson.NewGeometry(p))
}

func (c *CentroidCommand) centroid() (orb.Point, error) {
	path := c.Args.File

	// stdin and .geojson files may hold a bare geometry or a single feature
	if path == "-" || strings.EqualFold(filepath.Ext(path), ".geojson") {
		data, err := readInput(path)
		if err != nil {
			return orb.Point{}, geotools.NewIOError(path, err)
		}
		if c.Mass {
			g, err := geometryOf(data)
			if err != nil {
				return orb.Point{}, err
			}
			return calculation.CenterOfMass(g)
		}
		return calculation.CentroidOfGeoJSON(data)
	}

	r, err := read.Open(path, read.WithLogger(log.Logger))
	if err != nil {
		return orb.Point{}, err
	}
	fc, err := read.All(r)
	if err != nil {
		return orb.Point{}, err
	}

	if c.Mass {
		return calculation.CenterOfMass(collect(fc))
	}
	return calculation.CentroidOfFeatures(fc)
}

// geometryOf decodes a GeoJSON geometry, Feature or FeatureCollection into
// a single geometry.
func geometryOf(data []byte) (orb.Geometry, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, err
	}

	switch probe.Type {
	case geotools.KindFeatureCollection:
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, err
		}
		return collect(fc), nil
	case geotools.KindFeature:
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, err
		}
		return f.Geometry, nil
	default:
		g, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return nil, err
		}
		return g.Geometry(), nil
	}
}

func collect(fc *geojson.FeatureCollection) orb.Collection {
	coll := make(orb.Collection, 0, len(fc.Features))
	for _, f := range fc.Features {
		if f != nil && f.Geometry != nil {
			coll = append(coll, f.Geometry)
		}
	}
	return coll
}
