package main

import (
	"math/rand/v2"

	"github.com/rs/zerolog/log"

	"github.com/tingold/orb-geotools/config"
	"github.com/tingold/orb-geotools/random"
)

// RandomCommand generates a collection of random features.
type RandomCommand struct {
	Kind     string `short:"k" long:"kind" description:"Geometry kind, one of the six at random when empty" choice:"Point" choice:"LineString" choice:"Polygon" choice:"MultiPoint" choice:"MultiLineString" choice:"MultiPolygon" choice:"GeometryCollection"`
	Count    int    `short:"n" long:"count" description:"Number of features" default:"1"`
	Vertices int    `short:"v" long:"vertices" description:"Positions per line or ring, kind default when 0"`
	Lines    int    `long:"lines" description:"Line strings per MultiLineString, default when 0"`
	Polygons int    `long:"polygons" description:"Polygons per MultiPolygon, default when 0"`
	Kinds    int    `long:"kinds" description:"Distinct kinds per GeometryCollection, default when 0"`
	Seed     uint64 `short:"s" long:"seed" description:"Seed for reproducible output, random when 0"`
	BBox     string `short:"b" long:"bbox" description:"Bounding box west,south,east,north, configured bbox when empty"`

	OutputOptions `group:"Output options"`
}

func (c *RandomCommand) Execute([]string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	gen, err := random.New(cfg, c.source())
	if err != nil {
		return err
	}

	genOpts, err := c.options()
	if err != nil {
		return err
	}

	fc, err := gen.FeatureCollection(c.Kind, c.Count, genOpts...)
	if err != nil {
		return err
	}

	log.Info().
		Str("kind", c.Kind).
		Int("count", c.Count).
		Uint64("seed", c.Seed).
		Msg("Random features generated")

	return c.write(fc)
}

func (c *RandomCommand) source() rand.Source {
	if c.Seed == 0 {
		return nil
	}
	return random.NewSource(c.Seed)
}

func (c *RandomCommand) options() ([]random.Option, error) {
	var out []random.Option
	if c.Vertices != 0 {
		out = append(out, random.WithVertices(c.Vertices))
	}
	if c.Lines != 0 {
		out = append(out, random.WithLines(c.Lines))
	}
	if c.Polygons != 0 {
		out = append(out, random.WithPolygons(c.Polygons))
	}
	if c.Kinds != 0 {
		out = append(out, random.WithKinds(c.Kinds))
	}
	if c.BBox != "" {
		b, err := config.ParseBBox([]string{c.BBox})
		if err != nil {
			return nil, err
		}
		out = append(out, random.WithBBox(b))
	}
	return out, nil
}
