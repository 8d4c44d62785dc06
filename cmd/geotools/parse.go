package main

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/paulmach/orb/geojson"
	"github.com/rs/zerolog/log"

	"github.com/tingold/orb-geotools/calculation"
)

// ParseCommand turns a coordinate string into a GeoJSON geometry.
type ParseCommand struct {
	Delimiter string `short:"d" long:"delimiter" description:"Separator between longitude and latitude" default:","`
	Separator string `short:"s" long:"separator" description:"Separator between pairs" default:" "`
	Steps     int    `long:"steps" description:"Segments approximating a circle" default:"64"`

	Args struct {
		Coordinates []string `positional-arg-name:"COORDINATES" description:"lon,lat pairs; a single pair followed by a number is a circle radius in km"`
	} `positional-args:"yes" required:"yes"`
}

func (c *ParseCommand) Execute([]string) error {
	s := strings.Join(c.Args.Coordinates, c.Separator)
	parsed, err := calculation.ParseCoordinateString(s,
		calculation.WithDelimiter(c.Delimiter),
		calculation.WithSeparator(c.Separator),
		calculation.WithCircleSteps(c.Steps),
	)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	if parsed.Geometry == nil {
		log.Warn().Int("pairs", len(parsed.Coordinates)).Msg("Coordinates do not describe a point, circle or polygon")
		return enc.Encode(parsed.Coordinates)
	}
	return enc.Encode(geojson.NewGeometry(parsed.Geometry))
}
