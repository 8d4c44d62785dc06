package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"

	geotools "github.com/tingold/orb-geotools"
	"github.com/tingold/orb-geotools/validation"
)

// ValidateCommand checks GeoJSON files.
type ValidateCommand struct {
	Kind string `short:"k" long:"kind" description:"Required object type, any GeoJSON object when empty" choice:"Geometry" choice:"Point" choice:"LineString" choice:"Polygon" choice:"MultiPoint" choice:"MultiLineString" choice:"MultiPolygon" choice:"GeometryCollection" choice:"Feature" choice:"FeatureCollection"`

	Args struct {
		Files []string `positional-arg-name:"FILE" description:"GeoJSON files, - reads stdin"`
	} `positional-args:"yes" required:"yes"`
}

var errInvalid = errors.New("invalid GeoJSON")

func (c *ValidateCommand) Execute([]string) error {
	invalid := 0
	for _, path := range c.Args.Files {
		ok, err := c.check(os.Stdout, path)
		if err != nil {
			return err
		}
		if !ok {
			invalid++
		}
	}

	if invalid > 0 {
		return fmt.Errorf("%w: %d of %d files", errInvalid, invalid, len(c.Args.Files))
	}
	return nil
}

// check validates one file and prints its messages to w.
func (c *ValidateCommand) check(w io.Writer, path string) (bool, error) {
	data, err := readInput(path)
	if err != nil {
		return false, geotools.NewIOError(path, err)
	}

	err = validation.Check(c.Kind, data)
	var verr *geotools.ValidationError
	switch {
	case err == nil:
		log.Info().Str("file", path).Str("kind", c.Kind).Msg("Valid")
		fmt.Fprintf(w, "%s: valid\n", path)
		return true, nil
	case errors.As(err, &verr):
		log.Warn().Str("file", path).Int("problems", len(verr.Messages)).Msg("Invalid")
		for _, msg := range verr.Messages {
			fmt.Fprintf(w, "%s: %s\n", path, msg)
		}
		return false, nil
	default:
		return false, err
	}
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
