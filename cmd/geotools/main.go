// Command geotools generates, converts, validates and measures GeoJSON
// from the command line and serves the same tools over HTTP.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"

	"github.com/tingold/orb-geotools/config"
	"github.com/tingold/orb-geotools/internal/logger"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile string `short:"c" long:"config" env:"GEO_CONFIG_FILE" description:"Path to configuration file, geotools.yaml is looked up when empty"`
}

var opts Options

func main() {
	// command errors are logged, flag errors printed as go-flags formats them
	parser := flags.NewParser(&opts, flags.Default&^flags.PrintErrors)
	parser.LongDescription = "Random geometries, GeoJSON validation, format conversion and centroids."

	mustAdd(parser, "random", "Generate random features", "Generate a feature collection of random geometries.", &RandomCommand{})
	mustAdd(parser, "validate", "Validate GeoJSON files", "Check GeoJSON files against RFC 7946 and report every problem found.", &ValidateCommand{})
	mustAdd(parser, "read", "Convert a data file to GeoJSON", "Read CSV, TSV, JSON, GeoJSON, Shapefile or FlatGeobuf features and write them out.", &ReadCommand{})
	mustAdd(parser, "centroid", "Compute the centroid of GeoJSON", "Print the vertex centroid or center of mass of a GeoJSON file as a Point.", &CentroidCommand{})
	mustAdd(parser, "parse", "Parse a coordinate string", "Turn a string of lon,lat pairs into a Point, circle or Polygon.", &ParseCommand{})
	mustAdd(parser, "serve", "Serve the tools over HTTP", "Start an HTTP server offering random data, validation and centroids.", &ServeCommand{})

	parser.CommandHandler = func(cmd flags.Commander, args []string) error {
		// Setup Logging
		opts.Logger.Setup()
		if cmd == nil {
			return nil
		}
		return cmd.Execute(args)
	}

	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) {
			if flagsErr.Type == flags.ErrHelp {
				fmt.Fprintln(os.Stdout, flagsErr.Message)
				os.Exit(0)
			}
			fmt.Fprintln(os.Stderr, flagsErr)
			os.Exit(1)
		}
		log.Fatal().Err(err).Msg("Command failed")
	}
}

func mustAdd(p *flags.Parser, name, short, long string, cmd flags.Commander) {
	if _, err := p.AddCommand(name, short, long, cmd); err != nil {
		log.Fatal().Err(err).Str("command", name).Msg("Failed to register command")
	}
}

// loadConfig reads the generator configuration from --config or the
// default locations.
func loadConfig() (config.Config, error) {
	if opts.ConfigFile != "" {
		return config.LoadFile(opts.ConfigFile)
	}
	return config.Load()
}
