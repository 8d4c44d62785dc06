package main

import (
	"bufio"
	"io"
	"os"

	"github.com/paulmach/orb/geojson"
	"github.com/rs/zerolog/log"

	"github.com/tingold/orb-geotools/internal/encode"
)

// OutputOptions choose where and how a command writes features.
type OutputOptions struct {
	Output string `short:"o" long:"output" description:"Output file, stdout when empty or -"`
	Format string `short:"f" long:"format" description:"Output format, guessed from the output file name when empty" choice:"json" choice:"yaml" choice:"fgb"`
	Name   string `long:"layer-name" description:"FlatGeobuf layer name"`
	Indent bool   `long:"indent" description:"Indent JSON output"`
}

func (o OutputOptions) format() string {
	if o.Format != "" {
		return o.Format
	}
	return encode.FormatOf(o.Output)
}

func (o OutputOptions) write(fc *geojson.FeatureCollection) (err error) {
	var w io.Writer = os.Stdout
	if o.Output != "" && o.Output != "-" {
		f, cerr := os.Create(o.Output)
		if cerr != nil {
			return cerr
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		w = f
	}

	bw := bufio.NewWriter(w)
	if err := encode.Write(bw, o.format(), fc, encode.Options{Name: o.Name, Indent: o.Indent}); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return err
	}

	log.Debug().
		Str("output", o.Output).
		Str("format", o.format()).
		Int("features", len(fc.Features)).
		Msg("Features written")
	return nil
}
