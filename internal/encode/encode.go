// Package encode writes feature collections in the output formats the
// command line and the HTTP server offer.
package encode

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/paulmach/orb/geojson"
	"gopkg.in/yaml.v3"

	geotools "github.com/tingold/orb-geotools"
	"github.com/tingold/orb-geotools/fgb"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatFGB  = "fgb"
)

// Formats lists the supported output formats.
var Formats = []string{FormatJSON, FormatYAML, FormatFGB}

// ContentType returns the media type of format.
func ContentType(format string) string {
	switch format {
	case FormatYAML:
		return "application/yaml"
	case FormatFGB:
		return "application/octet-stream"
	default:
		return "application/geo+json"
	}
}

// FormatOf guesses the output format from a file name. Unknown
// extensions fall back to JSON.
func FormatOf(path string) string {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".fgb"):
		return FormatFGB
	case strings.HasSuffix(lower, ".yaml"), strings.HasSuffix(lower, ".yml"):
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Options tune Write.
type Options struct {
	Name   string // FlatGeobuf layer name
	Indent bool   // indent JSON output
}

// Write encodes fc to w in the given format.
func Write(w io.Writer, format string, fc *geojson.FeatureCollection, opts Options) error {
	switch format {
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		if opts.Indent {
			enc.SetIndent("", "  ")
		}
		return enc.Encode(fc)

	case FormatYAML:
		return writeYAML(w, fc)

	case FormatFGB:
		var fgbOpts []fgb.Option
		if opts.Name != "" {
			fgbOpts = append(fgbOpts, fgb.WithName(opts.Name))
		}
		return fgb.WriteFeatures(w, fc, fgbOpts...)
	}

	return &geotools.InvalidOptionError{
		Option: "format",
		Reason: fmt.Sprintf("unknown output format %q, expected one of %s", format, strings.Join(Formats, ", ")),
	}
}

// writeYAML renders the GeoJSON document as YAML. The orb types only
// carry JSON tags, so the document goes through its generic JSON form.
func writeYAML(w io.Writer, fc *geojson.FeatureCollection) error {
	data, err := json.Marshal(fc)
	if err != nil {
		return err
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}
