package calculation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"

	geotools "github.com/tingold/orb-geotools"
)

// Defaults for ParseCoordinateString.
const (
	DefaultDelimiter   = ","
	DefaultSeparator   = " "
	DefaultCircleSteps = 64
)

// ParseOption configures ParseCoordinateString.
type ParseOption func(*parseOptions)

type parseOptions struct {
	delimiter string
	separator string
	steps     int
}

// WithDelimiter sets the string between the longitude and latitude of a
// pair. Default ",".
func WithDelimiter(d string) ParseOption {
	return func(o *parseOptions) {
		o.delimiter = d
	}
}

// WithSeparator sets the string between pairs. Default " ".
func WithSeparator(s string) ParseOption {
	return func(o *parseOptions) {
		o.separator = s
	}
}

// WithCircleSteps sets how many segments approximate a circle. Default 64.
func WithCircleSteps(n int) ParseOption {
	return func(o *parseOptions) {
		o.steps = n
	}
}

// Parsed is the result of ParseCoordinateString. Geometry is nil when the
// pairs do not describe a point, circle or polygon; Coordinates always holds
// the parsed numbers.
type Parsed struct {
	Geometry    orb.Geometry
	Coordinates [][]float64
}

// ParseCoordinateString turns a string of "lon,lat" pairs into a geometry:
//
//	"-9.2,39.5"                            Point
//	"-9.2,39.5 10"                         Polygon approximating a circle of 10 km
//	"-4.7,39.3 -5.2,38.6 -6.1,40.1 -4.7,39.3" Polygon
//
// A circle with radius 0 is a Point. Anything else is returned as raw
// coordinates only.
func ParseCoordinateString(s string, opts ...ParseOption) (Parsed, error) {
	o := parseOptions{delimiter: DefaultDelimiter, separator: DefaultSeparator, steps: DefaultCircleSteps}
	for _, opt := range opts {
		opt(&o)
	}
	if o.delimiter == "" || o.separator == "" || o.delimiter == o.separator {
		return Parsed{}, &geotools.InvalidOptionError{
			Option: "delimiter",
			Reason: "delimiter and separator must be distinct and non-empty",
		}
	}
	if o.steps < 3 {
		return Parsed{}, &geotools.InvalidOptionError{Option: "steps", Reason: "a circle needs at least 3 steps"}
	}

	coords, err := ParseCoordinates(s, o.delimiter, o.separator)
	if err != nil {
		return Parsed{}, err
	}
	parsed := Parsed{Coordinates: coords}

	switch {
	case len(coords) == 1 && isPosition(coords[0]):
		parsed.Geometry = toPoint(coords[0])

	case len(coords) == 2 && isPosition(coords[0]):
		center := toPoint(coords[0])
		radius := coords[1][0]
		if radius < 0 {
			return Parsed{}, geotools.NewValidationError(geotools.KindPolygon, []string{
				fmt.Sprintf("circle radius must not be negative, got %v", radius),
			})
		}
		if radius == 0 {
			parsed.Geometry = center
		} else {
			parsed.Geometry = Circle(center, radius*1000, o.steps)
		}

	case isRing(coords):
		ring := make(orb.Ring, 0, len(coords))
		for _, c := range coords {
			ring = append(ring, toPoint(c))
		}
		parsed.Geometry = orb.Polygon{ring}
	}

	return parsed, nil
}

// ParseCoordinates splits s into pairs and each pair into numbers. Empty
// pairs are skipped.
func ParseCoordinates(s, delimiter, separator string) ([][]float64, error) {
	var coords [][]float64
	var messages []string

	for i, pair := range strings.Split(s, separator) {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		fields := strings.Split(pair, delimiter)
		nums := make([]float64, 0, len(fields))
		for _, f := range fields {
			n, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil {
				messages = append(messages, fmt.Sprintf("pair %d: %q is not a number", i, f))
				continue
			}
			nums = append(nums, n)
		}
		coords = append(coords, nums)
	}

	if err := geotools.NewValidationError("", messages); err != nil {
		return nil, err
	}
	return coords, nil
}

// Circle approximates a geodesic circle of radius metres around center with
// a closed ring of steps+1 positions.
func Circle(center orb.Point, radius float64, steps int) orb.Polygon {
	ring := make(orb.Ring, 0, steps+1)
	for i := 0; i < steps; i++ {
		bearing := float64(i) * -360 / float64(steps)
		ring = append(ring, geo.PointAtBearingAndDistance(center, bearing, radius))
	}
	ring = append(ring, ring[0])
	return orb.Polygon{ring}
}

func isPosition(c []float64) bool {
	return len(c) >= 2
}

func isRing(coords [][]float64) bool {
	if len(coords) < 4 {
		return false
	}
	for _, c := range coords {
		if !isPosition(c) {
			return false
		}
	}
	first, last := coords[0], coords[len(coords)-1]
	return first[0] == last[0] && first[1] == last[1]
}

func toPoint(c []float64) orb.Point {
	return orb.Point{c[0], c[1]}
}
