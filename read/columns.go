package read

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/paulmach/orb/geojson"
)

// columns names the record keys a geometry is built from. Empty names were
// not found.
type columns struct {
	lon, lat, wkt string
}

func (o options) columns(keys []string) columns {
	return columns{
		lon: findColumn(keys, o.lon, LongitudeColumns),
		lat: findColumn(keys, o.lat, LatitudeColumns),
		wkt: findColumn(keys, o.wkt, WKTColumns),
	}
}

func findColumn(keys []string, name string, candidates []string) string {
	if name != "" {
		candidates = []string{name}
	}
	for _, c := range candidates {
		for _, k := range keys {
			if strings.EqualFold(strings.TrimSpace(k), c) {
				return k
			}
		}
	}
	return ""
}

// geometry builds the geometry of a record. A WKT string or GeoJSON object
// in the geometry column wins over a longitude/latitude pair. The returned
// key is the geometry column that was consumed, if any.
func (c columns) geometry(props geojson.Properties) (orb.Geometry, string, error) {
	if c.wkt != "" {
		switch v := props[c.wkt].(type) {
		case string:
			if strings.TrimSpace(v) != "" {
				g, err := wkt.Unmarshal(v)
				if err != nil {
					return nil, "", fmt.Errorf("column %q: %w", c.wkt, err)
				}
				return g, c.wkt, nil
			}
		case map[string]any:
			raw, err := json.Marshal(v)
			if err != nil {
				return nil, "", fmt.Errorf("column %q: %w", c.wkt, err)
			}
			g, err := geojson.UnmarshalGeometry(raw)
			if err != nil {
				return nil, "", fmt.Errorf("column %q: %w", c.wkt, err)
			}
			return g.Geometry(), c.wkt, nil
		}
	}

	if c.lon == "" || c.lat == "" {
		return nil, "", nil
	}
	lon, lonOK, err := number(props[c.lon])
	if err != nil {
		return nil, "", fmt.Errorf("column %q: %w", c.lon, err)
	}
	lat, latOK, err := number(props[c.lat])
	if err != nil {
		return nil, "", fmt.Errorf("column %q: %w", c.lat, err)
	}
	if !lonOK || !latOK {
		return nil, "", nil
	}
	return orb.Point{lon, lat}, "", nil
}

// number reports false for a missing or blank value.
func number(v any) (float64, bool, error) {
	switch n := v.(type) {
	case nil:
		return 0, false, nil
	case float64:
		return n, true, nil
	case json.Number:
		f, err := n.Float64()
		return f, err == nil, err
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, false, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false, fmt.Errorf("%q is not a number", n)
		}
		return f, true, nil
	}
	return 0, false, fmt.Errorf("%v is not a number", v)
}
