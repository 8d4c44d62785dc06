package server

import (
	"fmt"
	"net/url"
	"strconv"

	geotools "github.com/tingold/orb-geotools"
	"github.com/tingold/orb-geotools/config"
	"github.com/tingold/orb-geotools/random"
)

// randomQuery is the decoded query string of a /random.* request.
type randomQuery struct {
	kind  string
	count int
	seed  uint64
	opts  []random.Option
}

// parseRandomQuery reads kind, count, seed, vertices, lines, polygons,
// kinds and bbox. Absent values keep the generator defaults.
func parseRandomQuery(q url.Values) (randomQuery, error) {
	rq := randomQuery{kind: q.Get("kind"), count: 1}

	if rq.kind != "" && !geotools.IsGeometryKind(rq.kind) {
		return rq, &geotools.InvalidOptionError{Option: "kind", Reason: fmt.Sprintf("unknown geometry kind %q", rq.kind)}
	}

	if v := q.Get("count"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > MaxCount {
			return rq, &geotools.InvalidOptionError{Option: "count", Reason: fmt.Sprintf("expected 0..%d, got %q", MaxCount, v)}
		}
		rq.count = n
	}

	if v := q.Get("seed"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return rq, &geotools.InvalidOptionError{Option: "seed", Reason: err.Error()}
		}
		rq.seed = seed
	}

	// unset values count at their largest generator default
	sizes := map[string]int{"vertices": 3, "lines": 2, "polygons": 2}
	counts := []struct {
		name string
		max  int
		opt  func(int) random.Option
	}{
		{"vertices", MaxVertices, random.WithVertices},
		{"lines", MaxParts, random.WithLines},
		{"polygons", MaxParts, random.WithPolygons},
		{"kinds", MaxParts, random.WithKinds},
	}
	for _, c := range counts {
		v := q.Get(c.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return rq, &geotools.InvalidOptionError{Option: c.name, Reason: fmt.Sprintf("not an integer: %q", v)}
		}
		if n > c.max {
			return rq, &geotools.InvalidOptionError{Option: c.name, Reason: fmt.Sprintf("must not exceed %d, got %d", c.max, n)}
		}
		if n > 0 {
			sizes[c.name] = n
		}
		rq.opts = append(rq.opts, c.opt(n))
	}

	if total := positions(rq.count, sizes["vertices"], sizes["lines"], sizes["polygons"]); total > MaxPositions {
		return rq, &geotools.InvalidOptionError{
			Option: "count",
			Reason: fmt.Sprintf("request would generate about %d positions, limit is %d", total, MaxPositions),
		}
	}

	if values, ok := q["bbox"]; ok {
		b, err := config.ParseBBox(values)
		if err != nil {
			return rq, err
		}
		rq.opts = append(rq.opts, random.WithBBox(b))
	}

	return rq, nil
}

// positions estimates the positions of count features of the largest kind:
// a collection holding a MultiLineString, a MultiPolygon and four single
// part geometries, with every ring closed.
func positions(count, vertices, lines, polygons int) int {
	return count * (vertices + 1) * (lines + polygons + 4)
}
