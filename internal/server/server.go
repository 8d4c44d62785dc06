// Package server exposes the random generator, the validator and the
// centroid helpers over HTTP, with Prometheus metrics on /metrics.
package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/tingold/orb-geotools/config"
	"github.com/tingold/orb-geotools/random"
)

// MaxCount caps the number of features a single request may generate.
const MaxCount = 10000

// MaxVertices caps the vertices query parameter and MaxParts the lines,
// polygons and kinds parameters.
const (
	MaxVertices = 10000
	MaxParts    = 1000
)

// MaxPositions caps the estimated number of positions one request may
// generate across all of its features.
const MaxPositions = 2_000_000

// MaxBody caps the size of request bodies sent to /validate and /centroid.
const MaxBody = 32 << 20

// Server holds dependencies for request handlers.
type Server struct {
	cfg    config.Config
	gen    *random.Generator
	static string
}

// New creates a server generating geometries with cfg. When static is not
// empty, files below that directory are served for unmatched paths.
func New(cfg config.Config, static string) (*Server, error) {
	gen, err := random.New(cfg, nil)
	if err != nil {
		return nil, err
	}

	bbox := cfg.BBoxArray()
	log.Debug().
		Float64("max_length", cfg.MaxLength).
		Float64("max_rotation", cfg.MaxRotation).
		Floats64("bbox", bbox[:]).
		Str("static", static).
		Msg("Server context initialized")

	return &Server{cfg: cfg, gen: gen, static: static}, nil
}

// Handler returns the routes wrapped in the request logger and the metrics
// middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/random.geojson", s.HandleRandom)
	mux.HandleFunc("/random.json", s.HandleRandom)
	mux.HandleFunc("/random.yaml", s.HandleRandom)
	mux.HandleFunc("/random.fgb", s.HandleRandom)
	mux.HandleFunc("/validate", s.HandleValidate)
	mux.HandleFunc("/centroid", s.HandleCentroid)
	mux.Handle("/metrics", promhttp.Handler())

	if s.static != "" {
		mux.Handle("/", http.FileServer(http.Dir(s.static)))
	} else {
		mux.HandleFunc("/", http.NotFound)
	}

	return RequestLogger(Metrics(mux))
}
