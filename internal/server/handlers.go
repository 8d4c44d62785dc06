package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/rs/zerolog/log"

	geotools "github.com/tingold/orb-geotools"
	"github.com/tingold/orb-geotools/calculation"
	"github.com/tingold/orb-geotools/fgb"
	"github.com/tingold/orb-geotools/internal/encode"
	"github.com/tingold/orb-geotools/random"
	"github.com/tingold/orb-geotools/validation"
)

// HandleRandom serves a random feature collection. The output format
// follows the path extension: .geojson and .json give GeoJSON, .yaml gives
// YAML and .fgb gives FlatGeobuf.
func (s *Server) HandleRandom(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
		return
	}

	rq, err := parseRandomQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	gen := s.gen
	if rq.seed != 0 {
		if gen, err = random.New(s.cfg, random.NewSource(rq.seed)); err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
	}

	fc, err := gen.FeatureCollection(rq.kind, rq.count, rq.opts...)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	format := encode.FormatOf(r.URL.Path)
	var buf bytes.Buffer
	if err := encode.Write(&buf, format, fc, encode.Options{Name: "random"}); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, fgb.ErrEmpty) {
			status = http.StatusBadRequest
		}
		writeError(w, status, err)
		return
	}

	w.Header().Set("Content-Type", encode.ContentType(format))
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Cache-Control", "no-store")
	if format == encode.FormatFGB {
		w.Header().Set("Content-Disposition", `attachment; filename="`+path.Base(r.URL.Path)+`"`)
	}
	_, _ = w.Write(buf.Bytes())

	kind := rq.kind
	if kind == "" {
		kind = "any"
	}
	featuresGenerated.WithLabelValues(kind, format).Add(float64(len(fc.Features)))
}

type validateResponse struct {
	Valid    bool     `json:"valid"`
	Kind     string   `json:"kind,omitempty"`
	Messages []string `json:"messages,omitempty"`
}

// HandleValidate checks the posted GeoJSON document. The optional kind
// query parameter restricts the accepted object type.
func (s *Server) HandleValidate(w http.ResponseWriter, r *http.Request) {
	data, ok := readBody(w, r)
	if !ok {
		return
	}

	kind := r.URL.Query().Get("kind")
	err := validation.Check(kind, data)

	var verr *geotools.ValidationError
	var optErr *geotools.InvalidOptionError
	switch {
	case err == nil:
		validations.WithLabelValues("valid").Inc()
		writeJSON(w, http.StatusOK, validateResponse{Valid: true, Kind: kind})
	case errors.As(err, &verr):
		validations.WithLabelValues("invalid").Inc()
		log.Debug().Str("kind", kind).Strs("messages", verr.Messages).Msg("Invalid GeoJSON posted")
		writeJSON(w, http.StatusOK, validateResponse{Kind: kind, Messages: verr.Messages})
	case errors.As(err, &optErr):
		writeError(w, http.StatusBadRequest, err)
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}

// HandleCentroid returns the vertex centroid of the posted GeoJSON
// document as a GeoJSON Point. With mass=true the area weighted center of
// mass of a geometry is returned instead.
func (s *Server) HandleCentroid(w http.ResponseWriter, r *http.Request) {
	data, ok := readBody(w, r)
	if !ok {
		return
	}

	var (
		c   orb.Point
		err error
	)
	if strings.EqualFold(r.URL.Query().Get("mass"), "true") {
		var g *geojson.Geometry
		if g, err = geojson.UnmarshalGeometry(data); err == nil {
			c, err = calculation.CenterOfMass(g.Geometry())
		}
	} else {
		c, err = calculation.CentroidOfGeoJSON(data)
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	writeJSON(w, http.StatusOK, geojson.NewGeometry(c))
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
		return nil, false
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBody))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, err)
		return nil, false
	}
	return data, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Ignoring error as we cannot handle client disconnects
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Msg("Request failed")
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
