package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	geotools "github.com/tingold/orb-geotools"
	"github.com/tingold/orb-geotools/config"
	"github.com/tingold/orb-geotools/fgb"
)

func newServer(t *testing.T, static string) http.Handler {
	t.Helper()
	s, err := New(config.Default(), static)
	require.NoError(t, err)
	return s.Handler()
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRandomGeoJSON(t *testing.T) {
	h := newServer(t, "")

	rec := do(t, h, http.MethodGet, "/random.geojson?kind=LineString&count=4&vertices=5&bbox=10,20,11,21", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/geo+json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	fc, err := geojson.UnmarshalFeatureCollection(rec.Body.Bytes())
	require.NoError(t, err)
	require.Len(t, fc.Features, 4)

	bound := orb.Bound{Min: orb.Point{10, 20}, Max: orb.Point{11, 21}}
	for _, f := range fc.Features {
		ls, ok := f.Geometry.(orb.LineString)
		require.True(t, ok)
		assert.Len(t, ls, 5)
		for _, p := range ls {
			assert.True(t, bound.Contains(p), "%v outside %v", p, bound)
		}
	}
}

func TestRandomSeedIsReproducible(t *testing.T) {
	h := newServer(t, "")

	a := do(t, h, http.MethodGet, "/random.json?seed=42&count=3", "")
	b := do(t, h, http.MethodGet, "/random.json?seed=42&count=3", "")
	require.Equal(t, http.StatusOK, a.Code)
	assert.Equal(t, a.Body.String(), b.Body.String())
}

func TestRandomFGB(t *testing.T) {
	h := newServer(t, "")

	rec := do(t, h, http.MethodGet, "/random.fgb?kind=Polygon&count=7", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/octet-stream", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "random.fgb")

	r, err := fgb.NewReaderFromData(rec.Body.Bytes())
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, "random", r.Header().Name)
	features, err := r.Features()
	require.NoError(t, err)
	assert.Len(t, features, 7)
}

func TestRandomYAML(t *testing.T) {
	rec := do(t, newServer(t, ""), http.MethodGet, "/random.yaml?kind=Point", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/yaml", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "type: FeatureCollection")
}

func TestRandomBadRequest(t *testing.T) {
	h := newServer(t, "")

	for _, query := range []string{
		"kind=Circle",
		"count=-1",
		"count=many",
		"count=100000",
		"seed=-3",
		"vertices=x",
		"vertices=-2",
		"bbox=10,20,5,25",
	} {
		rec := do(t, h, http.MethodGet, "/random.geojson?"+query, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, query)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), query)
		assert.NotEmpty(t, body["error"], query)
	}

	rec := do(t, h, http.MethodGet, "/random.fgb?count=0", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/random.geojson", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRandomSizeLimits(t *testing.T) {
	h := newServer(t, "")

	for _, query := range []string{
		"vertices=2000000000",
		"vertices=10001",
		"lines=5000",
		"polygons=1001",
		"kinds=1001",
		"count=10000&vertices=1000",
		"count=10000&kind=MultiPolygon&polygons=100",
	} {
		rec := do(t, h, http.MethodGet, "/random.geojson?"+query, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, query)
	}

	rec := do(t, h, http.MethodGet, fmt.Sprintf("/random.geojson?kind=LineString&vertices=%d", MaxVertices), "")
	require.Equal(t, http.StatusOK, rec.Code)
	fc, err := geojson.UnmarshalFeatureCollection(rec.Body.Bytes())
	require.NoError(t, err)
	assert.Len(t, fc.Features[0].Geometry.(orb.LineString), MaxVertices)

	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, fmt.Sprintf("/random.geojson?count=%d", MaxCount), "").Code)
}

func TestParseRandomQuery_SizeLimit(t *testing.T) {
	_, err := parseRandomQuery(url.Values{"vertices": {"2000000000"}})
	var optErr *geotools.InvalidOptionError
	require.True(t, errors.As(err, &optErr))
	assert.Equal(t, "vertices", optErr.Option)

	_, err = parseRandomQuery(url.Values{"count": {"5000"}, "lines": {"200"}})
	require.True(t, errors.As(err, &optErr))
	assert.Equal(t, "count", optErr.Option)
}

func TestValidate(t *testing.T) {
	h := newServer(t, "")

	rec := do(t, h, http.MethodPost, "/validate?kind=Point", `{"type":"Point","coordinates":[1,2]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp validateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Valid)
	assert.Empty(t, resp.Messages)

	rec = do(t, h, http.MethodPost, "/validate", `{"type":"LineString","coordinates":[[1,2]]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	resp = validateResponse{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Valid)
	assert.NotEmpty(t, resp.Messages)

	rec = do(t, h, http.MethodPost, "/validate?kind=Circle", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/validate", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestCentroid(t *testing.T) {
	h := newServer(t, "")
	square := `{"type":"Polygon","coordinates":[[[0,0],[4,0],[4,4],[0,4],[0,0]]]}`

	rec := do(t, h, http.MethodPost, "/centroid", square)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	g, err := geojson.UnmarshalGeometry(rec.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, orb.Point{2, 2}, g.Geometry())

	rec = do(t, h, http.MethodPost, "/centroid?mass=true", square)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	g, err = geojson.UnmarshalGeometry(rec.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, orb.Point{2, 2}, g.Geometry())

	rec = do(t, h, http.MethodPost, "/centroid", `{"type":"Point"`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStaticFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>map</h1>"), 0o644))

	rec := do(t, newServer(t, dir), http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<h1>map</h1>")

	rec = do(t, newServer(t, ""), http.MethodGet, "/", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestParseRandomQuery(t *testing.T) {
	rq, err := parseRandomQuery(url.Values{})
	require.NoError(t, err)
	assert.Equal(t, 1, rq.count)
	assert.Empty(t, rq.kind)
	assert.Zero(t, rq.seed)
	assert.Empty(t, rq.opts)

	rq, err = parseRandomQuery(url.Values{
		"kind":     {"MultiPolygon"},
		"count":    {"0"},
		"seed":     {"9"},
		"polygons": {"3"},
		"bbox":     {"0", "0", "1", "1"},
	})
	require.NoError(t, err)
	assert.Equal(t, "MultiPolygon", rq.kind)
	assert.Equal(t, 0, rq.count)
	assert.Equal(t, uint64(9), rq.seed)
	assert.Len(t, rq.opts, 2)
}

func TestMetrics(t *testing.T) {
	h := newServer(t, "")

	require.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/random.geojson?kind=Point&count=5", "").Code)
	do(t, h, http.MethodPost, "/validate", `{"type":"Point","coordinates":[1,2]}`)
	do(t, h, http.MethodGet, "/nowhere/at/all", "")

	rec := do(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `geotools_http_requests_total{method="GET",path="/random.geojson",status="200"}`)
	assert.Contains(t, body, `geotools_http_requests_total{method="GET",path="other",status="404"}`)
	assert.Contains(t, body, `geotools_random_features_generated_total{format="json",kind="Point"}`)
	assert.Contains(t, body, `geotools_validation_documents_total{result="valid"}`)
	assert.NotContains(t, body, "/nowhere")
}

func TestRouteLabel(t *testing.T) {
	assert.Equal(t, "/random.fgb", routeLabel("/random.fgb"))
	assert.Equal(t, "other", routeLabel("/index.html"))
	assert.Equal(t, "other", routeLabel("/random.fgb/x"))
}
