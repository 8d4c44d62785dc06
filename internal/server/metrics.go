package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "geotools",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "geotools",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"method", "path"})

	httpResponseSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "geotools",
		Subsystem: "http",
		Name:      "response_size_bytes",
		Help:      "HTTP response size in bytes",
		Buckets:   prometheus.ExponentialBuckets(100, 10, 6),
	}, []string{"method", "path"})

	// Tool metrics
	featuresGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "geotools",
		Subsystem: "random",
		Name:      "features_generated_total",
		Help:      "Total random features generated",
	}, []string{"kind", "format"})

	validations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "geotools",
		Subsystem: "validation",
		Name:      "documents_total",
		Help:      "Total GeoJSON documents validated",
	}, []string{"result"})
)

var routes = map[string]bool{
	"/random.geojson": true,
	"/random.json":    true,
	"/random.yaml":    true,
	"/random.fgb":     true,
	"/validate":       true,
	"/centroid":       true,
	"/metrics":        true,
}

// routeLabel keeps label cardinality bounded: static file paths collapse
// into one value.
func routeLabel(path string) string {
	if routes[path] {
		return path
	}
	return "other"
}

// Metrics is a middleware recording request metrics.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww, ok := w.(*statusRecorder)
		if !ok {
			ww = &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		}
		next.ServeHTTP(ww, r)

		path := routeLabel(r.URL.Path)
		httpRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(ww.status)).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
		httpResponseSize.WithLabelValues(r.Method, path).Observe(float64(ww.bytes))
	})
}
