package server

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics exposes request counters in Prometheus format. Calculation
// metrics are recorded by the service package.
type Metrics struct {
	handler http.Handler
}

var (
	activeRequests = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "fibrange_http_active_requests",
		Help: "Current number of in-flight HTTP requests",
	})
	totalRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fibrange_http_requests_total",
		Help: "HTTP requests by path and status code",
	}, []string{"path", "code"})
)

// NewMetrics creates a Metrics serving the default registry. Compression
// is left to gzipMiddleware.
func NewMetrics() *Metrics {
	return &Metrics{handler: promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{
		DisableCompression: true,
	})}
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	s.metrics.handler.ServeHTTP(w, r)
}

// metricsMiddleware tracks in-flight requests and counts completed ones.
func (s *Server) metricsMiddleware(path string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		activeRequests.Inc()
		defer activeRequests.Dec()

		rec := &statusRecorder{ResponseWriter: w}
		next(rec, r)
		totalRequests.WithLabelValues(path, strconv.Itoa(rec.code())).Inc()
	}
}
