package metrics

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"code", "method", "path"},
	)
	httpRequestsDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current Number of HTTP requests being processed.",
		},
	)

	gatewayCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_gateway_calls_total",
			Help: "Calls made to payment gateways by operation and outcome.",
		},
		[]string{"gateway", "operation", "outcome"},
	)
	gatewayCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "payment_gateway_call_duration_seconds",
			Help:    "Latency of payment gateway calls in seconds.",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15, 30},
		},
		[]string{"gateway", "operation"},
	)
	verificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_verifications_total",
			Help: "Payment verifications by resulting transaction status.",
		},
		[]string{"gateway", "status"},
	)
	sweepCartsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cart_sweep_carts_total",
			Help: "Carts touched by the expiry sweep by action.",
		},
		[]string{"action"},
	)
	sweepRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cart_sweep_runs_total",
			Help: "Expiry sweep runs by result.",
		},
		[]string{"result"},
	)
)

func init() {
	if err := prometheus.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		slog.Debug("ProcessCollector registration skipped (likely already registered)",
			slog.String("error", err.Error()))
	}

	if err := prometheus.Register(collectors.NewGoCollector()); err != nil {
		slog.Debug("GoCollector registration skipped (likely already registered)",
			slog.String("error", err.Error()))
	}
}

func ObserveGatewayCall(gateway, operation, outcome string, duration time.Duration) {
	gatewayCallsTotal.WithLabelValues(gateway, operation, outcome).Inc()
	gatewayCallDuration.WithLabelValues(gateway, operation).Observe(duration.Seconds())
}

func ObserveVerification(gateway, status string) {
	verificationsTotal.WithLabelValues(gateway, status).Inc()
}

// ObserveSweep records one sweep run; skipped runs are those that lost the lock
// or found expiry disabled.
func ObserveSweep(result string, warned, expired, deleted, conflicts int) {
	sweepRunsTotal.WithLabelValues(result).Inc()
	sweepCartsTotal.WithLabelValues("warned").Add(float64(warned))
	sweepCartsTotal.WithLabelValues("expired").Add(float64(expired))
	sweepCartsTotal.WithLabelValues("deleted").Add(float64(deleted))
	sweepCartsTotal.WithLabelValues("conflict").Add(float64(conflicts))
}

// wrapper around http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{w, http.StatusOK}
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		httpRequestsInFlight.Inc()

		rw := newResponseWriter(w)

		defer func() {
			// the mux fills in the matched pattern, keeping label cardinality bounded
			path := r.Pattern
			if path == "" {
				path = "unmatched"
			}

			httpRequestsTotal.WithLabelValues(strconv.Itoa(rw.statusCode), r.Method, path).Inc()
			httpRequestsDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
			httpRequestsInFlight.Dec()
		}()

		next.ServeHTTP(rw, r)
	})
}

// http.Handler for the Prometheus /metrics endpoint
func Handler() http.Handler {
	return promhttp.Handler()
}
