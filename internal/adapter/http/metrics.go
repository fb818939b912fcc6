package adapthttp

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	cartOps  *prometheus.CounterVec
	orders   prometheus.Counter
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "emberguard",
			Name:      "http_requests_total",
			Help:      "API requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "emberguard",
			Name:      "http_request_duration_seconds",
			Help:      "API request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		cartOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "emberguard",
			Name:      "cart_operations_total",
			Help:      "Successful cart mutations by operation.",
		}, []string{"op"}),
		orders: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "emberguard",
			Name:      "orders_placed_total",
			Help:      "Orders placed.",
		}),
	}
	m.registry.MustRegister(
		m.requests, m.duration, m.cartOps, m.orders,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *metrics) instrument(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		m.requests.WithLabelValues(route, r.Method, strconv.Itoa(rec.status)).Inc()
		m.duration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}

func (m *metrics) cartOp(op string) {
	m.cartOps.WithLabelValues(op).Inc()
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
