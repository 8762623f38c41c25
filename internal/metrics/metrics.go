package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"mockcenter/internal/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the mockcenter collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "mockcenter",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mockcenter",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "mockcenter",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "route"},
	)

	envelopes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mockcenter",
			Subsystem: "api",
			Name:      "results_total",
			Help:      "Result envelopes written, by result code.",
		},
		[]string{"code"},
	)

	logins = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mockcenter",
			Subsystem: "auth",
			Name:      "logins_total",
			Help:      "Login attempts by outcome.",
		},
		[]string{"outcome"},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		envelopes,
		logins,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
	// every published code is exported from the start, at zero
	for _, k := range domain.Kinds() {
		envelopes.WithLabelValues(strconv.Itoa(k.Code()))
	}
}

// Handler exposes the registered collectors.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// InFlight increments the in-flight gauge and returns its release func.
func InFlight() func() {
	httpInFlight.Inc()
	return httpInFlight.Dec
}

// ObserveRequest records one finished request. route is the matched route
// template; unmatched requests are grouped under "unmatched".
func ObserveRequest(method, route string, status int, d time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	method = strings.ToUpper(method)
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func RecordResult(code int) {
	envelopes.WithLabelValues(strconv.Itoa(code)).Inc()
}

// RecordLogin counts a login attempt; outcome is "ok" or the error kind name.
func RecordLogin(outcome string) {
	if outcome == "" {
		outcome = "unknown"
	}
	logins.WithLabelValues(outcome).Inc()
}
