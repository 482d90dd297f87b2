package obs

import (
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var defaultLatencyBucketsMs = []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500}

// HTTPMetrics holds the request collectors shared by every kasir surface.
type HTTPMetrics struct {
	ReqTotal  *prometheus.CounterVec
	ReqDur    *prometheus.HistogramVec
	InFlight  prometheus.Gauge
	RespBytes *prometheus.CounterVec
}

// NewHTTPMetrics registers the request collectors under namespace. Collectors
// already present in reg are reused so tests and restarts can share a registry.
func NewHTTPMetrics(namespace string, buckets []float64, reg prometheus.Registerer) *HTTPMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if len(buckets) == 0 {
		buckets = defaultLatencyBucketsMs
	} else {
		buckets = slices.Clone(buckets)
		slices.Sort(buckets)
	}

	m := &HTTPMetrics{
		ReqTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Requests served, by method, route pattern and status.",
		}, []string{"method", "route", "status"}),
		ReqDur: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_ms",
			Help:      "Request latency in milliseconds, by method and route pattern.",
			Buckets:   buckets,
		}, []string{"method", "route"}),
		InFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_in_flight_requests",
			Help:      "Requests currently being served.",
		}),
		RespBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_response_bytes_total",
			Help:      "Response body bytes written, by surface (api, pos, store, ops).",
		}, []string{"surface"}),
	}

	mustRegisterCollector(reg, m.ReqTotal, func(c prometheus.Collector) {
		if v, ok := c.(*prometheus.CounterVec); ok {
			m.ReqTotal = v
		}
	})
	mustRegisterCollector(reg, m.ReqDur, func(c prometheus.Collector) {
		if v, ok := c.(*prometheus.HistogramVec); ok {
			m.ReqDur = v
		}
	})
	mustRegisterCollector(reg, m.InFlight, func(c prometheus.Collector) {
		if v, ok := c.(prometheus.Gauge); ok {
			m.InFlight = v
		}
	})
	mustRegisterCollector(reg, m.RespBytes, func(c prometheus.Collector) {
		if v, ok := c.(*prometheus.CounterVec); ok {
			m.RespBytes = v
		}
	})
	return m
}

// Surface groups a route pattern into the part of kasir that served it.
func Surface(route string) string {
	switch {
	case strings.HasPrefix(route, "/api/v1/pos"):
		return "pos"
	case strings.HasPrefix(route, "/api/"):
		return "api"
	case strings.HasPrefix(route, "/health"), strings.HasPrefix(route, "/metrics"), strings.HasPrefix(route, "/debug"):
		return "ops"
	case route == "" || route == "unknown":
		return "unknown"
	default:
		return "store"
	}
}

// ParseBucketsCSV reads millisecond bucket boundaries such as "5,25,100".
// Blank, malformed and non-positive entries are skipped.
func ParseBucketsCSV(csv string) []float64 {
	fields := strings.FieldsFunc(csv, func(r rune) bool { return r == ',' || r == ' ' })
	var out []float64
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil || v <= 0 {
			continue
		}
		out = append(out, v)
	}
	return out
}

// DurationMillis converts d to fractional milliseconds.
func DurationMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
