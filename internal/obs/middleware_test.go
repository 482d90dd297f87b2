package obs_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/noah-isme/backend-kasir/internal/obs"
)

func TestHTTPMetricsLabels(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := obs.NewHTTPMetrics("kasir", []float64{1, 10}, registry)
	handler := obs.HTTPObs{Metrics: metrics}.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	req = req.WithContext(obs.WithRoutePattern(req.Context(), "/health/ready"))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204 got %d", rr.Code)
	}

	total := testutil.ToFloat64(metrics.ReqTotal.WithLabelValues(http.MethodGet, "/health/ready", "204"))
	if total != 1 {
		t.Fatalf("expected counter to be 1, got %v", total)
	}

	samples := testutil.CollectAndCount(metrics.ReqDur)
	if samples == 0 {
		t.Fatalf("expected histogram sample")
	}

	if metrics.InFlight != nil {
		if val := testutil.ToFloat64(metrics.InFlight); val != 0 {
			t.Fatalf("expected no in-flight requests, got %v", val)
		}
	}
}

func TestResponseBytesBySurface(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := obs.NewHTTPMetrics("kasir", nil, registry)
	handler := obs.HTTPObs{Metrics: metrics}.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/pos/sessions/abc", nil)
	req = req.WithContext(obs.WithRoutePattern(req.Context(), "/api/v1/pos/sessions/{id}"))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if got := testutil.ToFloat64(metrics.RespBytes.WithLabelValues("pos")); got != 11 {
		t.Fatalf("expected 11 bytes on pos surface, got %v", got)
	}
}

func TestSurface(t *testing.T) {
	cases := map[string]string{
		"/api/v1/pos/sessions/{id}": "pos",
		"/api/v1/products":          "api",
		"/health/ready":             "ops",
		"/metrics":                  "ops",
		"/products/{id}":            "store",
		"":                          "unknown",
	}
	for route, want := range cases {
		if got := obs.Surface(route); got != want {
			t.Errorf("Surface(%q) = %q, want %q", route, got, want)
		}
	}
}

func TestParseBucketsCSV(t *testing.T) {
	got := obs.ParseBucketsCSV(" 5, 25,,x,-1,100 ")
	want := []float64{5, 25, 100}
	if len(got) != len(want) {
		t.Fatalf("expected %v got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v got %v", want, got)
		}
	}
	if obs.ParseBucketsCSV("  ") != nil {
		t.Fatalf("expected nil for blank input")
	}
}
