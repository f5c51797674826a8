package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveRequestCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.ObserveRequest("GET", "/api/v1/dashboard", "200", 25*time.Millisecond)
	m.ObserveRequest("GET", "/api/v1/dashboard", "200", 40*time.Millisecond)
	m.ObserveRequest("POST", "/api/v1/companies", "409", time.Millisecond)

	if got := testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/v1/dashboard", "200")); got != 2 {
		t.Fatalf("expected 2 dashboard requests, got %v", got)
	}
	if got := testutil.ToFloat64(m.requests.WithLabelValues("POST", "/api/v1/companies", "409")); got != 1 {
		t.Fatalf("expected 1 conflict request, got %v", got)
	}
}

func TestObserveRequestNilSafe(t *testing.T) {
	var m *HTTPMetrics
	m.ObserveRequest("GET", "/healthz", "200", time.Millisecond)

	empty := NewHTTPMetrics(nil)
	empty.ObserveRequest("GET", "", "200", time.Millisecond)
}
