package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_RegistryAndHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry("apartments", reg)

	m.ObserveHTTP("apartments", "/api/v1/bookings", http.MethodPost, http.StatusCreated, 12*time.Millisecond)
	m.ObserveDB("apartments", "exec", errors.New("boom"), time.Millisecond)
	m.IncHoldsCreated()
	m.AddStatusTransitions("ongoing", 3)

	rr := httptest.NewRecorder()
	promhttp.HandlerFor(reg, promhttp.HandlerOpts{}).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	body := rr.Body.String()
	assert.Contains(t, body, "http_requests_total")
	assert.Contains(t, body, `db_queries_total{operation="exec",service="apartments",status="error"} 1`)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.HoldsCreated.WithLabelValues("apartments")))
	assert.Equal(t, float64(3), testutil.ToFloat64(m.StatusTransitions.WithLabelValues("apartments", "ongoing")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveHTTP("s", "/", http.MethodGet, 200, time.Second)
		m.ObserveDB("s", "query", nil, time.Second)
		m.ObserveExternal("s", "gateway", 200, time.Second)
		m.IncHoldsCreated()
		m.IncHoldConflicts()
		m.IncPaymentsConfirmed("card")
		m.AddStatusTransitions("expired", 1)
		m.IncRateLimitRejected("holds")
	})
}
