package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveBackend(t *testing.T) {
	m := New()
	m.ObserveBackend("list_participants", nil, 20*time.Millisecond)
	m.ObserveBackend("list_participants", errors.New("boom"), time.Second)

	assert.Equal(t, 2, testutil.CollectAndCount(m.BackendLatency))
}

func TestObserveRequest(t *testing.T) {
	m := New()
	m.ObserveRequest(http.MethodGet, 200)
	m.ObserveRequest(http.MethodGet, 200)
	m.ObserveRequest(http.MethodDelete, 404)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("DELETE", "404")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveBackend("x", nil, time.Second)
	m.ObserveRequest("GET", 200)
	m.ObserveView(3)
	m.ObserveSignedURL("cache")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlerExposesCollectors(t *testing.T) {
	m := New()
	m.ObserveView(4)
	m.ObserveSignedURL("storage")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "inscritos_view_filtered_count"))
	assert.True(t, strings.Contains(body, `inscritos_signed_urls_total{source="storage"} 1`))
}
