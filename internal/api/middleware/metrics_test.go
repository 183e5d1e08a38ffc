package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsMiddleware(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)

	r := chi.NewRouter()
	r.Use(metrics.Middleware)
	r.Get("/get-characters-id/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, path := range []string{"/get-characters-id/1", "/get-characters-id/2", "/nowhere"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(
		metrics.requests.WithLabelValues(http.MethodGet, "/get-characters-id/{id}", "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(
		metrics.requests.WithLabelValues(http.MethodGet, unmatchedRoute, "404")))

	count, err := testutil.GatherAndCount(reg, "thrones_http_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
