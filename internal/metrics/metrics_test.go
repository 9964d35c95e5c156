package metrics_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-planner/internal/metrics"
)

func TestMiddleware_servesAndExposesMetrics(t *testing.T) {
	r := chi.NewRouter()
	r.Use(metrics.Middleware())
	r.Get("/trips/{tripID}", func(w http.ResponseWriter, r *http.Request) {
		metrics.ObserveDBLatency(r.Context(), "trips.get", time.Now())
		w.WriteHeader(http.StatusTeapot)
	})
	r.Handle("/metrics", metrics.Handler())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/trips/abc", nil))
	require.Equal(t, http.StatusTeapot, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `planner_http_requests_total{method="GET",route="/trips/{tripID}"}`)
	assert.Contains(t, body, `planner_db_latency_seconds_count{operation="trips.get",route="/trips/{tripID}"}`)
}

func TestObserveDBLatency_withoutRoute(t *testing.T) {
	// Outside an HTTP request the route label falls back to "unknown".
	metrics.ObserveDBLatency(context.Background(), "test.op", time.Now())
}

func TestItemMutations(t *testing.T) {
	before := testutil.ToFloat64(metrics.ItemMutations.WithLabelValues("shop", "create"))
	metrics.ItemMutations.WithLabelValues("shop", "create").Inc()
	after := testutil.ToFloat64(metrics.ItemMutations.WithLabelValues("shop", "create"))
	assert.Equal(t, before+1, after)
}
