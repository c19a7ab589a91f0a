package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestSyncRecorder(t *testing.T) {
	before := testutil.ToFloat64(syncRuns.WithLabelValues("no_deal"))
	beforeErr := testutil.ToFloat64(integrationErrors.WithLabelValues("pipedrive"))

	var rec SyncRecorder
	rec.RecordSyncOutcome("no_deal")
	rec.RecordSyncOutcome("no_deal")
	rec.RecordIntegrationError("pipedrive")

	assert.Equal(t, before+2, testutil.ToFloat64(syncRuns.WithLabelValues("no_deal")))
	assert.Equal(t, beforeErr+1, testutil.ToFloat64(integrationErrors.WithLabelValues("pipedrive")))
}

func TestMetricsUsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Metrics)
	r.Post("/users/{userId}/sync", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("POST", "/users/{userId}/sync", "202"))

	req := httptest.NewRequest("POST", "/users/abc/sync", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(httpRequestsTotal.WithLabelValues("POST", "/users/{userId}/sync", "202")))
}
