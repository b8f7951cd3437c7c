package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRequest(t *testing.T) {
	m := New()
	m.ObserveRequest("GET", "GET /api/recipes", 200, 10*time.Millisecond)
	m.ObserveRequest("GET", "GET /api/recipes", 200, 20*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("GET", "GET /api/recipes", "200")))
}

func TestListGeneratedAndSnapshot(t *testing.T) {
	m := New()
	m.ListGenerated(12, time.Millisecond)
	m.SnapshotFinished("completed", 2048)
	m.SnapshotFinished("failed", 0)
	m.VerificationMisses(3)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.listsGeneratedTotal))
	assert.Equal(t, 2048.0, testutil.ToFloat64(m.snapshotSizeBytes))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.snapshotsTotal.WithLabelValues("failed")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.ingredientLookupsMiss))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveRequest("GET", "/", 200, time.Second)
	m.ListGenerated(1, time.Second)
	m.SnapshotFinished("completed", 1)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlerExposesCollectors(t *testing.T) {
	m := New()
	m.ListGenerated(3, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "flexidiet_grocery_lists_generated_total 1")
}
