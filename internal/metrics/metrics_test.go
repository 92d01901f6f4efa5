package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RegistersCollectors(t *testing.T) {
	reg := NewRegistry()
	m := New(reg)

	m.FeedbackLabeled.WithLabelValues("Positive").Add(3)
	m.ScenarioBuilds.WithLabelValues("ok").Inc()
	m.ScenarioCacheHits.Inc()

	assert.Equal(t, 3.0, testutil.ToFloat64(m.FeedbackLabeled.WithLabelValues("Positive")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ScenarioCacheHits))

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "insightdesk_feedback_labeled_total")
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestNew_DoubleRegisterPanics(t *testing.T) {
	reg := NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) })
}
