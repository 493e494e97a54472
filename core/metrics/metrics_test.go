package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRun(t *testing.T) {
	c, err := NewCollector()
	require.NoError(t, err)

	c.ObserveRun(RunObservation{
		Target:        "golang",
		Outcome:       OutcomeSuccess,
		Duration:      2 * time.Second,
		Followers:     10,
		Joined:        3,
		Left:          1,
		EventFailures: 1,
		FinishedAt:    time.Unix(1700000000, 0),
	})
	c.ObserveRun(RunObservation{Target: "golang", Outcome: OutcomeFailure, Joined: 99})

	assert.Equal(t, 1.0, testutil.ToFloat64(c.runsTotal.WithLabelValues("golang", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.runsTotal.WithLabelValues("golang", OutcomeFailure)))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.joinedTotal.WithLabelValues("golang")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.leftTotal.WithLabelValues("golang")))
	assert.Equal(t, 10.0, testutil.ToFloat64(c.followers.WithLabelValues("golang")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.eventFailures.WithLabelValues("golang")))
	assert.Equal(t, 1700000000.0, testutil.ToFloat64(c.lastSuccess.WithLabelValues("golang")))
}

func TestHandler(t *testing.T) {
	c, err := NewCollector()
	require.NoError(t, err)
	c.ObserveRun(RunObservation{Target: "golang", Outcome: OutcomeSuccess, FinishedAt: time.Now()})

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `follower_tracker_runs_total{outcome="success",target="golang"} 1`)
}

func TestPush(t *testing.T) {
	var gotPath, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c, err := NewCollector()
	require.NoError(t, err)
	c.ObserveRun(RunObservation{Target: "golang", Outcome: OutcomeSuccess, FinishedAt: time.Now()})

	err = c.Push(context.Background(), Config{PushgatewayURL: srv.URL, Job: "tracker"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(gotPath, "/metrics/job/tracker"), gotPath)
	assert.NotEmpty(t, gotBody)

	// Disabled push is a no-op
	assert.NoError(t, c.Push(context.Background(), Config{}))
}
