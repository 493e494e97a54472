package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Run outcomes used as the outcome label.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeDryRun  = "dry_run"
)

// RunObservation is what a finished run reports.
type RunObservation struct {
	Target        string
	Outcome       string
	Duration      time.Duration
	Followers     int
	Joined        int
	Left          int
	EventFailures int
	FinishedAt    time.Time
}

// Collector exposes Prometheus metrics for reconcile runs on a private registry.
type Collector struct {
	registry      *prometheus.Registry
	runsTotal     *prometheus.CounterVec
	runDuration   *prometheus.HistogramVec
	joinedTotal   *prometheus.CounterVec
	leftTotal     *prometheus.CounterVec
	followers     *prometheus.GaugeVec
	eventFailures *prometheus.CounterVec
	lastSuccess   *prometheus.GaugeVec
}

// NewCollector constructs a collector with its counters registered.
func NewCollector() (*Collector, error) {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		runsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "follower_tracker",
			Name:      "runs_total",
			Help:      "Total number of reconcile runs by outcome.",
		}, []string{"target", "outcome"}),
		runDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "follower_tracker",
			Name:      "run_duration_seconds",
			Help:      "Duration of reconcile runs.",
			Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 900},
		}, []string{"target"}),
		joinedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "follower_tracker",
			Name:      "joined_total",
			Help:      "Accounts that started following the target.",
		}, []string{"target"}),
		leftTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "follower_tracker",
			Name:      "left_total",
			Help:      "Accounts that stopped following the target.",
		}, []string{"target"}),
		followers: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "follower_tracker",
			Name:      "followers",
			Help:      "Follower count observed by the last successful run.",
		}, []string{"target"}),
		eventFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "follower_tracker",
			Name:      "event_write_failures_total",
			Help:      "Follow events that could not be written.",
		}, []string{"target"}),
		lastSuccess: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "follower_tracker",
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful run.",
		}, []string{"target"}),
	}

	for _, col := range []prometheus.Collector{
		c.runsTotal, c.runDuration, c.joinedTotal, c.leftTotal,
		c.followers, c.eventFailures, c.lastSuccess,
	} {
		if err := registry.Register(col); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// ObserveRun records one finished run. Counts from failed runs are ignored
// because nothing was written.
func (c *Collector) ObserveRun(o RunObservation) {
	c.runsTotal.WithLabelValues(o.Target, o.Outcome).Inc()
	c.runDuration.WithLabelValues(o.Target).Observe(o.Duration.Seconds())

	if o.Outcome != OutcomeSuccess {
		return
	}
	c.joinedTotal.WithLabelValues(o.Target).Add(float64(o.Joined))
	c.leftTotal.WithLabelValues(o.Target).Add(float64(o.Left))
	c.followers.WithLabelValues(o.Target).Set(float64(o.Followers))
	c.eventFailures.WithLabelValues(o.Target).Add(float64(o.EventFailures))
	c.lastSuccess.WithLabelValues(o.Target).Set(float64(o.FinishedAt.Unix()))
}

// Registry returns the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler returns an HTTP handler for exposing Prometheus metrics.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Push sends the current metrics to a Pushgateway.
func (c *Collector) Push(ctx context.Context, cfg Config) error {
	if cfg.PushgatewayURL == "" {
		return nil
	}
	if err := push.New(cfg.PushgatewayURL, cfg.Job).Gatherer(c.registry).PushContext(ctx); err != nil {
		return fmt.Errorf("failed to push metrics: %w", err)
	}
	return nil
}
