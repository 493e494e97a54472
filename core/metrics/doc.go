// Package metrics exposes Prometheus metrics for reconcile runs.
//
// The collector lives on its own registry. Serve mode exposes it on /metrics;
// one-shot runs can push it to a Pushgateway since the process exits before
// any scrape.
package metrics
