// Package metrics owns the Prometheus registry and the collectors for HTTP
// traffic and buffer updates. Metric names are prefixed with "bufferpad_".
package metrics

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "bufferpad"

// NewRegistry returns a private registry with Go runtime, process and build info collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{Namespace: namespace}),
		collectors.NewBuildInfoCollector(),
	)
	return reg
}

// Handler serves the registry in the Prometheus exposition format.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}

// GatherCheck reports whether every collector in the registry can still be
// gathered. Used as a readiness check.
func GatherCheck(g prometheus.Gatherer) func(ctx context.Context) error {
	return func(_ context.Context) error {
		if _, err := g.Gather(); err != nil {
			return fmt.Errorf("failed to gather metrics: %w", err)
		}
		return nil
	}
}
