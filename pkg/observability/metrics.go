package observability

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// Metrics bundles the meter provider and the registry that backs the
// /metrics endpoint.
type Metrics struct {
	Registry      *prometheus.Registry
	MeterProvider *sdkmetric.MeterProvider
}

// NewMetrics creates a Prometheus-backed OpenTelemetry meter provider.
func NewMetrics() (*Metrics, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(prometheus.NewGoCollector())

	exporter, err := otelprom.New(otelprom.WithRegisterer(registry))
	if err != nil {
		return nil, fmt.Errorf("observability: create prometheus exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))

	return &Metrics{
		Registry:      registry,
		MeterProvider: provider,
	}, nil
}

// Meter returns a named meter from the provider.
func (m *Metrics) Meter(name string) metric.Meter {
	return m.MeterProvider.Meter(name)
}

// Handler returns an http.Handler serving the metrics in Prometheus
// exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
