package observability

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/push"
	"github.com/riskibarqy/league-manager/internal/domain/roster"
)

const (
	resultSuccess = "success"
	resultFailure = "failure"
)

// Metrics owns a private registry for HTTP route metrics and roster batch
// outcomes. It satisfies httpapi.RouteInstrumenter and usecase.BatchObserver.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	rosterOperations        *prometheus.CounterVec
	rosterOperationDuration *prometheus.HistogramVec
	rosterBatches           *prometheus.CounterVec
	rosterBatchSize         prometheus.Histogram
}

func NewMetrics(namespace string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route and method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		rosterOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "roster",
			Name:      "operations_total",
			Help:      "Roster save operations by verb and result.",
		}, []string{"verb", "result"}),
		rosterOperationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "roster",
			Name:      "operation_duration_seconds",
			Help:      "Roster save operation latency by verb.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"verb"}),
		rosterBatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "roster",
			Name:      "batches_total",
			Help:      "Roster save batches by result.",
		}, []string{"result"}),
		rosterBatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "roster",
			Name:      "batch_size",
			Help:      "Operations per roster save batch.",
			Buckets:   []float64{1, 2, 4, 8, 16, 32, 64},
		}),
	}

	m.registry.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.rosterOperations,
		m.rosterOperationDuration,
		m.rosterBatches,
		m.rosterBatchSize,
	)

	return m
}

// RegisterRuntimeCollectors adds Go runtime and process collectors; long
// running processes want them, one-shot CLI pushes do not.
func (m *Metrics) RegisterRuntimeCollectors() {
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) InstrumentRoute(route string, next http.Handler) http.Handler {
	labels := prometheus.Labels{"route": route}
	return promhttp.InstrumentHandlerDuration(
		m.httpDuration.MustCurryWith(labels),
		promhttp.InstrumentHandlerCounter(m.httpRequests.MustCurryWith(labels), next),
	)
}

func (m *Metrics) ObserveOperation(op roster.Operation, succeeded bool, elapsed time.Duration) {
	verb := string(op.Verb)
	m.rosterOperations.WithLabelValues(verb, resultLabel(succeeded)).Inc()
	m.rosterOperationDuration.WithLabelValues(verb).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveBatch(size int, allSucceeded bool) {
	m.rosterBatches.WithLabelValues(resultLabel(allSucceeded)).Inc()
	m.rosterBatchSize.Observe(float64(size))
}

// Push sends the registry to a Prometheus Pushgateway under job.
func (m *Metrics) Push(ctx context.Context, url, job string) error {
	if err := push.New(url, job).Gatherer(m.registry).PushContext(ctx); err != nil {
		return fmt.Errorf("push metrics to %s: %w", url, err)
	}
	return nil
}

func resultLabel(ok bool) string {
	if ok {
		return resultSuccess
	}
	return resultFailure
}
