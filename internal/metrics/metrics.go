package metrics

import (
	"net/http"
	"time"

	"github.com/orgball2608/board-api/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
)

const namespace = "board"

const resultOK = "ok"

// Metrics owns a private registry rather than the global default.
type Metrics struct {
	registry  *prometheus.Registry
	ops       *prometheus.CounterVec
	latency   *prometheus.HistogramVec
	documents *prometheus.GaugeVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Board operations by result.",
		}, []string{"operation", "result"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Board operation latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		documents: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "documents",
			Help:      "Documents per collection at the last stats refresh.",
		}, []string{"collection"}),
	}

	m.registry.MustRegister(
		m.ops,
		m.latency,
		m.documents,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Observe records one finished operation. The result label is the error
// code of err, "error" for uncoded failures, or "ok".
func (m *Metrics) Observe(operation string, start time.Time, err error) {
	m.latency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	m.ops.WithLabelValues(operation, result(err)).Inc()
}

func (m *Metrics) SetDocuments(collection string, n int64) {
	m.documents.WithLabelValues(collection).Set(float64(n))
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func result(err error) string {
	if err == nil {
		return resultOK
	}
	if code := errors.GetCode(err); code != "" {
		return code
	}
	return "error"
}

var Module = fx.Provide(New)
