package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// DefaultNamespace prefixes every metric unless configured otherwise.
const DefaultNamespace = "partbuilder"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	combinations    *prom.CounterVec
	builderLifetime *prom.HistogramVec
	errors          *prom.CounterVec
	locationDepth   prom.Gauge
	pending         *prom.CounterVec
}

var _ Recorder = (*PrometheusRecorder)(nil)

// NewPrometheusRecorder constructs the metrics and registers them with reg.
func NewPrometheusRecorder(reg *prom.Registry, namespace string) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	if namespace == "" {
		namespace = DefaultNamespace
	}
	pr := &PrometheusRecorder{
		combinations: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "combinations_total",
			Help:      "Combinations by builder variant, mode and result",
		}, []string{"variant", "mode", "result"}),
		builderLifetime: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "builder_lifetime_seconds",
			Help:      "Time between builder entry and exit",
			Buckets:   prom.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"variant", "outcome"}),
		errors: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "Errors reported by construction operations, by category",
		}, []string{"category"}),
		locationDepth: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "location_depth",
			Help:      "Depth of the location stack after the last push or pop",
		}),
		pending: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "pending_objects_total",
			Help:      "Objects queued on pending lists, by kind",
		}, []string{"kind"}),
	}
	reg.MustRegister(pr.combinations, pr.builderLifetime, pr.errors, pr.locationDepth, pr.pending)
	return pr
}

func (p *PrometheusRecorder) IncCombination(variant, mode string, result ResultLabel) {
	if p == nil || p.combinations == nil {
		return
	}
	p.combinations.WithLabelValues(variant, mode, string(result)).Inc()
}

func (p *PrometheusRecorder) ObserveBuilderLifetime(variant string, outcome OutcomeLabel, d time.Duration) {
	if p == nil || p.builderLifetime == nil {
		return
	}
	p.builderLifetime.WithLabelValues(variant, string(outcome)).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncError(category string) {
	if p == nil || p.errors == nil {
		return
	}
	p.errors.WithLabelValues(category).Inc()
}

func (p *PrometheusRecorder) SetLocationDepth(n int) {
	if p == nil || p.locationDepth == nil {
		return
	}
	p.locationDepth.Set(float64(n))
}

func (p *PrometheusRecorder) AddPending(kind string, n int) {
	if p == nil || p.pending == nil || n <= 0 {
		return
	}
	p.pending.WithLabelValues(kind).Add(float64(n))
}
