// Package metric exposes prometheus instrumentation for the router,
// collector and cooldown packages. Wire it in once at startup:
//
//	m := metric.Init()
//	r.SetMetrics(m)
//	collector.SetMetrics(m)
package metric

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics implements the metrics hooks of the router, collector and
// cooldown packages.
type Metrics struct {
	dispatches       *prometheus.CounterVec
	activeCollectors prometheus.Gauge
	collectorEnds    *prometheus.CounterVec
	sweepRemoved     prometheus.Counter
}

func Init() *Metrics {
	m := &Metrics{
		dispatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dgx_router_dispatches_total",
			Help: "Router dispatches by outcome (matched, fallback, dropped)",
		}, []string{"outcome"}),
		activeCollectors: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dgx_collectors_active",
			Help: "Component collectors currently holding a gateway subscription",
		}),
		collectorEnds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dgx_collector_ends_total",
			Help: "Collector terminations by reason (timeout, stop, count-reached)",
		}, []string{"reason"}),
		sweepRemoved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dgx_cooldown_sweep_removed_total",
			Help: "Expired cooldown entries removed by sweeps",
		}),
	}

	m.dispatches = registerCounterVec(m.dispatches)
	m.collectorEnds = registerCounterVec(m.collectorEnds)
	if err := prometheus.Register(m.activeCollectors); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			m.activeCollectors = are.ExistingCollector.(prometheus.Gauge)
		} else {
			slog.Error("can't register dgx_collectors_active metric", "error", err.Error())
		}
	}
	if err := prometheus.Register(m.sweepRemoved); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			m.sweepRemoved = are.ExistingCollector.(prometheus.Counter)
		} else {
			slog.Error("can't register dgx_cooldown_sweep_removed_total metric", "error", err.Error())
		}
	}
	return m
}

func registerCounterVec(cv *prometheus.CounterVec) *prometheus.CounterVec {
	if err := prometheus.Register(cv); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector.(*prometheus.CounterVec)
		}
		slog.Error("can't register metric", "error", err.Error())
	}
	return cv
}

// Dispatched implements router.Metrics.
func (m *Metrics) Dispatched(outcome string) {
	m.dispatches.WithLabelValues(outcome).Inc()
}

// Swept implements cooldown.Metrics.
func (m *Metrics) Swept(removed int) {
	m.sweepRemoved.Add(float64(removed))
}

// CollectorStarted implements collector.Metrics.
func (m *Metrics) CollectorStarted() {
	m.activeCollectors.Inc()
}

// CollectorEnded implements collector.Metrics.
func (m *Metrics) CollectorEnded(reason string) {
	m.activeCollectors.Dec()
	m.collectorEnds.WithLabelValues(reason).Inc()
}
