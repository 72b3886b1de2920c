package pool

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// metrics is the set of observability signals the pool publishes. It never
// drives behaviour — it only mirrors ActiveCount, queue depth and outcome
// counters into a caller-supplied registry.
type metrics struct {
	submitted prometheus.Counter
	completed prometheus.Counter
	panicked  prometheus.Counter
	active    prometheus.Gauge
	queued    prometheus.Gauge
}

// newMetrics builds and registers the pool's collectors under namespace
// into reg. Passing a nil registry yields a metrics set that updates
// in-memory values nobody scrapes — useful for tests and for callers who
// don't want Prometheus wired in at all.
func newMetrics(reg prometheus.Registerer, namespace string) *metrics {
	m := &metrics{
		submitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tasks_submitted_total",
			Help:      "Total tasks submitted to the pool.",
		}),
		completed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tasks_completed_total",
			Help:      "Total tasks that returned without panicking.",
		}),
		panicked: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tasks_panicked_total",
			Help:      "Total tasks whose body panicked.",
		}),
		active: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_tasks",
			Help:      "Tasks dispatched to a worker but not yet finished (ActiveCount).",
		}),
		queued: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "queued_tasks",
			Help:      "Tasks waiting in the FIFO queue for a free worker.",
		}),
	}

	if reg != nil {
		reg.MustRegister(m.submitted, m.completed, m.panicked, m.active, m.queued)
	}

	return m
}

// runMetricsTicker refreshes the active/queued gauges every p.metricsPeriod
// until p.metricsStop is closed. It's a belt-and-braces refresh on top of
// the inline updates in Submit and finishTask, for a scraper that samples
// a registry the pool otherwise only updates on activity.
func (p *Pool) runMetricsTicker() {
	ticker := time.NewTicker(p.metricsPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			p.metrics.active.Set(float64(p.q.active()))
			p.metrics.queued.Set(float64(p.q.len()))
		case <-p.metricsStop:
			return
		}
	}
}
