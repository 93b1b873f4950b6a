// Package prom provides a Prometheus observer plugin for the borrow library.
package prom

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics is a borrow.Observer backed by Prometheus instruments. One
// Metrics may be shared by any number of guards; the live-handles gauge
// then tracks the most recent count reported by any of them.
type Metrics struct {
	guardsCreated  prometheus.Counter
	handlesLive    prometheus.Gauge
	acquiresTotal  prometheus.Counter
	releasesTotal  prometheus.Counter
	teardownsTotal prometheus.Counter
	teardownQueued prometheus.Histogram
	teardownWait   prometheus.Histogram
}

// New builds a Metrics observer and registers its instruments with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		guardsCreated: f.NewCounter(prometheus.CounterOpts{
			Namespace: "borrow",
			Name:      "guards_created_total",
			Help:      "Guards constructed.",
		}),
		handlesLive: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "borrow",
			Name:      "handles_live",
			Help:      "Currently outstanding handles.",
		}),
		acquiresTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: "borrow",
			Name:      "handles_acquired_total",
			Help:      "Handles minted by Guard.Get.",
		}),
		releasesTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: "borrow",
			Name:      "handles_released_total",
			Help:      "Handles released.",
		}),
		teardownsTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: "borrow",
			Name:      "teardowns_total",
			Help:      "Guard teardowns started.",
		}),
		teardownQueued: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "borrow",
			Name:      "teardown_outstanding_handles",
			Help:      "Outstanding handles observed at teardown start.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
		teardownWait: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "borrow",
			Name:      "teardown_wait_seconds",
			Help:      "Time a teardown spent blocked waiting for releases.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

// GuardCreated records guard construction.
func (m *Metrics) GuardCreated() {
	m.guardsCreated.Inc()
}

// HandleAcquired records a minted handle and the resulting live count.
func (m *Metrics) HandleAcquired(live int) {
	m.acquiresTotal.Inc()
	m.handlesLive.Set(float64(live))
}

// HandleReleased records a released handle and the resulting live count.
func (m *Metrics) HandleReleased(live int) {
	m.releasesTotal.Inc()
	m.handlesLive.Set(float64(live))
}

// TeardownStarted records a teardown and how many handles it is waiting on.
func (m *Metrics) TeardownStarted(outstanding int) {
	m.teardownsTotal.Inc()
	m.teardownQueued.Observe(float64(outstanding))
}

// TeardownFinished records how long the teardown blocked.
func (m *Metrics) TeardownFinished(wait time.Duration) {
	m.teardownWait.Observe(wait.Seconds())
}
