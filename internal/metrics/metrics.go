// Package metrics exposes frame loop statistics as Prometheus metrics.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/litescript/ls-orrery/internal/state"
)

const namespace = "orrery"

// Collector holds the orrery's metrics on a private registry.
type Collector struct {
	registry *prometheus.Registry

	framesTotal    prometheus.Counter
	stepDuration   prometheus.Histogram
	trailResizes   prometheus.Counter
	controlChanges *prometheus.CounterVec
}

// NewCollector creates the collectors. When mgr is non-nil, gauges reading
// the latest frame statistics are registered as well.
func NewCollector(mgr *state.Manager) *Collector {
	m := &Collector{
		registry: prometheus.NewRegistry(),
		framesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_total",
			Help:      "Simulation steps taken",
		}),
		stepDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "step_duration_seconds",
			Help:      "Time spent advancing all bodies by one step",
			Buckets:   prometheus.ExponentialBuckets(5e-6, 2, 12),
		}),
		trailResizes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trail_resizes_total",
			Help:      "Comet trail buffers reallocated after a trail length change",
		}),
		controlChanges: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "control_changes_total",
				Help:      "Control panel changes",
			},
			[]string{"control"},
		),
	}

	m.registry.MustRegister(m.framesTotal, m.stepDuration, m.trailResizes, m.controlChanges)

	if mgr != nil {
		m.registry.MustRegister(
			prometheus.NewGaugeFunc(prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "steps_per_second",
				Help:      "Smoothed simulation step rate",
			}, mgr.StepsPerSecond),
			prometheus.NewGaugeFunc(prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "visible_bodies",
				Help:      "Bodies whose mesh is currently shown",
			}, func() float64 { return float64(mgr.VisibleBodies()) }),
			prometheus.NewGaugeFunc(prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "trail_points",
				Help:      "Recorded comet trail samples",
			}, func() float64 { return float64(mgr.TrailPoints()) }),
		)
	}
	return m
}

// Registry returns the private registry.
func (m *Collector) Registry() *prometheus.Registry { return m.registry }

// RecordSteps records n steps that together took d.
func (m *Collector) RecordSteps(n int, d time.Duration) {
	if n <= 0 {
		return
	}
	m.framesTotal.Add(float64(n))
	m.stepDuration.Observe(d.Seconds() / float64(n))
}

// RecordControlChange counts a control panel change.
func (m *Collector) RecordControlChange(control string) {
	m.controlChanges.WithLabelValues(control).Inc()
}

// RecordTrailResizes counts reallocated trail buffers.
func (m *Collector) RecordTrailResizes(n int) {
	if n > 0 {
		m.trailResizes.Add(float64(n))
	}
}

// Handler returns the /metrics HTTP handler for the private registry.
func (m *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve runs the metrics endpoint on addr until ctx is cancelled.
func (m *Collector) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
