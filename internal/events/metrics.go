package events

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
)

// CountingPublisher counts every event by name before handing it on.
type CountingPublisher struct {
	next   Publisher
	events *prometheus.CounterVec
	failed *prometheus.CounterVec
}

// NewCountingPublisher registers the lifecycle counters on reg and wraps next.
func NewCountingPublisher(next Publisher, reg prometheus.Registerer) *CountingPublisher {
	p := &CountingPublisher{
		next: next,
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fleet_lifecycle_events_total",
			Help: "Lifecycle transitions recorded by the fleet service.",
		}, []string{"event"}),
		failed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fleet_event_publish_failures_total",
			Help: "Lifecycle events the publisher failed to deliver.",
		}, []string{"event"}),
	}
	reg.MustRegister(p.events, p.failed)
	return p
}

func (p *CountingPublisher) Publish(ctx context.Context, e Event) error {
	p.events.WithLabelValues(e.Name).Inc()
	if err := p.next.Publish(ctx, e); err != nil {
		p.failed.WithLabelValues(e.Name).Inc()
		return err
	}
	return nil
}

func (p *CountingPublisher) Close() { p.next.Close() }
