package events

import (
	"context"
	"errors"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	defaultQueueSize      = 256
	defaultPublishTimeout = 2 * time.Second
)

var (
	ErrQueueFull = errors.New("event queue full")
	ErrClosed    = errors.New("publisher closed")
)

// AsyncPublisher queues events and delivers them from a single goroutine,
// so a slow broker never holds up the caller. Delivery order is preserved.
type AsyncPublisher struct {
	next    Publisher
	timeout time.Duration
	queue   chan Event
	done    chan struct{}

	mu     sync.RWMutex
	closed bool
}

// NewAsyncPublisher starts the delivery goroutine. size and timeout fall back
// to defaults when not positive.
func NewAsyncPublisher(next Publisher, size int, timeout time.Duration) *AsyncPublisher {
	if size <= 0 {
		size = defaultQueueSize
	}
	if timeout <= 0 {
		timeout = defaultPublishTimeout
	}
	p := &AsyncPublisher{
		next:    next,
		timeout: timeout,
		queue:   make(chan Event, size),
		done:    make(chan struct{}),
	}
	go p.loop()
	return p
}

// Publish enqueues e without waiting for delivery.
func (p *AsyncPublisher) Publish(_ context.Context, e Event) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrClosed
	}
	select {
	case p.queue <- e:
		return nil
	default:
		return ErrQueueFull
	}
}

func (p *AsyncPublisher) loop() {
	defer close(p.done)
	for e := range p.queue {
		ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
		if err := p.next.Publish(ctx, e); err != nil {
			log.WithError(err).WithFields(log.Fields{
				"event": e.Name,
				"id":    e.ID,
			}).Warn("Failed to deliver lifecycle event")
		}
		cancel()
	}
}

// Close drains the queue, then closes the wrapped publisher.
func (p *AsyncPublisher) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.queue)
	p.mu.Unlock()

	<-p.done
	p.next.Close()
}
