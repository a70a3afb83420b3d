package fleet

import (
	"context"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-records/internal/db"
	"github.com/ukydev/fleet-records/internal/events"
	"github.com/ukydev/fleet-records/internal/models"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrInvalidState    = errors.New("invalid state")
)

// Error carries a caller-facing message and the sentinel it classifies as.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.Kind }

func notFound(msg string) error        { return &Error{Kind: ErrNotFound, Message: msg} }
func invalidArgument(msg string) error { return &Error{Kind: ErrInvalidArgument, Message: msg} }
func invalidState(msg string) error    { return &Error{Kind: ErrInvalidState, Message: msg} }

// Service implements the fleet rules over the record store.
type Service struct {
	records   *db.Records
	publisher events.Publisher
	now       func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithPublisher sets the lifecycle event publisher.
func WithPublisher(p events.Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService returns a Service over records. Events are dropped unless a publisher is set.
func NewService(records *db.Records, opts ...Option) *Service {
	s := &Service{
		records:   records,
		publisher: events.NopPublisher{},
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// publish never fails the operation; the write has already happened.
func (s *Service) publish(ctx context.Context, e events.Event) {
	e.At = s.now().UTC()
	if err := s.publisher.Publish(ctx, e); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"event": e.Name,
			"id":    e.ID,
		}).Warn("Failed to publish lifecycle event")
	}
}

// nextID returns the max existing id + 1, or 1 for an empty collection.
func nextID[T any](items []T, id func(T) int) int {
	highest := 0
	for _, item := range items {
		if v := id(item); v > highest {
			highest = v
		}
	}
	return highest + 1
}

func vehicleIndex(doc *models.Document, id int) int {
	for i := range doc.Vehicles {
		if doc.Vehicles[i].ID == id {
			return i
		}
	}
	return -1
}
