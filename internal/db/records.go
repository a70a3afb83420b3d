package db

import (
	"context"
	"errors"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-records/internal/models"
)

// Records serializes every document operation through one mutex and applies
// the store fault policy: read faults degrade to an empty document, write
// faults are logged and swallowed unless strict is set.
type Records struct {
	store  Store
	strict bool
	mu     sync.Mutex
}

// NewRecords wraps store. With strict, write faults reach the caller.
func NewRecords(store Store, strict bool) *Records {
	return &Records{store: store, strict: strict}
}

// View loads the document and passes it to fn. Nothing is saved.
func (r *Records) View(ctx context.Context, fn func(doc *models.Document) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, _ := r.load(ctx)
	return fn(doc)
}

// Update loads the document, lets fn mutate it and saves it when fn succeeds.
// A document that failed to load is never saved, so unreadable data is not
// overwritten by an empty one.
func (r *Records) Update(ctx context.Context, fn func(doc *models.Document) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, loaded := r.load(ctx)
	if err := fn(doc); err != nil {
		return err
	}

	if !loaded {
		log.Warn("Skipping save: record store could not be loaded")
		if r.strict {
			return fmt.Errorf("%w: mutation discarded", ErrStoreRead)
		}
		return nil
	}

	doc.Normalize()
	if err := r.store.Save(ctx, doc); err != nil {
		log.WithError(err).Error("Failed to save record store")
		if !r.strict {
			return nil
		}
		if !errors.Is(err, ErrStoreWrite) {
			err = fmt.Errorf("%w: %w", ErrStoreWrite, err)
		}
		return err
	}
	return nil
}

// Snapshot returns the current document, failing on any read fault.
func (r *Records) Snapshot(ctx context.Context) (*models.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	doc.Normalize()
	return doc, nil
}

// Close releases the underlying store.
func (r *Records) Close() error {
	return r.store.Close()
}

func (r *Records) load(ctx context.Context) (*models.Document, bool) {
	doc, err := r.store.Load(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to load record store, using an empty document")
		return models.NewDocument(), false
	}
	if doc == nil {
		return models.NewDocument(), true
	}
	doc.Normalize()
	return doc, true
}
