package db

import (
	"context"
	"errors"

	"github.com/ukydev/fleet-records/internal/models"
)

var (
	ErrStoreRead  = errors.New("record store read failed")
	ErrStoreWrite = errors.New("record store write failed")
)

// Store defines the whole-document persistence contract.
// Load returns the full document; Save replaces it. There are no partial writes.
type Store interface {
	Load(ctx context.Context) (*models.Document, error)
	Save(ctx context.Context, doc *models.Document) error
	Close() error
}
