package db

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/ukydev/fleet-records/internal/models"
)

// MemoryStore keeps the encoded document in process memory.
// Every Load decodes a fresh copy, so callers never share state.
type MemoryStore struct {
	mu   sync.Mutex
	data []byte
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(ctx context.Context) (*models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return models.NewDocument(), nil
	}
	var doc models.Document
	if err := json.Unmarshal(s.data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreRead, err)
	}
	doc.Normalize()
	return &doc, nil
}

func (s *MemoryStore) Save(ctx context.Context, doc *models.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStoreWrite, err)
	}
	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Close() error { return nil }
