// internal/store/memory.go
package store

import (
	"context"
	"sync"

	"franchise-catalog/internal/models"
)

// MemoryStore keeps documents in process. List returns insertion order.
type MemoryStore struct {
	mu    sync.RWMutex
	docs  map[string]FranchiseDocument
	order []string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]FranchiseDocument)}
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*models.Franchise, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	doc, ok := s.docs[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrDocumentNotFound
	}
	return ToEntity(doc)
}

func (s *MemoryStore) Put(ctx context.Context, f *models.Franchise) (*models.Franchise, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	current, exists := s.docs[f.ID()]
	switch {
	case !exists && f.Version() != 0:
		return nil, ErrVersionConflict
	case exists && current.Version != f.Version():
		return nil, ErrVersionConflict
	}

	next := f.WithVersion(f.Version() + 1)
	s.docs[f.ID()] = ToDocument(next)
	if !exists {
		s.order = append(s.order, f.ID())
	}
	return next, nil
}

func (s *MemoryStore) List(ctx context.Context) ([]*models.Franchise, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	docs := make([]FranchiseDocument, 0, len(s.order))
	for _, id := range s.order {
		docs = append(docs, s.docs[id])
	}
	s.mu.RUnlock()

	out := make([]*models.Franchise, 0, len(docs))
	for _, doc := range docs {
		f, err := ToEntity(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}
