package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/georgemunganga/vendorhub/internal/apperr"
)

type memoryRepository struct {
	mu       sync.RWMutex
	byID     map[uuid.UUID]Store
	byVendor map[uuid.UUID]uuid.UUID
}

// NewMemoryRepository creates an in-process store repository.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		byID:     make(map[uuid.UUID]Store),
		byVendor: make(map[uuid.UUID]uuid.UUID),
	}
}

func (r *memoryRepository) CreateStore(_ context.Context, store *Store) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byVendor[store.VendorID]; ok {
		return fmt.Errorf("vendor %s already has a store: %w", store.VendorID, apperr.ErrConflict)
	}
	r.byID[store.ID] = *store
	r.byVendor[store.VendorID] = store.ID
	return nil
}

func (r *memoryRepository) GetStoreByID(_ context.Context, id uuid.UUID) (*Store, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byID[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return &s, nil
}

func (r *memoryRepository) GetStoreByVendorID(_ context.Context, vendorID uuid.UUID) (*Store, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byVendor[vendorID]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	s := r.byID[id]
	return &s, nil
}

func (r *memoryRepository) UpdateStore(_ context.Context, store *Store) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[store.ID]; !ok {
		return apperr.ErrNotFound
	}
	r.byID[store.ID] = *store
	return nil
}
