package catalog

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/georgemunganga/vendorhub/internal/apperr"
)

type memoryRepo struct {
	mu    sync.RWMutex
	order []uuid.UUID
	byID  map[uuid.UUID]GlobalProduct
}

// NewMemoryRepository creates an in-process directory that keeps insertion order.
func NewMemoryRepository() Repository {
	return &memoryRepo{byID: make(map[uuid.UUID]GlobalProduct)}
}

func (r *memoryRepo) Create(_ context.Context, p *GlobalProduct) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[p.ID]; ok {
		return fmt.Errorf("global product %s: %w", p.ID, apperr.ErrConflict)
	}
	r.byID[p.ID] = *p
	r.order = append(r.order, p.ID)
	return nil
}

func (r *memoryRepo) GetByID(_ context.Context, id uuid.UUID) (*GlobalProduct, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return &p, nil
}

func (r *memoryRepo) Search(_ context.Context, query string) ([]*GlobalProduct, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q := strings.ToLower(query)
	out := make([]*GlobalProduct, 0)
	for _, id := range r.order {
		p := r.byID[id]
		if q == "" || matches(&p, q) {
			out = append(out, &p)
		}
	}
	return out, nil
}

func matches(p *GlobalProduct, lowerQuery string) bool {
	for _, f := range []string{p.Name, p.Description, p.SKU, p.Barcode} {
		if strings.Contains(strings.ToLower(f), lowerQuery) {
			return true
		}
	}
	return false
}
