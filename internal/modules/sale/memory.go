package sale

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/georgemunganga/vendorhub/internal/apperr"
)

type memoryRepository struct {
	mu      sync.RWMutex
	sales   map[uuid.UUID]Sale
	items   map[uuid.UUID][]SaleItem
	byStore map[uuid.UUID][]uuid.UUID
}

// NewMemoryRepository creates an in-process sale repository.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		sales:   make(map[uuid.UUID]Sale),
		items:   make(map[uuid.UUID][]SaleItem),
		byStore: make(map[uuid.UUID][]uuid.UUID),
	}
}

func (r *memoryRepository) CreateSale(_ context.Context, s *Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sales[s.ID]; ok {
		return fmt.Errorf("sale %s: %w", s.ID, apperr.ErrConflict)
	}
	head := *s
	head.Items = nil
	items := make([]SaleItem, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, *it)
	}
	r.sales[s.ID] = head
	r.items[s.ID] = items
	r.byStore[s.StoreID] = append(r.byStore[s.StoreID], s.ID)
	return nil
}

func (r *memoryRepository) GetSaleByID(_ context.Context, id uuid.UUID) (*Sale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sales[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	for _, it := range r.items[id] {
		it := it
		s.Items = append(s.Items, &it)
	}
	return &s, nil
}

func (r *memoryRepository) ListSalesSince(_ context.Context, storeID uuid.UUID, since time.Time) ([]*Sale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Sale, 0)
	for _, id := range r.byStore[storeID] {
		s := r.sales[id]
		if s.CreatedAt.Before(since) {
			continue
		}
		out = append(out, &s)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}
