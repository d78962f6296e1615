package product

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
	mu       sync.RWMutex
	products map[uuid.UUID]VendorProduct
	seq      map[uuid.UUID]int
	next     int
}

// NewMemoryRepository creates an in-process vendor product repository.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		products: make(map[uuid.UUID]VendorProduct),
		seq:      make(map[uuid.UUID]int),
	}
}

func (r *memoryRepository) CreateProduct(_ context.Context, p *VendorProduct) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[p.ID]; ok {
		return fmt.Errorf("vendor product %s: %w", p.ID, apperr.ErrConflict)
	}
	r.products[p.ID] = *p
	r.seq[p.ID] = r.next
	r.next++
	return nil
}

func (r *memoryRepository) GetProductByID(_ context.Context, id uuid.UUID) (*VendorProduct, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return &p, nil
}

func (r *memoryRepository) ListProductsByStore(_ context.Context, storeID uuid.UUID) ([]*VendorProduct, error) {
	return r.filter(func(p *VendorProduct) bool { return p.StoreID == storeID }), nil
}

func (r *memoryRepository) ListProductsByStatus(_ context.Context, status ApprovalStatus) ([]*VendorProduct, error) {
	return r.filter(func(p *VendorProduct) bool { return p.ApprovalStatus == status }), nil
}

func (r *memoryRepository) ListLowStock(_ context.Context, storeID uuid.UUID) ([]*VendorProduct, error) {
	return r.filter(func(p *VendorProduct) bool {
		return p.StoreID == storeID && p.StockCount <= p.MinStockLevel
	}), nil
}

func (r *memoryRepository) filter(keep func(*VendorProduct) bool) []*VendorProduct {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*VendorProduct, 0)
	for _, p := range r.products {
		p := p
		if keep(&p) {
			out = append(out, &p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return r.seq[out[i].ID] < r.seq[out[j].ID] })
	return out
}

func (r *memoryRepository) UpdateProduct(_ context.Context, p *VendorProduct) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.products[p.ID]
	if !ok {
		return apperr.ErrNotFound
	}
	stored.Name = p.Name
	stored.Description = p.Description
	stored.ImageURL = p.ImageURL
	stored.LocalPrice = p.LocalPrice
	stored.CostPrice = p.CostPrice
	stored.StockCount = p.StockCount
	stored.MinStockLevel = p.MinStockLevel
	stored.UpdatedAt = p.UpdatedAt
	r.products[p.ID] = stored
	*p = stored
	return nil
}

func (r *memoryRepository) DeleteProduct(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(r.products, id)
	delete(r.seq, id)
	return nil
}

func (r *memoryRepository) TransitionStatus(_ context.Context, id uuid.UUID, from, to ApprovalStatus, notes *string, at time.Time) (*VendorProduct, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	if p.ApprovalStatus != from {
		return nil, fmt.Errorf("%w: product is %s", apperr.ErrInvalidTransition, p.ApprovalStatus)
	}
	p.ApprovalStatus = to
	p.AdminNotes = notes
	p.UpdatedAt = at
	r.products[id] = p
	return &p, nil
}
