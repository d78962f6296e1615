package product

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/georgemunganga/vendorhub/internal/apperr"
	"github.com/georgemunganga/vendorhub/internal/events"
	"github.com/georgemunganga/vendorhub/internal/logging"
	"github.com/georgemunganga/vendorhub/internal/modules/catalog"
	"github.com/georgemunganga/vendorhub/internal/modules/store"
	"github.com/georgemunganga/vendorhub/internal/modules/user"
	"github.com/georgemunganga/vendorhub/internal/validation"
)

// Service defines vendor product and review business logic.
type Service interface {
	AddProductToStore(ctx context.Context, storeID, requesterVendorID uuid.UUID, req CreateProductRequest) (*VendorProduct, error)
	GetStoreProducts(ctx context.Context, storeID, requesterVendorID uuid.UUID) ([]*StoreProduct, error)
	GetLowStockProducts(ctx context.Context, storeID, requesterVendorID uuid.UUID) ([]*VendorProduct, error)
	UpdateVendorProduct(ctx context.Context, productID, requesterVendorID uuid.UUID, req UpdateProductRequest) (*VendorProduct, error)
	DeleteVendorProduct(ctx context.Context, productID, requesterVendorID uuid.UUID) error

	// Review operations, admin only.
	GetPendingProductReviews(ctx context.Context, requesterRole user.Role) ([]*PendingReview, error)
	ApproveProduct(ctx context.Context, productID uuid.UUID, requesterRole user.Role) (*VendorProduct, error)
	RejectProduct(ctx context.Context, productID uuid.UUID, notes string, requesterRole user.Role) (*VendorProduct, error)

	// GetProduct looks a product up without an ownership check.
	GetProduct(ctx context.Context, productID uuid.UUID) (*VendorProduct, error)
}

// Stores is the part of the store service products depend on.
type Stores interface {
	GetStore(ctx context.Context, id uuid.UUID) (*store.Store, error)
	OwnedStore(ctx context.Context, storeID, vendorID uuid.UUID) (*store.Store, error)
}

// Directory is the part of the catalog service products depend on.
type Directory interface {
	GetGlobalProduct(ctx context.Context, id uuid.UUID) (*catalog.GlobalProduct, error)
}

// validTransitions defines the review state machine. Products created from
// the directory start approved and never enter it.
var validTransitions = map[ApprovalStatus][]ApprovalStatus{
	StatusPendingReview: {StatusApproved, StatusRejected},
	StatusApproved:      {},
	StatusRejected:      {},
}

type service struct {
	repo      Repository
	stores    Stores
	directory Directory
	events    events.Publisher
	now       func() time.Time
}

// NewService creates a new product service. A nil publisher disables events.
func NewService(repo Repository, stores Stores, directory Directory, publisher events.Publisher) Service {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &service{
		repo:      repo,
		stores:    stores,
		directory: directory,
		events:    publisher,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) AddProductToStore(ctx context.Context, storeID, requesterVendorID uuid.UUID, req CreateProductRequest) (*VendorProduct, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if _, err := s.stores.OwnedStore(ctx, storeID, requesterVendorID); err != nil {
		return nil, err
	}

	status := StatusPendingReview
	if req.GlobalProductID != nil {
		if _, err := s.directory.GetGlobalProduct(ctx, *req.GlobalProductID); err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				return nil, apperr.NewValidation("global_product_id", "does not match a directory product")
			}
			return nil, err
		}
		status = StatusApproved
	}

	minStock := 0
	if req.MinStockLevel != nil {
		minStock = *req.MinStockLevel
	}
	now := s.now()
	p := &VendorProduct{
		ID:              uuid.New(),
		StoreID:         storeID,
		GlobalProductID: req.GlobalProductID,
		Name:            req.Name,
		Description:     req.Description,
		ImageURL:        req.ImageURL,
		LocalPrice:      req.LocalPrice,
		CostPrice:       req.CostPrice,
		StockCount:      req.StockCount,
		MinStockLevel:   minStock,
		ApprovalStatus:  status,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.repo.CreateProduct(ctx, p); err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Info("product added", "product_id", p.ID, "store_id", storeID, "approval_status", status)
	s.emit(ctx, "product_submitted", p)
	return p, nil
}

func (s *service) GetStoreProducts(ctx context.Context, storeID, requesterVendorID uuid.UUID) ([]*StoreProduct, error) {
	if _, err := s.stores.OwnedStore(ctx, storeID, requesterVendorID); err != nil {
		return nil, err
	}
	products, err := s.repo.ListProductsByStore(ctx, storeID)
	if err != nil {
		return nil, err
	}

	lookup := s.globalLookup()
	out := make([]*StoreProduct, 0, len(products))
	for _, p := range products {
		gp, err := lookup(ctx, p.GlobalProductID)
		if err != nil {
			return nil, err
		}
		out = append(out, &StoreProduct{VendorProduct: *p, GlobalProduct: gp})
	}
	return out, nil
}

func (s *service) GetLowStockProducts(ctx context.Context, storeID, requesterVendorID uuid.UUID) ([]*VendorProduct, error) {
	if _, err := s.stores.OwnedStore(ctx, storeID, requesterVendorID); err != nil {
		return nil, err
	}
	return s.repo.ListLowStock(ctx, storeID)
}

func (s *service) UpdateVendorProduct(ctx context.Context, productID, requesterVendorID uuid.UUID, req UpdateProductRequest) (*VendorProduct, error) {
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		req.Name = &name
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	p, err := s.ownedProduct(ctx, productID, requesterVendorID)
	if err != nil {
		return nil, err
	}
	req.apply(p)
	p.UpdatedAt = s.now()
	if err := s.repo.UpdateProduct(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) DeleteVendorProduct(ctx context.Context, productID, requesterVendorID uuid.UUID) error {
	if _, err := s.ownedProduct(ctx, productID, requesterVendorID); err != nil {
		return err
	}
	if err := s.repo.DeleteProduct(ctx, productID); err != nil {
		return err
	}
	logging.FromContext(ctx).Info("product deleted", "product_id", productID)
	return nil
}

func (s *service) ownedProduct(ctx context.Context, productID, vendorID uuid.UUID) (*VendorProduct, error) {
	p, err := s.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if _, err := s.stores.OwnedStore(ctx, p.StoreID, vendorID); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) GetProduct(ctx context.Context, productID uuid.UUID) (*VendorProduct, error) {
	p, err := s.repo.GetProductByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("vendor product %s: %w", productID, err)
	}
	return p, nil
}

func (s *service) GetPendingProductReviews(ctx context.Context, requesterRole user.Role) ([]*PendingReview, error) {
	if err := requireAdmin(ctx, requesterRole); err != nil {
		return nil, err
	}
	products, err := s.repo.ListProductsByStatus(ctx, StatusPendingReview)
	if err != nil {
		return nil, err
	}

	lookup := s.globalLookup()
	stores := make(map[uuid.UUID]*store.Store)
	out := make([]*PendingReview, 0, len(products))
	for _, p := range products {
		st, ok := stores[p.StoreID]
		if !ok {
			st, err = s.stores.GetStore(ctx, p.StoreID)
			if err != nil && !errors.Is(err, apperr.ErrNotFound) {
				return nil, err
			}
			stores[p.StoreID] = st
		}
		gp, err := lookup(ctx, p.GlobalProductID)
		if err != nil {
			return nil, err
		}
		out = append(out, &PendingReview{VendorProduct: *p, Store: st, GlobalProduct: gp})
	}
	return out, nil
}

func (s *service) ApproveProduct(ctx context.Context, productID uuid.UUID, requesterRole user.Role) (*VendorProduct, error) {
	if err := requireAdmin(ctx, requesterRole); err != nil {
		return nil, err
	}
	p, err := s.transition(ctx, productID, StatusApproved, nil)
	if err != nil {
		return nil, err
	}
	s.emit(ctx, "product_approved", p)
	return p, nil
}

func (s *service) RejectProduct(ctx context.Context, productID uuid.UUID, notes string, requesterRole user.Role) (*VendorProduct, error) {
	if err := requireAdmin(ctx, requesterRole); err != nil {
		return nil, err
	}
	p, err := s.transition(ctx, productID, StatusRejected, &notes)
	if err != nil {
		return nil, err
	}
	s.emit(ctx, "product_rejected", p)
	return p, nil
}

func (s *service) transition(ctx context.Context, productID uuid.UUID, to ApprovalStatus, notes *string) (*VendorProduct, error) {
	p, err := s.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	allowed := validTransitions[p.ApprovalStatus]
	valid := false
	for _, st := range allowed {
		if st == to {
			valid = true
			break
		}
	}
	if !valid {
		return nil, fmt.Errorf("%w: cannot move product from %s to %s", apperr.ErrInvalidTransition, p.ApprovalStatus, to)
	}

	updated, err := s.repo.TransitionStatus(ctx, productID, p.ApprovalStatus, to, notes, s.now())
	if err != nil {
		return nil, err
	}
	logging.FromContext(ctx).Info("product reviewed", "product_id", productID, "approval_status", to)
	return updated, nil
}

// globalLookup resolves directory entries, caching them for one call. A
// reference to a missing entry resolves to nil.
func (s *service) globalLookup() func(context.Context, *uuid.UUID) (*catalog.GlobalProduct, error) {
	cache := make(map[uuid.UUID]*catalog.GlobalProduct)
	return func(ctx context.Context, id *uuid.UUID) (*catalog.GlobalProduct, error) {
		if id == nil {
			return nil, nil
		}
		if gp, ok := cache[*id]; ok {
			return gp, nil
		}
		gp, err := s.directory.GetGlobalProduct(ctx, *id)
		if err != nil && !errors.Is(err, apperr.ErrNotFound) {
			return nil, err
		}
		cache[*id] = gp
		return gp, nil
	}
}

func (s *service) emit(ctx context.Context, eventType string, p *VendorProduct) {
	events.Emit(ctx, s.events, events.TopicProducts, p.ID.String(), events.ProductEvent{
		Type:       eventType,
		ProductID:  p.ID.String(),
		StoreID:    p.StoreID.String(),
		Status:     string(p.ApprovalStatus),
		Notes:      p.AdminNotes,
		OccurredAt: s.now(),
	})
}

func requireAdmin(ctx context.Context, role user.Role) error {
	if role != user.RoleAdmin {
		logging.FromContext(ctx).Warn("admin operation denied", "role", role)
		return apperr.ErrForbidden
	}
	return nil
}
