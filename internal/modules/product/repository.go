package product

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for vendor product storage. List methods
// return products in creation order.
type Repository interface {
	CreateProduct(ctx context.Context, p *VendorProduct) error
	GetProductByID(ctx context.Context, id uuid.UUID) (*VendorProduct, error)
	ListProductsByStore(ctx context.Context, storeID uuid.UUID) ([]*VendorProduct, error)
	ListProductsByStatus(ctx context.Context, status ApprovalStatus) ([]*VendorProduct, error)
	// ListLowStock returns the store's products whose stock_count is at or below min_stock_level.
	ListLowStock(ctx context.Context, storeID uuid.UUID) ([]*VendorProduct, error)
	// UpdateProduct writes the vendor-editable fields and updated_at, then
	// refreshes p from the stored row. Approval fields are left untouched.
	UpdateProduct(ctx context.Context, p *VendorProduct) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	// TransitionStatus moves a product from one approval status to another. It
	// returns apperr.ErrNotFound for an unknown id and apperr.ErrInvalidTransition
	// when the product is no longer in status from.
	TransitionStatus(ctx context.Context, id uuid.UUID, from, to ApprovalStatus, notes *string, at time.Time) (*VendorProduct, error)
}
