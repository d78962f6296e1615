package sale

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for sale storage.
type Repository interface {
	// CreateSale stores the sale together with its items.
	CreateSale(ctx context.Context, s *Sale) error
	// GetSaleByID returns the sale with its items.
	GetSaleByID(ctx context.Context, id uuid.UUID) (*Sale, error)
	// ListSalesSince returns the store's sales created at or after since,
	// oldest first. Items are not loaded.
	ListSalesSince(ctx context.Context, storeID uuid.UUID, since time.Time) ([]*Sale, error)
}
