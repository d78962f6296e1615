package catalog

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for global product storage.
type Repository interface {
	Create(ctx context.Context, p *GlobalProduct) error
	GetByID(ctx context.Context, id uuid.UUID) (*GlobalProduct, error)
	// Search returns entries whose name, description, sku or barcode contain
	// query, ignoring case, in directory order. An empty query matches all.
	Search(ctx context.Context, query string) ([]*GlobalProduct, error)
}
