package store

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for store data storage.
type Repository interface {
	CreateStore(ctx context.Context, store *Store) error
	GetStoreByID(ctx context.Context, id uuid.UUID) (*Store, error)
	GetStoreByVendorID(ctx context.Context, vendorID uuid.UUID) (*Store, error)
	UpdateStore(ctx context.Context, store *Store) error
}
