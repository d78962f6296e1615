package catalog

import (
	"time"

	"github.com/google/uuid"
)

// GlobalProduct is an entry in the shared product directory. Vendors copy
// entries into their stores; nobody owns the entry itself.
type GlobalProduct struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	CategoryID  uuid.UUID `json:"category_id"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	SKU         string    `json:"sku"`
	Barcode     string    `json:"barcode"`
	IsVerified  bool      `json:"is_verified"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateGlobalProductRequest holds the data for adding a directory entry.
type CreateGlobalProductRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	CategoryID  string `json:"category_id" validate:"required,uuid"`
	Description string `json:"description" validate:"max=2000"`
	ImageURL    string `json:"image_url" validate:"omitempty,url"`
	SKU         string `json:"sku" validate:"max=64"`
	Barcode     string `json:"barcode" validate:"max=64"`
}
