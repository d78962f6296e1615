package product

import (
	"time"

	"github.com/google/uuid"

	"github.com/georgemunganga/vendorhub/internal/modules/catalog"
	"github.com/georgemunganga/vendorhub/internal/modules/store"
)

// ApprovalStatus is the review state of a vendor product.
type ApprovalStatus string

const (
	StatusPendingReview ApprovalStatus = "pending_review"
	StatusApproved      ApprovalStatus = "approved"
	StatusRejected      ApprovalStatus = "rejected"
)

// VendorProduct is a product listed in a store with the vendor's own price and stock.
type VendorProduct struct {
	ID              uuid.UUID      `json:"id"`
	StoreID         uuid.UUID      `json:"store_id"`
	GlobalProductID *uuid.UUID     `json:"global_product_id"`
	Name            string         `json:"name"`
	Description     string         `json:"description"`
	ImageURL        string         `json:"image_url"`
	LocalPrice      float64        `json:"local_price"`
	CostPrice       *float64       `json:"cost_price"`
	StockCount      int            `json:"stock_count"`
	MinStockLevel   int            `json:"min_stock_level"`
	ApprovalStatus  ApprovalStatus `json:"approval_status"`
	AdminNotes      *string        `json:"admin_notes"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// StoreProduct is a vendor product with the directory entry it was copied from, if any.
type StoreProduct struct {
	VendorProduct
	GlobalProduct *catalog.GlobalProduct `json:"global_product"`
}

// PendingReview is a product awaiting an admin decision, with its store and directory entry.
type PendingReview struct {
	VendorProduct
	Store         *store.Store           `json:"store"`
	GlobalProduct *catalog.GlobalProduct `json:"global_product"`
}

// CreateProductRequest is the input for AddProductToStore. Supplying
// GlobalProductID marks the product as copied from the directory.
type CreateProductRequest struct {
	GlobalProductID *uuid.UUID `json:"global_product_id"`
	Name            string     `json:"name" validate:"required,max=200"`
	Description     string     `json:"description" validate:"max=2000"`
	ImageURL        string     `json:"image_url" validate:"omitempty,url"`
	LocalPrice      float64    `json:"local_price" validate:"finite,gt=0"`
	CostPrice       *float64   `json:"cost_price" validate:"omitnil,finite,gt=0"`
	StockCount      int        `json:"stock_count" validate:"gte=0"`
	MinStockLevel   *int       `json:"min_stock_level" validate:"omitnil,gte=0"`
}

// UpdateProductRequest lists the fields a vendor may change. The approval
// state and admin notes are not among them.
type UpdateProductRequest struct {
	Name          *string  `json:"name" validate:"omitnil,min=1,max=200"`
	Description   *string  `json:"description" validate:"omitnil,max=2000"`
	ImageURL      *string  `json:"image_url" validate:"omitnil,url"`
	LocalPrice    *float64 `json:"local_price" validate:"omitnil,finite,gt=0"`
	CostPrice     *float64 `json:"cost_price" validate:"omitnil,finite,gt=0"`
	StockCount    *int     `json:"stock_count" validate:"omitnil,gte=0"`
	MinStockLevel *int     `json:"min_stock_level" validate:"omitnil,gte=0"`
}

func (req UpdateProductRequest) apply(p *VendorProduct) {
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.ImageURL != nil {
		p.ImageURL = *req.ImageURL
	}
	if req.LocalPrice != nil {
		p.LocalPrice = *req.LocalPrice
	}
	if req.CostPrice != nil {
		v := *req.CostPrice
		p.CostPrice = &v
	}
	if req.StockCount != nil {
		p.StockCount = *req.StockCount
	}
	if req.MinStockLevel != nil {
		p.MinStockLevel = *req.MinStockLevel
	}
}

// RejectRequest carries the admin's notes. Empty notes are allowed.
type RejectRequest struct {
	Notes string `json:"notes"`
}
