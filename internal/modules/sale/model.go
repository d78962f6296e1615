package sale

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the state of a sale.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Sale is one checkout at a store. TotalAmount and ItemsCount are derived from Items.
type Sale struct {
	ID          uuid.UUID   `json:"id"`
	StoreID     uuid.UUID   `json:"store_id"`
	TotalAmount float64     `json:"total_amount"`
	ItemsCount  int         `json:"items_count"`
	Status      Status      `json:"status"`
	Items       []*SaleItem `json:"items,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}

// SaleItem is a single line of a sale.
type SaleItem struct {
	ID              uuid.UUID `json:"id"`
	SaleID          uuid.UUID `json:"sale_id"`
	VendorProductID uuid.UUID `json:"vendor_product_id"`
	Quantity        int       `json:"quantity"`
	UnitPrice       float64   `json:"unit_price"`
	Subtotal        float64   `json:"subtotal"`
}

// SaleLine is what the caller sells: a product, how many and at what price.
type SaleLine struct {
	VendorProductID uuid.UUID `json:"vendor_product_id" validate:"required"`
	Quantity        int       `json:"quantity" validate:"gt=0"`
	UnitPrice       float64   `json:"unit_price" validate:"finite,gt=0"`
}

// RecordSaleRequest is the payload for recording a sale.
type RecordSaleRequest struct {
	Items []SaleLine `json:"items" validate:"required,min=1,dive"`
}

// DailyMetric aggregates the sales of one UTC calendar day.
type DailyMetric struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
	Items   int     `json:"items"`
}

// TodayMetrics summarises completed sales since the start of the UTC day.
type TodayMetrics struct {
	TotalSales        float64 `json:"total_sales"`
	OrderCount        int     `json:"order_count"`
	AverageOrderValue float64 `json:"average_order_value"`
}
