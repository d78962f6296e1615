package sale

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/georgemunganga/vendorhub/internal/apperr"
	"github.com/georgemunganga/vendorhub/internal/events"
	"github.com/georgemunganga/vendorhub/internal/logging"
	"github.com/georgemunganga/vendorhub/internal/modules/product"
	"github.com/georgemunganga/vendorhub/internal/modules/store"
	"github.com/georgemunganga/vendorhub/internal/validation"
)

// DefaultWindowDays is used by GetDailySalesMetrics when no window is given.
const DefaultWindowDays = 30

// Service defines sale recording and analytics.
type Service interface {
	RecordSale(ctx context.Context, storeID, requesterVendorID uuid.UUID, lines []SaleLine) (*Sale, error)
	GetSale(ctx context.Context, saleID, requesterVendorID uuid.UUID) (*Sale, error)
	GetDailySalesMetrics(ctx context.Context, storeID, requesterVendorID uuid.UUID, windowDays int) ([]DailyMetric, error)
	GetTodaysSalesMetrics(ctx context.Context, storeID, requesterVendorID uuid.UUID) (*TodayMetrics, error)
	GetTotalRevenue(ctx context.Context, storeID, requesterVendorID uuid.UUID) (float64, error)
}

// Stores is the ownership check sales depend on.
type Stores interface {
	OwnedStore(ctx context.Context, storeID, vendorID uuid.UUID) (*store.Store, error)
}

// Products resolves the products named on sale lines.
type Products interface {
	GetProduct(ctx context.Context, productID uuid.UUID) (*product.VendorProduct, error)
}

type service struct {
	repo     Repository
	stores   Stores
	products Products
	events   events.Publisher
	now      func() time.Time
}

// NewService creates a new sale service. A nil publisher disables events.
func NewService(repo Repository, stores Stores, products Products, publisher events.Publisher) Service {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &service{
		repo:     repo,
		stores:   stores,
		products: products,
		events:   publisher,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) RecordSale(ctx context.Context, storeID, requesterVendorID uuid.UUID, lines []SaleLine) (*Sale, error) {
	if err := validation.Struct(RecordSaleRequest{Items: lines}); err != nil {
		return nil, err
	}
	if _, err := s.stores.OwnedStore(ctx, storeID, requesterVendorID); err != nil {
		return nil, err
	}
	if err := s.checkProducts(ctx, storeID, lines); err != nil {
		return nil, err
	}

	sale := &Sale{
		ID:        uuid.New(),
		StoreID:   storeID,
		Status:    StatusCompleted,
		CreatedAt: s.now(),
	}
	for _, line := range lines {
		subtotal := decimal.NewFromFloat(line.UnitPrice).Mul(decimal.NewFromInt(int64(line.Quantity)))
		sale.ItemsCount += line.Quantity
		sale.Items = append(sale.Items, &SaleItem{
			ID:              uuid.New(),
			SaleID:          sale.ID,
			VendorProductID: line.VendorProductID,
			Quantity:        line.Quantity,
			UnitPrice:       line.UnitPrice,
			Subtotal:        subtotal.InexactFloat64(),
		})
		// total_amount is the sum of the reported subtotals
		sale.TotalAmount += sale.Items[len(sale.Items)-1].Subtotal
	}

	if err := s.repo.CreateSale(ctx, sale); err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Info("sale recorded", "sale_id", sale.ID, "store_id", storeID, "total", sale.TotalAmount)
	events.Emit(ctx, s.events, events.TopicSales, storeID.String(), events.SaleEvent{
		Type:        "sale_recorded",
		SaleID:      sale.ID.String(),
		StoreID:     storeID.String(),
		TotalAmount: sale.TotalAmount,
		ItemsCount:  sale.ItemsCount,
		OccurredAt:  sale.CreatedAt,
	})
	return sale, nil
}

// checkProducts verifies every line names a product listed in the store.
func (s *service) checkProducts(ctx context.Context, storeID uuid.UUID, lines []SaleLine) error {
	verr := &apperr.ValidationError{}
	for i, line := range lines {
		p, err := s.products.GetProduct(ctx, line.VendorProductID)
		if err != nil && !errors.Is(err, apperr.ErrNotFound) {
			return err
		}
		if p == nil || p.StoreID != storeID {
			verr.Add(fmt.Sprintf("items[%d].vendor_product_id", i), "is not a product of this store")
		}
	}
	if !verr.Empty() {
		return verr
	}
	return nil
}

func (s *service) GetSale(ctx context.Context, saleID, requesterVendorID uuid.UUID) (*Sale, error) {
	sale, err := s.repo.GetSaleByID(ctx, saleID)
	if err != nil {
		return nil, fmt.Errorf("sale %s: %w", saleID, err)
	}
	if _, err := s.stores.OwnedStore(ctx, sale.StoreID, requesterVendorID); err != nil {
		return nil, err
	}
	return sale, nil
}

func (s *service) GetDailySalesMetrics(ctx context.Context, storeID, requesterVendorID uuid.UUID, windowDays int) ([]DailyMetric, error) {
	if _, err := s.stores.OwnedStore(ctx, storeID, requesterVendorID); err != nil {
		return nil, err
	}
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	sales, err := s.repo.ListSalesSince(ctx, storeID, s.now().AddDate(0, 0, -windowDays))
	if err != nil {
		return nil, err
	}

	type bucket struct {
		revenue decimal.Decimal
		orders  int
		items   int
	}
	days := make(map[string]*bucket)
	for _, sale := range sales {
		key := sale.CreatedAt.UTC().Format("2006-01-02")
		b, ok := days[key]
		if !ok {
			b = &bucket{revenue: decimal.Zero}
			days[key] = b
		}
		b.revenue = b.revenue.Add(decimal.NewFromFloat(sale.TotalAmount))
		b.orders++
		b.items += sale.ItemsCount
	}

	out := make([]DailyMetric, 0, len(days))
	for day, b := range days {
		out = append(out, DailyMetric{
			Date:    day,
			Revenue: b.revenue.InexactFloat64(),
			Orders:  b.orders,
			Items:   b.items,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (s *service) GetTodaysSalesMetrics(ctx context.Context, storeID, requesterVendorID uuid.UUID) (*TodayMetrics, error) {
	if _, err := s.stores.OwnedStore(ctx, storeID, requesterVendorID); err != nil {
		return nil, err
	}
	now := s.now().UTC()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	sales, err := s.repo.ListSalesSince(ctx, storeID, startOfDay)
	if err != nil {
		return nil, err
	}

	total, count := sumCompleted(sales)
	metrics := &TodayMetrics{TotalSales: total.InexactFloat64(), OrderCount: count}
	if count > 0 {
		metrics.AverageOrderValue = total.Div(decimal.NewFromInt(int64(count))).InexactFloat64()
	}
	return metrics, nil
}

func (s *service) GetTotalRevenue(ctx context.Context, storeID, requesterVendorID uuid.UUID) (float64, error) {
	if _, err := s.stores.OwnedStore(ctx, storeID, requesterVendorID); err != nil {
		return 0, err
	}
	sales, err := s.repo.ListSalesSince(ctx, storeID, time.Time{})
	if err != nil {
		return 0, err
	}
	total, _ := sumCompleted(sales)
	return total.InexactFloat64(), nil
}

func sumCompleted(sales []*Sale) (decimal.Decimal, int) {
	total := decimal.Zero
	count := 0
	for _, sale := range sales {
		if sale.Status != StatusCompleted {
			continue
		}
		total = total.Add(decimal.NewFromFloat(sale.TotalAmount))
		count++
	}
	return total, count
}
