package sale

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/georgemunganga/vendorhub/internal/apperr"
	"github.com/georgemunganga/vendorhub/internal/events"
	"github.com/georgemunganga/vendorhub/internal/modules/catalog"
	"github.com/georgemunganga/vendorhub/internal/modules/product"
	"github.com/georgemunganga/vendorhub/internal/modules/store"
)

var fixedNow = time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)

type fixture struct {
	svc      *service
	repo     Repository
	events   *events.Recorder
	vendor   uuid.UUID
	storeID  uuid.UUID
	mug, pen uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	stores := store.NewService(store.NewMemoryRepository())
	products := product.NewService(product.NewMemoryRepository(), stores, catalog.NewService(catalog.NewMemoryRepository()), nil)

	vendor := uuid.New()
	st, err := stores.CreateStore(ctx, vendor, store.CreateStoreRequest{Name: "Stationery", ContactEmail: "s@example.com"})
	require.NoError(t, err)
	mug, err := products.AddProductToStore(ctx, st.ID, vendor, product.CreateProductRequest{Name: "Mug", LocalPrice: 10, StockCount: 10})
	require.NoError(t, err)
	pen, err := products.AddProductToStore(ctx, st.ID, vendor, product.CreateProductRequest{Name: "Pen", LocalPrice: 2.5, StockCount: 10})
	require.NoError(t, err)

	repo := NewMemoryRepository()
	rec := &events.Recorder{}
	svc := NewService(repo, stores, products, rec).(*service)
	svc.now = func() time.Time { return fixedNow }

	return &fixture{svc: svc, repo: repo, events: rec, vendor: vendor, storeID: st.ID, mug: mug.ID, pen: pen.ID}
}

// seed stores a sale directly so tests can place it anywhere in time.
func (f *fixture) seed(t *testing.T, at time.Time, total float64, items int, status Status) {
	t.Helper()
	require.NoError(t, f.repo.CreateSale(context.Background(), &Sale{
		ID: uuid.New(), StoreID: f.storeID, TotalAmount: total, ItemsCount: items, Status: status, CreatedAt: at,
	}))
}

func TestRecordSale_Totals(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	sale, err := f.svc.RecordSale(context.Background(), f.storeID, f.vendor, []SaleLine{
		{VendorProductID: f.mug, Quantity: 2, UnitPrice: 10},
		{VendorProductID: f.pen, Quantity: 1, UnitPrice: 5},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, sale.ItemsCount)
	assert.InDelta(t, 25.0, sale.TotalAmount, 1e-9)
	assert.Equal(t, StatusCompleted, sale.Status)
	assert.Equal(t, fixedNow, sale.CreatedAt)
	require.Len(t, sale.Items, 2)
	assert.InDelta(t, 20.0, sale.Items[0].Subtotal, 1e-9)
	assert.InDelta(t, 5.0, sale.Items[1].Subtotal, 1e-9)

	stored, err := f.svc.GetSale(context.Background(), sale.ID, f.vendor)
	require.NoError(t, err)
	assert.Equal(t, sale.TotalAmount, stored.TotalAmount)
	require.Len(t, stored.Items, 2)
	assert.Equal(t, f.mug, stored.Items[0].VendorProductID)

	msgs := f.events.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, events.TopicSales, msgs[0].Topic)
	assert.Equal(t, "sale_recorded", msgs[0].Event.(events.SaleEvent).Type)
}

func TestRecordSale_DecimalPrecision(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	sale, err := f.svc.RecordSale(context.Background(), f.storeID, f.vendor, []SaleLine{
		{VendorProductID: f.mug, Quantity: 3, UnitPrice: 0.1},
		{VendorProductID: f.pen, Quantity: 1, UnitPrice: 0.2},
	})
	require.NoError(t, err)
	assert.Equal(t, 0.3, sale.Items[0].Subtotal)
	assert.InDelta(t, 0.5, sale.TotalAmount, 1e-9)
}

func TestRecordSale_TotalMatchesSubtotals(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	sale, err := f.svc.RecordSale(context.Background(), f.storeID, f.vendor, []SaleLine{
		{VendorProductID: f.mug, Quantity: 1, UnitPrice: 0.1},
		{VendorProductID: f.pen, Quantity: 1, UnitPrice: 0.2},
	})
	require.NoError(t, err)

	var sum float64
	for _, item := range sale.Items {
		sum += item.Subtotal
	}
	assert.Equal(t, sum, sale.TotalAmount)
	assert.InDelta(t, 0.3, sale.TotalAmount, 1e-9)

	stored, err := f.svc.GetSale(context.Background(), sale.ID, f.vendor)
	require.NoError(t, err)
	assert.Equal(t, sum, stored.TotalAmount)
}

func TestRecordSale_Rejects(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.RecordSale(ctx, f.storeID, uuid.New(), []SaleLine{{VendorProductID: f.mug, Quantity: 1, UnitPrice: 1}})
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)

	tests := []struct {
		name  string
		lines []SaleLine
		field string
	}{
		{name: "no lines", lines: nil, field: "items"},
		{name: "zero quantity", lines: []SaleLine{{VendorProductID: f.mug, Quantity: 0, UnitPrice: 1}}, field: "items[0].quantity"},
		{name: "negative price", lines: []SaleLine{{VendorProductID: f.mug, Quantity: 1, UnitPrice: -1}}, field: "items[0].unit_price"},
		{name: "infinite price", lines: []SaleLine{{VendorProductID: f.mug, Quantity: 1, UnitPrice: math.Inf(1)}}, field: "items[0].unit_price"},
		{name: "NaN price", lines: []SaleLine{{VendorProductID: f.mug, Quantity: 1, UnitPrice: math.NaN()}}, field: "items[0].unit_price"},
		{name: "foreign product", lines: []SaleLine{
			{VendorProductID: f.mug, Quantity: 1, UnitPrice: 1},
			{VendorProductID: uuid.New(), Quantity: 1, UnitPrice: 1},
		}, field: "items[1].vendor_product_id"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.RecordSale(ctx, f.storeID, f.vendor, tt.lines)
			v, ok := apperr.AsValidation(err)
			require.True(t, ok, "expected validation error, got %v", err)
			assert.True(t, v.Has(tt.field), "fields: %v", v.Fields)
		})
	}

	all, err := f.repo.ListSalesSince(ctx, f.storeID, time.Time{})
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.Empty(t, f.events.Messages())
}

func TestGetSale_Ownership(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	sale, err := f.svc.RecordSale(ctx, f.storeID, f.vendor, []SaleLine{{VendorProductID: f.mug, Quantity: 1, UnitPrice: 10}})
	require.NoError(t, err)

	_, err = f.svc.GetSale(ctx, sale.ID, uuid.New())
	assert.ErrorIs(t, err, apperr.ErrForbidden)
	_, err = f.svc.GetSale(ctx, uuid.New(), f.vendor)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestGetTodaysSalesMetrics_NoSales(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.seed(t, fixedNow.Add(-24*time.Hour), 50, 1, StatusCompleted)
	f.seed(t, fixedNow.Add(-time.Hour), 70, 1, StatusPending)

	m, err := f.svc.GetTodaysSalesMetrics(context.Background(), f.storeID, f.vendor)
	require.NoError(t, err)
	assert.Equal(t, TodayMetrics{TotalSales: 0, OrderCount: 0, AverageOrderValue: 0}, *m)
}

func TestGetTodaysSalesMetrics(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	midnight := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	f.seed(t, midnight.Add(-time.Second), 1000, 1, StatusCompleted)
	f.seed(t, midnight, 30, 2, StatusCompleted)
	f.seed(t, fixedNow.Add(-time.Hour), 15, 1, StatusCompleted)
	f.seed(t, fixedNow.Add(-time.Minute), 99, 1, StatusCancelled)

	m, err := f.svc.GetTodaysSalesMetrics(context.Background(), f.storeID, f.vendor)
	require.NoError(t, err)
	assert.InDelta(t, 45.0, m.TotalSales, 1e-9)
	assert.Equal(t, 2, m.OrderCount)
	assert.InDelta(t, 22.5, m.AverageOrderValue, 1e-9)
}

func TestGetDailySalesMetrics(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.seed(t, fixedNow.AddDate(0, 0, -40), 500, 5, StatusCompleted)
	f.seed(t, time.Date(2024, 3, 14, 23, 59, 0, 0, time.UTC), 20, 2, StatusCompleted)
	f.seed(t, time.Date(2024, 3, 12, 9, 0, 0, 0, time.UTC), 10, 1, StatusCompleted)
	f.seed(t, time.Date(2024, 3, 12, 18, 0, 0, 0, time.UTC), 5.5, 3, StatusCancelled)
	f.seed(t, time.Date(2024, 3, 15, 1, 0, 0, 0, time.FixedZone("CAT", 2*3600)), 7, 1, StatusCompleted)

	metrics, err := f.svc.GetDailySalesMetrics(context.Background(), f.storeID, f.vendor, 0)
	require.NoError(t, err)
	require.Len(t, metrics, 2)

	assert.Equal(t, "2024-03-12", metrics[0].Date)
	assert.InDelta(t, 15.5, metrics[0].Revenue, 1e-9)
	assert.Equal(t, 2, metrics[0].Orders)
	assert.Equal(t, 4, metrics[0].Items)

	// 01:00 CAT is still the 14th in UTC
	assert.Equal(t, "2024-03-14", metrics[1].Date)
	assert.InDelta(t, 27.0, metrics[1].Revenue, 1e-9)
	assert.Equal(t, 2, metrics[1].Orders)
	assert.Equal(t, 3, metrics[1].Items)

	week, err := f.svc.GetDailySalesMetrics(context.Background(), f.storeID, f.vendor, 2)
	require.NoError(t, err)
	require.Len(t, week, 1)
	assert.Equal(t, "2024-03-14", week[0].Date)

	_, err = f.svc.GetDailySalesMetrics(context.Background(), f.storeID, uuid.New(), 7)
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}

func TestGetTotalRevenue(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.seed(t, fixedNow.AddDate(-2, 0, 0), 100, 1, StatusCompleted)
	f.seed(t, fixedNow.AddDate(0, 0, -1), 0.1, 1, StatusCompleted)
	f.seed(t, fixedNow.AddDate(0, 0, -1), 0.2, 1, StatusCompleted)
	f.seed(t, fixedNow, 40, 1, StatusCancelled)
	f.seed(t, fixedNow, 60, 1, StatusPending)

	total, err := f.svc.GetTotalRevenue(context.Background(), f.storeID, f.vendor)
	require.NoError(t, err)
	assert.Equal(t, 100.3, total)

	_, err = f.svc.GetTotalRevenue(context.Background(), uuid.New(), f.vendor)
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}
