package product

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
	"github.com/georgemunganga/vendorhub/internal/modules/store"
	"github.com/georgemunganga/vendorhub/internal/modules/user"
)

type fixture struct {
	svc      *service
	repo     Repository
	stores   store.Service
	events   *events.Recorder
	vendor   uuid.UUID
	storeID  uuid.UUID
	iPhoneID uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	stores := store.NewService(store.NewMemoryRepository())
	directory := catalog.NewService(catalog.NewMemoryRepository())
	require.NoError(t, directory.Seed(ctx))

	vendor := uuid.New()
	st, err := stores.CreateStore(ctx, vendor, store.CreateStoreRequest{Name: "Gadgets", ContactEmail: "g@example.com"})
	require.NoError(t, err)

	repo := NewMemoryRepository()
	rec := &events.Recorder{}
	svc := NewService(repo, stores, directory, rec).(*service)
	svc.now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }

	return &fixture{
		svc:      svc,
		repo:     repo,
		stores:   stores,
		events:   rec,
		vendor:   vendor,
		storeID:  st.ID,
		iPhoneID: catalog.SeedID("APPL-IP15P"),
	}
}

func (f *fixture) addCustom(t *testing.T, name string) *VendorProduct {
	t.Helper()
	p, err := f.svc.AddProductToStore(context.Background(), f.storeID, f.vendor, CreateProductRequest{
		Name: name, LocalPrice: 10, StockCount: 5,
	})
	require.NoError(t, err)
	return p
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int { return &v }
func strPtr(v string) *string { return &v }

func TestAddProductToStore_ApprovalBySource(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	fromDirectory, err := f.svc.AddProductToStore(ctx, f.storeID, f.vendor, CreateProductRequest{
		GlobalProductID: &f.iPhoneID, Name: "iPhone 15 Pro", LocalPrice: 1199.99, StockCount: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, fromDirectory.ApprovalStatus)
	assert.Nil(t, fromDirectory.AdminNotes)

	custom := f.addCustom(t, "Handmade case")
	assert.Equal(t, StatusPendingReview, custom.ApprovalStatus)
	assert.Nil(t, custom.AdminNotes)
	assert.Equal(t, 0, custom.MinStockLevel)

	msgs := f.events.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, events.TopicProducts, msgs[0].Topic)
	assert.Equal(t, "product_submitted", msgs[1].Event.(events.ProductEvent).Type)
	assert.Equal(t, string(StatusPendingReview), msgs[1].Event.(events.ProductEvent).Status)
}

func TestAddProductToStore_UnknownGlobalProduct(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	missing := uuid.New()
	_, err := f.svc.AddProductToStore(context.Background(), f.storeID, f.vendor, CreateProductRequest{
		GlobalProductID: &missing, Name: "Ghost", LocalPrice: 1,
	})
	v, ok := apperr.AsValidation(err)
	require.True(t, ok, "expected validation error, got %v", err)
	assert.True(t, v.Has("global_product_id"))
}

func TestAddProductToStore_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		req   CreateProductRequest
		field string
	}{
		{name: "negative price", req: CreateProductRequest{Name: "X", LocalPrice: -5}, field: "local_price"},
		{name: "zero price", req: CreateProductRequest{Name: "X"}, field: "local_price"},
		{name: "missing name", req: CreateProductRequest{Name: " ", LocalPrice: 1}, field: "name"},
		{name: "negative stock", req: CreateProductRequest{Name: "X", LocalPrice: 1, StockCount: -1}, field: "stock_count"},
		{name: "zero cost price", req: CreateProductRequest{Name: "X", LocalPrice: 1, CostPrice: floatPtr(0)}, field: "cost_price"},
		{name: "negative min stock", req: CreateProductRequest{Name: "X", LocalPrice: 1, MinStockLevel: intPtr(-2)}, field: "min_stock_level"},
		{name: "infinite price", req: CreateProductRequest{Name: "X", LocalPrice: math.Inf(1)}, field: "local_price"},
		{name: "infinite cost price", req: CreateProductRequest{Name: "X", LocalPrice: 1, CostPrice: floatPtr(math.Inf(1))}, field: "cost_price"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := newFixture(t)
			_, err := f.svc.AddProductToStore(context.Background(), f.storeID, f.vendor, tt.req)
			v, ok := apperr.AsValidation(err)
			require.True(t, ok, "expected validation error, got %v", err)
			assert.True(t, v.Has(tt.field), "fields: %v", v.Fields)

			all, err := f.repo.ListProductsByStore(context.Background(), f.storeID)
			require.NoError(t, err)
			assert.Empty(t, all)
		})
	}
}

func TestAddProductToStore_NotOwner(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	_, err := f.svc.AddProductToStore(context.Background(), f.storeID, uuid.New(), CreateProductRequest{Name: "X", LocalPrice: 1})
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)

	all, err := f.repo.ListProductsByStore(context.Background(), f.storeID)
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.Empty(t, f.events.Messages())
}

func TestGetStoreProducts_RoundTrip(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	req := CreateProductRequest{
		GlobalProductID: &f.iPhoneID,
		Name:            "iPhone 15 Pro",
		Description:     "sealed",
		LocalPrice:      999.5,
		CostPrice:       floatPtr(800),
		StockCount:      4,
		MinStockLevel:   intPtr(2),
	}
	created, err := f.svc.AddProductToStore(ctx, f.storeID, f.vendor, req)
	require.NoError(t, err)
	custom := f.addCustom(t, "Sticker pack")

	listed, err := f.svc.GetStoreProducts(ctx, f.storeID, f.vendor)
	require.NoError(t, err)
	require.Len(t, listed, 2)

	assert.Equal(t, *created, listed[0].VendorProduct)
	require.NotNil(t, listed[0].GlobalProduct)
	assert.Equal(t, f.iPhoneID, listed[0].GlobalProduct.ID)
	assert.Equal(t, "APPL-IP15P", listed[0].GlobalProduct.SKU)

	assert.Equal(t, custom.ID, listed[1].ID)
	assert.Nil(t, listed[1].GlobalProduct)

	_, err = f.svc.GetStoreProducts(ctx, f.storeID, uuid.New())
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}

func TestUpdateVendorProduct(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	p := f.addCustom(t, "Mug")

	updated, err := f.svc.UpdateVendorProduct(ctx, p.ID, f.vendor, UpdateProductRequest{
		LocalPrice: floatPtr(12.5),
		StockCount: intPtr(0),
	})
	require.NoError(t, err)
	assert.Equal(t, 12.5, updated.LocalPrice)
	assert.Equal(t, 0, updated.StockCount)
	assert.Equal(t, "Mug", updated.Name)
	assert.Equal(t, StatusPendingReview, updated.ApprovalStatus)

	_, err = f.svc.UpdateVendorProduct(ctx, p.ID, uuid.New(), UpdateProductRequest{Name: strPtr("Stolen")})
	assert.ErrorIs(t, err, apperr.ErrForbidden)
	stored, err := f.repo.GetProductByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mug", stored.Name)

	_, err = f.svc.UpdateVendorProduct(ctx, uuid.New(), f.vendor, UpdateProductRequest{Name: strPtr("X")})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = f.svc.UpdateVendorProduct(ctx, p.ID, f.vendor, UpdateProductRequest{LocalPrice: floatPtr(-1)})
	v, ok := apperr.AsValidation(err)
	require.True(t, ok)
	assert.True(t, v.Has("local_price"))
}

// approvingRepository approves the product just before the vendor's write lands.
type approvingRepository struct {
	Repository
}

func (r approvingRepository) UpdateProduct(ctx context.Context, p *VendorProduct) error {
	if _, err := r.TransitionStatus(ctx, p.ID, StatusPendingReview, StatusApproved, nil, p.UpdatedAt); err != nil {
		return err
	}
	return r.Repository.UpdateProduct(ctx, p)
}

func TestUpdateVendorProduct_KeepsApprovalStatus(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	p := f.addCustom(t, "Mug")
	f.svc.repo = approvingRepository{Repository: f.repo}

	updated, err := f.svc.UpdateVendorProduct(ctx, p.ID, f.vendor, UpdateProductRequest{StockCount: intPtr(7)})
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, updated.ApprovalStatus)
	assert.Equal(t, 7, updated.StockCount)

	stored, err := f.repo.GetProductByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, stored.ApprovalStatus)
	assert.Equal(t, 7, stored.StockCount)
}

func TestUpdateVendorProduct_RejectsInfinitePrice(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	p := f.addCustom(t, "Mug")
	_, err := f.svc.UpdateVendorProduct(context.Background(), p.ID, f.vendor, UpdateProductRequest{LocalPrice: floatPtr(math.Inf(1))})
	v, ok := apperr.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, []string{"must be a finite number"}, v.Fields["local_price"])
}

func TestDeleteVendorProduct(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	p := f.addCustom(t, "Pen")

	assert.ErrorIs(t, f.svc.DeleteVendorProduct(ctx, p.ID, uuid.New()), apperr.ErrForbidden)
	require.NoError(t, f.svc.DeleteVendorProduct(ctx, p.ID, f.vendor))
	assert.ErrorIs(t, f.svc.DeleteVendorProduct(ctx, p.ID, f.vendor), apperr.ErrNotFound)
}

func TestGetLowStockProducts(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	_, err := f.svc.AddProductToStore(ctx, f.storeID, f.vendor, CreateProductRequest{
		Name: "Low", LocalPrice: 1, StockCount: 2, MinStockLevel: intPtr(3),
	})
	require.NoError(t, err)
	_, err = f.svc.AddProductToStore(ctx, f.storeID, f.vendor, CreateProductRequest{
		Name: "Edge", LocalPrice: 1, StockCount: 3, MinStockLevel: intPtr(3),
	})
	require.NoError(t, err)
	f.addCustom(t, "Plenty")

	low, err := f.svc.GetLowStockProducts(ctx, f.storeID, f.vendor)
	require.NoError(t, err)
	require.Len(t, low, 2)
	assert.Equal(t, "Low", low[0].Name)
	assert.Equal(t, "Edge", low[1].Name)

	_, err = f.svc.GetLowStockProducts(ctx, f.storeID, uuid.New())
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}

func TestReviewWorkflow(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	a := f.addCustom(t, "Candle")
	b := f.addCustom(t, "Soap")

	reviews, err := f.svc.GetPendingProductReviews(ctx, user.RoleAdmin)
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	require.NotNil(t, reviews[0].Store)
	assert.Equal(t, f.storeID, reviews[0].Store.ID)
	assert.Nil(t, reviews[0].GlobalProduct)

	approved, err := f.svc.ApproveProduct(ctx, a.ID, user.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, approved.ApprovalStatus)
	assert.Nil(t, approved.AdminNotes)

	rejected, err := f.svc.RejectProduct(ctx, b.ID, "missing barcode", user.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, rejected.ApprovalStatus)
	require.NotNil(t, rejected.AdminNotes)
	assert.Equal(t, "missing barcode", *rejected.AdminNotes)

	stored, err := f.repo.GetProductByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "missing barcode", *stored.AdminNotes)

	reviews, err = f.svc.GetPendingProductReviews(ctx, user.RoleAdmin)
	require.NoError(t, err)
	assert.Empty(t, reviews)

	_, err = f.svc.ApproveProduct(ctx, b.ID, user.RoleAdmin)
	assert.ErrorIs(t, err, apperr.ErrInvalidTransition)
	_, err = f.svc.RejectProduct(ctx, a.ID, "", user.RoleAdmin)
	assert.ErrorIs(t, err, apperr.ErrInvalidTransition)

	types := make([]string, 0)
	for _, m := range f.events.Messages() {
		types = append(types, m.Event.(events.ProductEvent).Type)
	}
	assert.Equal(t, []string{"product_submitted", "product_submitted", "product_approved", "product_rejected"}, types)
}

func TestRejectProduct_EmptyNotes(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	p := f.addCustom(t, "Blank")
	rejected, err := f.svc.RejectProduct(context.Background(), p.ID, "", user.RoleAdmin)
	require.NoError(t, err)
	require.NotNil(t, rejected.AdminNotes)
	assert.Equal(t, "", *rejected.AdminNotes)
}

func TestReview_RequiresAdmin(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	p := f.addCustom(t, "Lamp")

	_, err := f.svc.GetPendingProductReviews(ctx, user.RoleVendor)
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
	_, err = f.svc.ApproveProduct(ctx, p.ID, user.RoleVendor)
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
	_, err = f.svc.RejectProduct(ctx, p.ID, "no", user.RoleVendor)
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)

	// the role is checked before the product is looked up
	_, err = f.svc.ApproveProduct(ctx, uuid.New(), user.RoleVendor)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	stored, err := f.repo.GetProductByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusPendingReview, stored.ApprovalStatus)
	assert.Nil(t, stored.AdminNotes)
}

func TestApproveProduct_NotFound(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	_, err := f.svc.ApproveProduct(context.Background(), uuid.New(), user.RoleAdmin)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
