package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/georgemunganga/vendorhub/internal/apperr"
	"github.com/georgemunganga/vendorhub/internal/logging"
	"github.com/georgemunganga/vendorhub/internal/validation"
)

// Service defines business logic for vendor stores.
type Service interface {
	CreateStore(ctx context.Context, vendorID uuid.UUID, req CreateStoreRequest) (*Store, error)
	GetStore(ctx context.Context, id uuid.UUID) (*Store, error)
	GetStoreByVendor(ctx context.Context, vendorID uuid.UUID) (*Store, error)
	UpdateStore(ctx context.Context, storeID, requesterVendorID uuid.UUID, req UpdateStoreRequest) (*Store, error)
	// OwnedStore returns the store when vendorID owns it. A missing store and a
	// store owned by someone else both yield apperr.ErrForbidden.
	OwnedStore(ctx context.Context, storeID, vendorID uuid.UUID) (*Store, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a new store service.
func NewService(repo Repository) Service {
	return &service{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

func (s *service) CreateStore(ctx context.Context, vendorID uuid.UUID, req CreateStoreRequest) (*Store, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.ContactEmail = strings.TrimSpace(req.ContactEmail)
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetStoreByVendorID(ctx, vendorID); err == nil {
		return nil, fmt.Errorf("vendor %s already has a store: %w", vendorID, apperr.ErrConflict)
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}

	now := s.now()
	store := &Store{
		ID:           uuid.New(),
		VendorID:     vendorID,
		Name:         req.Name,
		Description:  req.Description,
		LogoURL:      req.LogoURL,
		BannerURL:    req.BannerURL,
		ContactEmail: req.ContactEmail,
		Phone:        req.Phone,
		Address:      req.Address,
		City:         req.City,
		State:        req.State,
		PostalCode:   req.PostalCode,
		Country:      req.Country,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.CreateStore(ctx, store); err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Info("store created", "store_id", store.ID, "vendor_id", vendorID)
	return store, nil
}

func (s *service) GetStore(ctx context.Context, id uuid.UUID) (*Store, error) {
	st, err := s.repo.GetStoreByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("store %s: %w", id, err)
	}
	return st, nil
}

func (s *service) GetStoreByVendor(ctx context.Context, vendorID uuid.UUID) (*Store, error) {
	st, err := s.repo.GetStoreByVendorID(ctx, vendorID)
	if err != nil {
		return nil, fmt.Errorf("store for vendor %s: %w", vendorID, err)
	}
	return st, nil
}

func (s *service) UpdateStore(ctx context.Context, storeID, requesterVendorID uuid.UUID, req UpdateStoreRequest) (*Store, error) {
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		req.Name = &name
	}
	if err := req.validate(); err != nil {
		return nil, err
	}

	st, err := s.GetStore(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if st.VendorID != requesterVendorID {
		logging.FromContext(ctx).Warn("store update denied", "store_id", storeID, "requester", requesterVendorID)
		return nil, apperr.ErrForbidden
	}

	req.apply(st)
	st.UpdatedAt = s.now()
	if err := s.repo.UpdateStore(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *service) OwnedStore(ctx context.Context, storeID, vendorID uuid.UUID) (*Store, error) {
	st, err := s.repo.GetStoreByID(ctx, storeID)
	if errors.Is(err, apperr.ErrNotFound) {
		logging.FromContext(ctx).Warn("access to unknown store", "store_id", storeID, "requester", vendorID)
		return nil, apperr.ErrForbidden
	}
	if err != nil {
		return nil, err
	}
	if st.VendorID != vendorID {
		logging.FromContext(ctx).Warn("store access denied", "store_id", storeID, "requester", vendorID)
		return nil, apperr.ErrForbidden
	}
	return st, nil
}
