package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/georgemunganga/vendorhub/internal/apperr"
	"github.com/georgemunganga/vendorhub/internal/logging"
	"github.com/georgemunganga/vendorhub/internal/modules/user"
	"github.com/georgemunganga/vendorhub/internal/validation"
)

// Service defines catalog business logic.
type Service interface {
	SearchGlobalProducts(ctx context.Context, query string) ([]*GlobalProduct, error)
	GetGlobalProduct(ctx context.Context, id uuid.UUID) (*GlobalProduct, error)
	// CreateGlobalProduct adds a verified directory entry. Admin only.
	CreateGlobalProduct(ctx context.Context, requesterRole user.Role, req CreateGlobalProductRequest) (*GlobalProduct, error)
	// Seed loads the demo directory. Entries that already exist are skipped.
	Seed(ctx context.Context) error
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

func (s *service) SearchGlobalProducts(ctx context.Context, query string) ([]*GlobalProduct, error) {
	return s.repo.Search(ctx, strings.TrimSpace(query))
}

func (s *service) GetGlobalProduct(ctx context.Context, id uuid.UUID) (*GlobalProduct, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("global product %s: %w", id, err)
	}
	return p, nil
}

func (s *service) CreateGlobalProduct(ctx context.Context, requesterRole user.Role, req CreateGlobalProductRequest) (*GlobalProduct, error) {
	if requesterRole != user.RoleAdmin {
		return nil, apperr.ErrForbidden
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	now := s.now()
	p := &GlobalProduct{
		ID:          uuid.New(),
		Name:        req.Name,
		CategoryID:  uuid.MustParse(req.CategoryID),
		Description: req.Description,
		ImageURL:    req.ImageURL,
		SKU:         req.SKU,
		Barcode:     req.Barcode,
		IsVerified:  true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	logging.FromContext(ctx).Info("global product created", "global_product_id", p.ID)
	return p, nil
}

func (s *service) Seed(ctx context.Context) error {
	now := s.now()
	added := 0
	for i, p := range seedProducts() {
		if _, err := s.repo.GetByID(ctx, p.ID); err == nil {
			continue
		} else if !errors.Is(err, apperr.ErrNotFound) {
			return err
		}
		// distinct timestamps keep directory order stable in postgres
		p.CreatedAt = now.Add(time.Duration(i) * time.Millisecond)
		p.UpdatedAt = p.CreatedAt
		if err := s.repo.Create(ctx, p); err != nil {
			return fmt.Errorf("seed %s: %w", p.SKU, err)
		}
		added++
	}
	logging.FromContext(ctx).Info("catalog seeded", "added", added)
	return nil
}
