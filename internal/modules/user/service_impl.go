package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/georgemunganga/vendorhub/internal/apperr"
	"github.com/georgemunganga/vendorhub/internal/validation"
)

var errInvalidCredentials = fmt.Errorf("%w: invalid credentials", apperr.ErrUnauthorized)

type service struct {
	repo   Repository
	hasher PasswordHasher
	now    func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

// NewService creates a new user service.
func NewService(repo Repository, hasher PasswordHasher) Service {
	return &service{
		repo:   repo,
		hasher: hasher,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) RegisterUser(ctx context.Context, req RegisterRequest) (*User, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if !req.Role.Valid() {
		return nil, apperr.NewValidation("role", "must be one of: admin vendor")
	}

	if _, err := s.repo.GetUserByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("user already exists: %w", apperr.ErrConflict)
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now()
	user := &User{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Role:         req.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *service) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	u, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", id, err)
	}
	return u, nil
}

func (s *service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	u, err := s.repo.GetUserByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, apperr.ErrNotFound) {
		// unknown emails still pay for a hash comparison
		_ = s.hasher.Compare(s.dummy(), password)
		return nil, errInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return nil, errInvalidCredentials
	}
	return u, nil
}

// dummy returns a hash made with the configured hasher, used to keep
// Authenticate's timing independent of whether the email exists.
func (s *service) dummy() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.hasher.Hash(uuid.NewString())
	})
	return s.dummyHash
}
