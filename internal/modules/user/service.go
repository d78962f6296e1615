package user

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the interface for user-related business logic.
type Service interface {
	RegisterUser(ctx context.Context, req RegisterRequest) (*User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)
	// Authenticate verifies the password for email. Unknown emails and wrong
	// passwords both fail with apperr.ErrUnauthorized.
	Authenticate(ctx context.Context, email, password string) (*User, error)
}
