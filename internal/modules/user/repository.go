package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for user data storage.
// Email lookups are case-insensitive and emails are unique.
type Repository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*User, error)
}
