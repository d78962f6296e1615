package user

import (
	"time"

	"github.com/google/uuid"
)

// Role is fixed when the user is created.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleVendor Role = "vendor"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleVendor
}

// User is an account that can sign in as a vendor or an administrator.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RegisterRequest is validated before a user is stored.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,has_upper,has_digit"`
	Role     Role   `json:"-"`
}
