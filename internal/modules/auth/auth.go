package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/georgemunganga/vendorhub/internal/modules/user"
)

// Identity is the caller resolved from a session token.
type Identity struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	Role   user.Role `json:"role"`
}

func (i *Identity) IsAdmin() bool { return i != nil && i.Role == user.RoleAdmin }

// Result is returned by sign-up and sign-in.
type Result struct {
	User      *user.User `json:"user"`
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expires_at"`
}

// Credentials is the sign-up / sign-in payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Service defines session and sign-in business logic.
type Service interface {
	// CreateSession issues a bearer token bound to the given identity.
	CreateSession(ctx context.Context, userID uuid.UUID, email string, role user.Role) (string, error)
	// ResolveSession returns the identity for token, or apperr.ErrUnauthorized.
	ResolveSession(ctx context.Context, token string) (*Identity, error)
	// DestroySession removes the session. Unknown tokens are ignored.
	DestroySession(ctx context.Context, token string) error

	SignUpVendor(ctx context.Context, creds Credentials) (*Result, error)
	SignUpAdmin(ctx context.Context, creds Credentials) (*Result, error)
	SignIn(ctx context.Context, creds Credentials) (*Result, error)
	CurrentUser(ctx context.Context, token string) (*user.User, error)

	// MaxAge is the lifetime given to new sessions.
	MaxAge() time.Duration
}
