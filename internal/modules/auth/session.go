package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/georgemunganga/vendorhub/internal/modules/user"
)

// Session is the server-side record behind a token.
type Session struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Email     string    `json:"email"`
	Role      user.Role `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionStore persists sessions. Get returns apperr.ErrNotFound for unknown ids.
type SessionStore interface {
	Save(ctx context.Context, s *Session, ttl time.Duration) error
	Get(ctx context.Context, id uuid.UUID) (*Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
