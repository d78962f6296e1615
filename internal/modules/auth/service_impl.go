package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/georgemunganga/vendorhub/internal/apperr"
	"github.com/georgemunganga/vendorhub/internal/logging"
	"github.com/georgemunganga/vendorhub/internal/modules/user"
)

type service struct {
	users    user.Service
	sessions SessionStore
	signer   tokenSigner
	maxAge   time.Duration
	now      func() time.Time
}

// NewService creates a new auth service. Tokens are signed with secret and
// expire after maxAge.
func NewService(users user.Service, sessions SessionStore, secret []byte, maxAge time.Duration) Service {
	return &service{
		users:    users,
		sessions: sessions,
		signer:   tokenSigner{secret: secret},
		maxAge:   maxAge,
		now:      time.Now,
	}
}

func (s *service) MaxAge() time.Duration { return s.maxAge }

func (s *service) CreateSession(ctx context.Context, userID uuid.UUID, email string, role user.Role) (string, error) {
	token, _, err := s.createSession(ctx, userID, email, role)
	return token, err
}

func (s *service) createSession(ctx context.Context, userID uuid.UUID, email string, role user.Role) (string, time.Time, error) {
	now := s.now()
	sess := &Session{
		ID:        uuid.New(),
		UserID:    userID,
		Email:     email,
		Role:      role,
		ExpiresAt: now.Add(s.maxAge),
	}
	token, err := s.signer.sign(sess.ID, now, sess.ExpiresAt)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session token: %w", err)
	}
	if err := s.sessions.Save(ctx, sess, s.maxAge); err != nil {
		return "", time.Time{}, fmt.Errorf("save session: %w", err)
	}
	return token, sess.ExpiresAt, nil
}

func (s *service) ResolveSession(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, apperr.ErrUnauthorized
	}
	id, err := s.signer.parse(token)
	if err != nil {
		logging.FromContext(ctx).Debug("session token rejected", "error", err)
		return nil, apperr.ErrUnauthorized
	}
	sess, err := s.sessions.Get(ctx, id)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}
	return &Identity{UserID: sess.UserID, Email: sess.Email, Role: sess.Role}, nil
}

func (s *service) DestroySession(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	id, err := s.signer.parse(token)
	if err != nil {
		return nil
	}
	return s.sessions.Delete(ctx, id)
}

func (s *service) SignUpVendor(ctx context.Context, creds Credentials) (*Result, error) {
	return s.signUp(ctx, creds, user.RoleVendor)
}

func (s *service) SignUpAdmin(ctx context.Context, creds Credentials) (*Result, error) {
	return s.signUp(ctx, creds, user.RoleAdmin)
}

func (s *service) signUp(ctx context.Context, creds Credentials, role user.Role) (*Result, error) {
	u, err := s.users.RegisterUser(ctx, user.RegisterRequest{
		Email:    creds.Email,
		Password: creds.Password,
		Role:     role,
	})
	if err != nil {
		return nil, err
	}
	logging.FromContext(ctx).Info("user registered", "user_id", u.ID, "role", u.Role)
	return s.issue(ctx, u)
}

func (s *service) SignIn(ctx context.Context, creds Credentials) (*Result, error) {
	u, err := s.users.Authenticate(ctx, creds.Email, creds.Password)
	if err != nil {
		if errors.Is(err, apperr.ErrUnauthorized) {
			logging.FromContext(ctx).Warn("sign-in failed", "reason", "invalid credentials")
		}
		return nil, err
	}
	return s.issue(ctx, u)
}

func (s *service) issue(ctx context.Context, u *user.User) (*Result, error) {
	token, expiresAt, err := s.createSession(ctx, u.ID, u.Email, u.Role)
	if err != nil {
		return nil, err
	}
	return &Result{User: u, Token: token, ExpiresAt: expiresAt}, nil
}

func (s *service) CurrentUser(ctx context.Context, token string) (*user.User, error) {
	ident, err := s.ResolveSession(ctx, token)
	if err != nil {
		return nil, err
	}
	u, err := s.users.GetUser(ctx, ident.UserID)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.ErrUnauthorized
	}
	return u, err
}
