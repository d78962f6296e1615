package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/georgemunganga/vendorhub/internal/apperr"
	"github.com/georgemunganga/vendorhub/internal/httpio"
	"github.com/georgemunganga/vendorhub/internal/logging"
)

// SessionCookie holds the session token for browser clients.
const SessionCookie = "vendorhub_session"

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying ident.
func WithIdentity(ctx context.Context, ident *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, ident)
}

func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	ident, ok := ctx.Value(identityKey{}).(*Identity)
	return ident, ok && ident != nil
}

// TokenFromRequest reads the session cookie, falling back to a bearer token.
func TokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// Middleware resolves the session token, when one is sent, and attaches the
// identity to the request context. Requests without a valid session pass
// through anonymously.
func Middleware(svc Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := TokenFromRequest(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}
			ident, err := svc.ResolveSession(r.Context(), token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			ctx := WithIdentity(r.Context(), ident)
			ctx = logging.IntoContext(ctx, logging.FromContext(ctx).With("user_id", ident.UserID.String()))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireIdentity rejects anonymous requests with 401.
func RequireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := IdentityFromContext(r.Context()); !ok {
			httpio.Error(w, r, apperr.ErrUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
