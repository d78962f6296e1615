package user

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/georgemunganga/vendorhub/internal/apperr"
)

func newTestService() Service {
	return NewService(NewMemoryRepository(), BcryptHasher{Cost: bcrypt.MinCost})
}

func TestRegisterUser_HashesPassword(t *testing.T) {
	t.Parallel()

	repo := NewMemoryRepository()
	svc := NewService(repo, BcryptHasher{Cost: bcrypt.MinCost})

	u, err := svc.RegisterUser(context.Background(), RegisterRequest{
		Email: " vendor@example.com ", Password: "Password1", Role: RoleVendor,
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, u.ID)
	assert.Equal(t, "vendor@example.com", u.Email)
	assert.Equal(t, RoleVendor, u.Role)
	assert.NotEqual(t, "Password1", u.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("Password1")))

	stored, err := repo.GetUserByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.PasswordHash, stored.PasswordHash)
}

func TestRegisterUser_Validation(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	tests := []struct {
		name  string
		req   RegisterRequest
		field string
	}{
		{name: "bad email", req: RegisterRequest{Email: "nope", Password: "Password1", Role: RoleVendor}, field: "email"},
		{name: "short password", req: RegisterRequest{Email: "a@b.co", Password: "Pa1", Role: RoleVendor}, field: "password"},
		{name: "no uppercase", req: RegisterRequest{Email: "a@b.co", Password: "password1", Role: RoleVendor}, field: "password"},
		{name: "no digit", req: RegisterRequest{Email: "a@b.co", Password: "Password", Role: RoleVendor}, field: "password"},
		{name: "unknown role", req: RegisterRequest{Email: "a@b.co", Password: "Password1", Role: "owner"}, field: "role"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := svc.RegisterUser(context.Background(), tt.req)
			v, ok := apperr.AsValidation(err)
			require.True(t, ok, "expected validation error, got %v", err)
			assert.True(t, v.Has(tt.field), "fields: %v", v.Fields)
		})
	}
}

func TestRegisterUser_DuplicateEmail(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	ctx := context.Background()
	_, err := svc.RegisterUser(ctx, RegisterRequest{Email: "dup@example.com", Password: "Password1", Role: RoleVendor})
	require.NoError(t, err)

	_, err = svc.RegisterUser(ctx, RegisterRequest{Email: "DUP@example.com", Password: "Password1", Role: RoleAdmin})
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	ctx := context.Background()
	created, err := svc.RegisterUser(ctx, RegisterRequest{Email: "admin@example.com", Password: "Password1", Role: RoleAdmin})
	require.NoError(t, err)

	u, err := svc.Authenticate(ctx, "Admin@Example.com", "Password1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, u.ID)

	_, err = svc.Authenticate(ctx, "admin@example.com", "Wrong1234")
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)

	_, err = svc.Authenticate(ctx, "ghost@example.com", "Password1")
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestGetUser_NotFound(t *testing.T) {
	t.Parallel()

	_, err := newTestService().GetUser(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

type countingHasher struct {
	BcryptHasher
	compares *int
}

func (h countingHasher) Compare(hash, password string) error {
	*h.compares++
	return h.BcryptHasher.Compare(hash, password)
}

func TestAuthenticate_UnknownEmailComparesHash(t *testing.T) {
	t.Parallel()

	var compares int
	svc := NewService(NewMemoryRepository(), countingHasher{BcryptHasher: BcryptHasher{Cost: bcrypt.MinCost}, compares: &compares})

	_, err := svc.Authenticate(context.Background(), "ghost@example.com", "Password1")
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
	assert.Equal(t, 1, compares)
}
