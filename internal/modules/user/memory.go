package user

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/georgemunganga/vendorhub/internal/apperr"
)

type memoryRepository struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]User
	byEmail map[string]uuid.UUID
}

// NewMemoryRepository creates an in-process user repository.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		byID:    make(map[uuid.UUID]User),
		byEmail: make(map[string]uuid.UUID),
	}
}

func (r *memoryRepository) CreateUser(_ context.Context, user *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(user.Email)
	if _, ok := r.byEmail[key]; ok {
		return fmt.Errorf("email %s: %w", user.Email, apperr.ErrConflict)
	}
	r.byID[user.ID] = *user
	r.byEmail[key] = user.ID
	return nil
}

func (r *memoryRepository) GetUserByEmail(_ context.Context, email string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	u := r.byID[id]
	return &u, nil
}

func (r *memoryRepository) GetUserByID(_ context.Context, id uuid.UUID) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return &u, nil
}
