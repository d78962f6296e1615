package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/georgemunganga/vendorhub/internal/apperr"
)

const sessionKeyPrefix = "session:"

// RedisSessionStore keeps sessions in Redis with a TTL equal to the session max-age.
type RedisSessionStore struct {
	client *redis.Client
}

var _ SessionStore = (*RedisSessionStore)(nil)

func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

// NewRedisClient connects and pings Redis.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", addr, err)
	}
	return client, nil
}

func sessionKey(id uuid.UUID) string {
	return sessionKeyPrefix + id.String()
}

func (r *RedisSessionStore) Save(ctx context.Context, s *Session, ttl time.Duration) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return r.client.Set(ctx, sessionKey(s.ID), payload, ttl).Err()
}

func (r *RedisSessionStore) Get(ctx context.Context, id uuid.UUID) (*Session, error) {
	data, err := r.client.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &s, nil
}

func (r *RedisSessionStore) Delete(ctx context.Context, id uuid.UUID) error {
	return r.client.Del(ctx, sessionKey(id)).Err()
}
