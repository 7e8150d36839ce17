package identity

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	apperrors "github.com/jamizoram/storefront/pkg/errors"
)

// SessionStore maps opaque bearer tokens to user IDs
type SessionStore interface {
	Create(ctx context.Context, token string, userID uuid.UUID, ttl time.Duration) error
	Get(ctx context.Context, token string) (uuid.UUID, error)
	Delete(ctx context.Context, token string) error
}

const sessionKeyPrefix = "session:"

type redisSessionStore struct {
	client *redis.Client
}

// NewRedisSessionStore creates a Redis-backed session store
func NewRedisSessionStore(client *redis.Client) SessionStore {
	return &redisSessionStore{client: client}
}

func (s *redisSessionStore) Create(ctx context.Context, token string, userID uuid.UUID, ttl time.Duration) error {
	if err := s.client.Set(ctx, sessionKeyPrefix+token, userID.String(), ttl).Err(); err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

func (s *redisSessionStore) Get(ctx context.Context, token string) (uuid.UUID, error) {
	raw, err := s.client.Get(ctx, sessionKeyPrefix+token).Result()
	if err == redis.Nil {
		return uuid.Nil, &apperrors.ErrUnauthorized{Message: "session expired or unknown"}
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("get session: %w", err)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("corrupt session value: %w", err)
	}
	return id, nil
}

func (s *redisSessionStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, sessionKeyPrefix+token).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

type memorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]uuid.UUID
}

// NewMemorySessionStore creates an in-process session store for tests
func NewMemorySessionStore() SessionStore {
	return &memorySessionStore{sessions: make(map[string]uuid.UUID)}
}

func (s *memorySessionStore) Create(ctx context.Context, token string, userID uuid.UUID, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = userID
	return nil
}

func (s *memorySessionStore) Get(ctx context.Context, token string) (uuid.UUID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.sessions[token]
	if !ok {
		return uuid.Nil, &apperrors.ErrUnauthorized{Message: "session expired or unknown"}
	}
	return id, nil
}

func (s *memorySessionStore) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}
