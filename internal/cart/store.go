package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jamizoram/storefront/internal/domain"
)

// Store persists a serialized cart snapshot under a per-session key so a
// reload or crash never loses cart state. Implementations must treat a
// missing key as an empty cart, not an error.
type Store interface {
	Load(ctx context.Context, sessionID string) ([]domain.CartLine, error)
	Save(ctx context.Context, sessionID string, lines []domain.CartLine) error
	Delete(ctx context.Context, sessionID string) error
}

const cartKeyPrefix = "cart:"

// redisStore keeps cart snapshots in Redis with a TTL matching the session
// lifetime
type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed cart store
func NewRedisStore(client *redis.Client, ttl time.Duration) Store {
	return &redisStore{client: client, ttl: ttl}
}

func (s *redisStore) Load(ctx context.Context, sessionID string) ([]domain.CartLine, error) {
	raw, err := s.client.Get(ctx, cartKeyPrefix+sessionID).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	var lines []domain.CartLine
	if err := json.Unmarshal(raw, &lines); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	return lines, nil
}

func (s *redisStore) Save(ctx context.Context, sessionID string, lines []domain.CartLine) error {
	raw, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.client.Set(ctx, cartKeyPrefix+sessionID, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

func (s *redisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, cartKeyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	return nil
}

// memoryStore is an in-process Store for tests and single-node development
type memoryStore struct {
	mu    sync.RWMutex
	carts map[string][]domain.CartLine
}

// NewMemoryStore creates an in-memory cart store
func NewMemoryStore() Store {
	return &memoryStore{carts: make(map[string][]domain.CartLine)}
}

func (s *memoryStore) Load(ctx context.Context, sessionID string) ([]domain.CartLine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	lines, ok := s.carts[sessionID]
	if !ok {
		return nil, nil
	}
	out := make([]domain.CartLine, len(lines))
	copy(out, lines)
	return out, nil
}

func (s *memoryStore) Save(ctx context.Context, sessionID string, lines []domain.CartLine) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]domain.CartLine, len(lines))
	copy(cp, lines)
	s.carts[sessionID] = cp
	return nil
}

func (s *memoryStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
	return nil
}
