package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/omerfq/stitchline-backend/pkg/logger"
	"github.com/omerfq/stitchline-backend/pkg/redis"
)

// Storage persists carts keyed by their guest token.
type Storage interface {
	Load(ctx context.Context, token string) (*Cart, error)
	Save(ctx context.Context, cart *Cart) error
	Delete(ctx context.Context, token string) error
}

// RedisStorage stores each cart as one JSON document with a rolling TTL.
type RedisStorage struct {
	client *redis.Client
	logg   *logger.Logger
	ttl    time.Duration
}

func NewRedisStorage(client *redis.Client, logg *logger.Logger, ttl time.Duration) *RedisStorage {
	return &RedisStorage{client: client, logg: logg, ttl: ttl}
}

// Load returns the cart stored under token. A missing key yields an empty
// cart. A payload that fails to decode is treated as missing so a corrupt
// record never takes the storefront down.
func (s *RedisStorage) Load(ctx context.Context, token string) (*Cart, error) {
	raw, err := s.client.Get(ctx, s.client.CartKey(token))
	if errors.Is(err, redis.Nil) {
		return NewCart(token), nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading cart: %w", err)
	}

	var cart Cart
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		if s.logg != nil {
			s.logg.Warn(s.logg.WithCartToken(ctx, token), "discarding malformed cart payload")
		}
		return NewCart(token), nil
	}
	cart.Token = token
	if cart.Lines == nil {
		cart.Lines = []Line{}
	}
	return &cart, nil
}

func (s *RedisStorage) Save(ctx context.Context, cart *Cart) error {
	payload, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("encoding cart: %w", err)
	}
	if err := s.client.Set(ctx, s.client.CartKey(cart.Token), string(payload), s.ttl); err != nil {
		return fmt.Errorf("saving cart: %w", err)
	}
	return nil
}

func (s *RedisStorage) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, s.client.CartKey(token)); err != nil {
		return fmt.Errorf("deleting cart: %w", err)
	}
	return nil
}

// MemoryStorage is an in-process Storage used by tests.
type MemoryStorage struct {
	mu    sync.Mutex
	carts map[string][]byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{carts: map[string][]byte{}}
}

func (s *MemoryStorage) Load(ctx context.Context, token string) (*Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok := s.carts[token]
	if !ok {
		return NewCart(token), nil
	}
	var cart Cart
	if err := json.Unmarshal(raw, &cart); err != nil {
		return NewCart(token), nil
	}
	cart.Token = token
	if cart.Lines == nil {
		cart.Lines = []Line{}
	}
	return &cart, nil
}

func (s *MemoryStorage) Save(ctx context.Context, cart *Cart) error {
	payload, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[cart.Token] = payload
	return nil
}

func (s *MemoryStorage) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, token)
	return nil
}

// Seed stores a raw payload under token, bypassing encoding. Test helper for
// exercising malformed data handling.
func (s *MemoryStorage) Seed(token string, payload []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[token] = payload
}
