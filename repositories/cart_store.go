package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"carers-store/models"

	"github.com/redis/go-redis/v9"
)

var ErrKeyNotFound = errors.New("key not found")

// KV is the durable key-value slot backing the cart store.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

type RedisKV struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisKV(client *redis.Client, ttl time.Duration) *RedisKV {
	return &RedisKV{client: client, ttl: ttl}
}

func (r *RedisKV) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (r *RedisKV) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, key, value, r.ttl).Err()
}

// MemoryKV keeps carts in process memory. Used in tests and as a fallback
// when Redis is not configured.
type MemoryKV struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: map[string]string{}}
}

func (m *MemoryKV) Get(ctx context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	val, ok := m.data[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return val, nil
}

func (m *MemoryKV) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

// CartStore serializes whole carts into the KV slot, one key per owner.
// Last write wins; there is a single logical writer per owner.
type CartStore struct {
	kv KV
}

func NewCartStore(kv KV) *CartStore {
	return &CartStore{kv: kv}
}

func cartKey(ownerID string) string {
	return "cart:" + ownerID
}

// Load returns the owner's cart, or an empty cart when the key is absent or
// the stored value cannot be decoded. Read failures are logged, never
// surfaced to the caller.
func (s *CartStore) Load(ctx context.Context, ownerID string) models.Cart {
	raw, err := s.kv.Get(ctx, cartKey(ownerID))
	if err != nil {
		if !errors.Is(err, ErrKeyNotFound) {
			log.Printf("cart store: read failed for %s: %v", ownerID, err)
		}
		return models.Cart{}
	}

	var cart models.Cart
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		log.Printf("cart store: corrupt cart for %s, starting empty: %v", ownerID, err)
		return models.Cart{}
	}
	return cart
}

// Save overwrites the owner's stored cart with the full current state.
func (s *CartStore) Save(ctx context.Context, ownerID string, cart models.Cart) error {
	raw, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, cartKey(ownerID), string(raw))
}
