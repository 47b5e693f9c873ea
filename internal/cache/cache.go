package cache

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store keeps raw upstream answers for a short while.
type Store interface {
	// Get reports ok=false on a miss; err is only for a broken backend.
	Get(ctx context.Context, key string) (val []byte, ok bool, err error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
	Close() error
}

// Key builds "REGION_fn_arg1_arg2".
func Key(region, fn string, args ...string) string {
	parts := append([]string{region, fn}, args...)
	return strings.Join(parts, "_")
}

/*** ---------- 인메모리 ---------- ***/

type entry struct {
	val     []byte
	expires time.Time
}

type memoryStore struct {
	mu    sync.RWMutex
	store map[string]entry
	now   func() time.Time
}

func NewMemoryStore() Store {
	return &memoryStore{store: make(map[string]entry), now: time.Now}
}

func (m *memoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	e, ok := m.store[key]
	m.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if !e.expires.IsZero() && !m.now().Before(e.expires) {
		m.mu.Lock()
		if cur, ok := m.store[key]; ok && cur.expires.Equal(e.expires) {
			delete(m.store, key)
		}
		m.mu.Unlock()
		return nil, false, nil
	}
	return e.val, true, nil
}

func (m *memoryStore) Set(_ context.Context, key string, val []byte, ttl time.Duration) error {
	e := entry{val: append([]byte(nil), val...)}
	if ttl > 0 {
		e.expires = m.now().Add(ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store[key] = e
	return nil
}

func (m *memoryStore) Close() error { return nil }

/*** ---------- Redis / RedisCluster ---------- ***/

type redisStore struct {
	client redis.UniversalClient
}

// NewRedisStore wraps an existing client (single node or cluster).
func NewRedisStore(client redis.UniversalClient) Store {
	return &redisStore{client: client}
}

// OpenRedis connects to a single node from a redis:// URL.
func OpenRedis(ctx context.Context, url string) (Store, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return NewRedisStore(client), nil
}

// OpenRedisCluster connects to a cluster through any of addrs.
func OpenRedisCluster(ctx context.Context, addrs []string) (Store, error) {
	client := redis.NewClusterClient(&redis.ClusterOptions{Addrs: addrs})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return NewRedisStore(client), nil
}

func (r *redisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (r *redisStore) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	return r.client.Set(ctx, key, val, ttl).Err()
}

func (r *redisStore) Close() error { return r.client.Close() }
