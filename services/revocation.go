package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis"

	"github.com/UFAZ-L2-CS1/DADLY/metrics"
)

// RevocationStore remembers tokens that were logged out before they
// expired. Entries only need to outlive the token itself.
type RevocationStore interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// tokenKey hashes the token so raw credentials are never kept.
func tokenKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// MemoryRevocationStore keeps revocations in process. Suitable for a single
// instance and for tests.
type MemoryRevocationStore struct {
	mu      sync.RWMutex
	entries map[string]time.Time
	now     func() time.Time
}

func NewMemoryRevocationStore() *MemoryRevocationStore {
	return &MemoryRevocationStore{entries: make(map[string]time.Time), now: time.Now}
}

func (m *MemoryRevocationStore) Revoke(_ context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()
	for k, exp := range m.entries {
		if !exp.After(now) {
			delete(m.entries, k)
		}
	}
	m.entries[tokenKey(token)] = now.Add(ttl)
	metrics.TokensRevokedTotal.Inc()
	return nil
}

func (m *MemoryRevocationStore) IsRevoked(_ context.Context, token string) (bool, error) {
	m.mu.RLock()
	exp, ok := m.entries[tokenKey(token)]
	m.mu.RUnlock()
	return ok && exp.After(m.now()), nil
}

// Len reports live and not yet pruned entries.
func (m *MemoryRevocationStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// RedisRevocationStore shares revocations between instances. Redis expires
// the keys together with the tokens.
type RedisRevocationStore struct {
	client *redis.Client
}

func NewRedisRevocationStore(client *redis.Client) *RedisRevocationStore {
	return &RedisRevocationStore{client: client}
}

func redisKey(token string) string {
	return "revoked:" + tokenKey(token)
}

func (r *RedisRevocationStore) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := r.client.WithContext(ctx).Set(redisKey(token), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoking token: %w", err)
	}
	metrics.TokensRevokedTotal.Inc()
	return nil
}

func (r *RedisRevocationStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := r.client.WithContext(ctx).Exists(redisKey(token)).Result()
	if err != nil {
		return false, fmt.Errorf("checking token revocation: %w", err)
	}
	return n > 0, nil
}
