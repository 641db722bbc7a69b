package auth

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrRefreshTokenNotFound = errors.New("refresh token not found")

// RefreshStore keeps refresh tokens until they are used once or expire.
type RefreshStore interface {
	Save(ctx context.Context, token, username string, ttl time.Duration) error
	// Consume returns the owner of token and invalidates it.
	Consume(ctx context.Context, token string) (string, error)
}

func NewRefreshToken() string {
	return uuid.NewString()
}

type refreshEntry struct {
	username  string
	expiresAt time.Time
}

type MemoryRefreshStore struct {
	mu     sync.Mutex
	tokens map[string]refreshEntry
	now    func() time.Time
}

func NewMemoryRefreshStore() *MemoryRefreshStore {
	return &MemoryRefreshStore{
		tokens: map[string]refreshEntry{},
		now:    time.Now,
	}
}

func (s *MemoryRefreshStore) Save(_ context.Context, token, username string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tokens[token] = refreshEntry{username: username, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *MemoryRefreshStore) Consume(_ context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.tokens[token]
	if !ok {
		return "", ErrRefreshTokenNotFound
	}
	delete(s.tokens, token)
	if s.now().After(entry.expiresAt) {
		return "", ErrRefreshTokenNotFound
	}
	return entry.username, nil
}

// Cleanup drops expired tokens and reports how many were removed.
func (s *MemoryRefreshStore) Cleanup() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	now := s.now()
	for token, entry := range s.tokens {
		if now.After(entry.expiresAt) {
			delete(s.tokens, token)
			removed++
		}
	}
	return removed
}

// StartRefreshTokenCleaner runs Cleanup every interval until ctx is done.
func (s *MemoryRefreshStore) StartRefreshTokenCleaner(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Cleanup(); n > 0 {
				log.Printf("Removed %d expired refresh tokens", n)
			}
		}
	}
}

const refreshKeyPrefix = "auth:refresh:"

// RedisRefreshStore keeps tokens as keys with a TTL, so expiry is handled by Redis.
type RedisRefreshStore struct {
	rdb *redis.Client
}

func NewRedisRefreshStore(rdb *redis.Client) *RedisRefreshStore {
	return &RedisRefreshStore{rdb: rdb}
}

func (s *RedisRefreshStore) Save(ctx context.Context, token, username string, ttl time.Duration) error {
	return s.rdb.Set(ctx, refreshKeyPrefix+token, username, ttl).Err()
}

func (s *RedisRefreshStore) Consume(ctx context.Context, token string) (string, error) {
	username, err := s.rdb.GetDel(ctx, refreshKeyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrRefreshTokenNotFound
	}
	return username, err
}
