package store

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// GameClientState remembers which hole a session is on between visits
type GameClientState interface {
	Restore(ctx context.Context, sessionID string) (hole int, ok bool, err error)
	Persist(ctx context.Context, sessionID string, hole int) error
	Forget(ctx context.Context, sessionID string) error
}

type RedisClientState struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisClientState(client *redis.Client, prefix string, ttl time.Duration) *RedisClientState {
	return &RedisClientState{client: client, prefix: prefix, ttl: ttl}
}

func (r *RedisClientState) key(sessionID string) string {
	return fmt.Sprintf("%s:hole:%s", r.prefix, sessionID)
}

func (r *RedisClientState) Restore(ctx context.Context, sessionID string) (int, bool, error) {
	hole, err := r.client.Get(ctx, r.key(sessionID)).Int()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		log.Printf("[STORE] restore hole pointer for %s: %v", sessionID, err)
		return 0, false, err
	}
	return hole, true, nil
}

func (r *RedisClientState) Persist(ctx context.Context, sessionID string, hole int) error {
	return r.client.Set(ctx, r.key(sessionID), hole, r.ttl).Err()
}

func (r *RedisClientState) Forget(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, r.key(sessionID)).Err()
}

type MemoryClientState struct {
	mu    sync.Mutex
	holes map[string]int
}

func NewMemoryClientState() *MemoryClientState {
	return &MemoryClientState{holes: make(map[string]int)}
}

func (m *MemoryClientState) Restore(_ context.Context, sessionID string) (int, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	hole, ok := m.holes[sessionID]
	return hole, ok, nil
}

func (m *MemoryClientState) Persist(_ context.Context, sessionID string, hole int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.holes[sessionID] = hole
	return nil
}

func (m *MemoryClientState) Forget(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.holes, sessionID)
	return nil
}
