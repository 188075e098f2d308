// Package lock provides named, expiring locks for background jobs that must
// not run concurrently across replicas.
package lock

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type Locker interface {
	// TryAcquire takes key for ttl. The returned release func is nil when
	// the lock is held elsewhere.
	TryAcquire(ctx context.Context, key string, ttl time.Duration) (release func(), err error)
}

// RedisLocker uses SET NX with an owner token.
type RedisLocker struct {
	client *redis.Client
	prefix string
}

func NewRedisLocker(client *redis.Client) *RedisLocker {
	return &RedisLocker{client: client, prefix: "dayflow:lock:"}
}

// releaseScript deletes the key only if it is still owned by the caller.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

func (l *RedisLocker) TryAcquire(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	fullKey := l.prefix + key
	owner := uuid.NewString()

	ok, err := l.client.SetNX(ctx, fullKey, owner, ttl).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = releaseScript.Run(ctx, l.client, []string{fullKey}, owner).Err()
	}, nil
}

// MemoryLocker is the single-process fallback.
type MemoryLocker struct {
	mu   sync.Mutex
	held map[string]time.Time
	now  func() time.Time
}

func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{held: make(map[string]time.Time), now: time.Now}
}

func (l *MemoryLocker) TryAcquire(_ context.Context, key string, ttl time.Duration) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if until, ok := l.held[key]; ok && l.now().Before(until) {
		return nil, nil
	}
	until := l.now().Add(ttl)
	l.held[key] = until

	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if l.held[key].Equal(until) {
			delete(l.held, key)
		}
	}, nil
}
