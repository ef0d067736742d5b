package payments

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	eventKeyPrefix  = "stripe:event:"
	DefaultEventTTL = 72 * time.Hour
)

// EventLedger remembers which webhook event ids were already dispatched.
type EventLedger interface {
	// MarkProcessed records id and reports whether this was its first sighting.
	MarkProcessed(ctx context.Context, eventID string) (bool, error)
}

// RedisLedger keeps event ids in Redis under stripe:event:<id> with a TTL.
type RedisLedger struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisLedger(client *redis.Client, ttl time.Duration) *RedisLedger {
	if ttl <= 0 {
		ttl = DefaultEventTTL
	}
	return &RedisLedger{client: client, ttl: ttl}
}

func (l *RedisLedger) MarkProcessed(ctx context.Context, eventID string) (bool, error) {
	first, err := l.client.SetNX(ctx, eventKeyPrefix+eventID, time.Now().Unix(), l.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("recording webhook event %s: %w", eventID, err)
	}
	return first, nil
}

// MemoryLedger is the single-process ledger used when Redis is not configured.
type MemoryLedger struct {
	mu   sync.Mutex
	seen map[string]time.Time
	ttl  time.Duration
	now  func() time.Time
}

func NewMemoryLedger(ttl time.Duration) *MemoryLedger {
	if ttl <= 0 {
		ttl = DefaultEventTTL
	}
	return &MemoryLedger{seen: make(map[string]time.Time), ttl: ttl, now: time.Now}
}

func (l *MemoryLedger) MarkProcessed(_ context.Context, eventID string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for id, expires := range l.seen {
		if !now.Before(expires) {
			delete(l.seen, id)
		}
	}

	if _, ok := l.seen[eventID]; ok {
		return false, nil
	}
	l.seen[eventID] = now.Add(l.ttl)
	return true, nil
}
