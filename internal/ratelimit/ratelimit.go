// Package ratelimit counts requests per key in fixed windows.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type Memory struct {
	limit   int
	window  time.Duration
	now     func() time.Time
	mu      sync.Mutex
	buckets map[string]*bucket
}

type bucket struct {
	count int
	reset time.Time
}

func NewMemory(limit int, window time.Duration) *Memory {
	return &Memory{
		limit:   limit,
		window:  window,
		now:     time.Now,
		buckets: make(map[string]*bucket),
	}
}

func (rl *Memory) Allow(_ context.Context, key string) (bool, error) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	b, ok := rl.buckets[key]
	if !ok || now.After(b.reset) {
		rl.buckets[key] = &bucket{count: 1, reset: now.Add(rl.window)}
		rl.sweep(now)
		return true, nil
	}
	if b.count >= rl.limit {
		return false, nil
	}
	b.count++
	return true, nil
}

// sweep drops expired buckets once the map grows large.
func (rl *Memory) sweep(now time.Time) {
	if len(rl.buckets) < 1024 {
		return
	}
	for key, b := range rl.buckets {
		if now.After(b.reset) {
			delete(rl.buckets, key)
		}
	}
}

// Redis shares counters between instances. Keys expire with their window.
type Redis struct {
	client *redis.Client
	limit  int
	window time.Duration
	prefix string
}

func NewRedis(addr, password string, db, limit int, window time.Duration) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &Redis{client: client, limit: limit, window: window, prefix: "ratelimit:"}
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Allow(ctx context.Context, key string) (bool, error) {
	k := r.prefix + key
	pipe := r.client.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.ExpireNX(ctx, k, r.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}
	return incr.Val() <= int64(r.limit), nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}
