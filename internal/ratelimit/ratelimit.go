// Package ratelimit implements the per-caller budgets consumed by the
// gateway and the HTTP layer. Each bucket has its own rate and burst;
// keys within a bucket are independent token buckets.
package ratelimit

import (
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/time/rate"
)

// Buckets used by the gateway and the HTTP layer.
const (
	BucketRcon      = "rcon"
	BucketInventory = "inventory"
	BucketBroadcast = "broadcast"
	BucketHTTP      = "http"
)

// Quota defines one bucket's budget: Count events per Window.
type Quota struct {
	Window time.Duration
	Count  int
}

// Limiter is a thread-safe registry of token buckets keyed by
// (bucket, caller). Unknown buckets always allow.
type Limiter struct {
	quotas   map[string]Quota
	limiters map[uint64]*entry
	mu       sync.Mutex
}

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// New creates a Limiter with the given per-bucket quotas and starts a
// background sweep of idle entries.
func New(quotas map[string]Quota) *Limiter {
	l := &Limiter{
		quotas:   quotas,
		limiters: make(map[uint64]*entry),
	}

	go l.gc()

	return l
}

// Allow consumes one token from the (bucket, key) budget and reports
// whether the request may proceed.
func (l *Limiter) Allow(bucket, key string) bool {
	quota, ok := l.quotas[bucket]
	if !ok {
		return true
	}

	// Hash the composite key so the map stores compact uint64 keys.
	h := xxhash.New()
	_, _ = h.WriteString(bucket)
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(key)
	id := h.Sum64()

	l.mu.Lock()
	e, found := l.limiters[id]
	if !found {
		limit := rate.Limit(float64(quota.Count) / quota.Window.Seconds())
		e = &entry{limiter: rate.NewLimiter(limit, quota.Count)}
		l.limiters[id] = e
	}
	e.lastSeen = time.Now()
	limiter := e.limiter
	l.mu.Unlock()

	return limiter.Allow()
}

// gc drops entries not seen for a while so the map stays bounded.
func (l *Limiter) gc() {
	for {
		time.Sleep(5 * time.Minute)

		l.mu.Lock()
		now := time.Now()
		for id, e := range l.limiters {
			if now.Sub(e.lastSeen) > 10*time.Minute {
				delete(l.limiters, id)
			}
		}
		l.mu.Unlock()
	}
}
