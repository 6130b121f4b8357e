// Package ratelimit giới hạn request theo key (thường là client IP) bằng token bucket.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// KeyedLimiter giữ một token bucket riêng cho mỗi key
// Key không hoạt động quá idleTTL sẽ bị dọn bởi goroutine nền
type KeyedLimiter struct {
	mu      sync.Mutex
	entries map[string]*entry
	limit   rate.Limit
	burst   int
	idleTTL time.Duration
	now     func() time.Time

	done     chan struct{}
	stopOnce sync.Once
}

// PerMinute tạo limiter cho phép n request/phút/key, burst = n
func PerMinute(n int) *KeyedLimiter {
	return New(rate.Limit(float64(n)/60.0), n, 10*time.Minute)
}

func New(limit rate.Limit, burst int, idleTTL time.Duration) *KeyedLimiter {
	kl := &KeyedLimiter{
		entries: make(map[string]*entry),
		limit:   limit,
		burst:   burst,
		idleTTL: idleTTL,
		now:     time.Now,
		done:    make(chan struct{}),
	}

	go kl.cleanupLoop()

	return kl
}

// Allow không block, trả về false nếu key đã hết token
func (kl *KeyedLimiter) Allow(key string) bool {
	kl.mu.Lock()
	e, ok := kl.entries[key]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(kl.limit, kl.burst)}
		kl.entries[key] = e
	}
	e.lastSeen = kl.now()
	kl.mu.Unlock()

	return e.limiter.Allow()
}

// Len trả về số key đang được theo dõi
func (kl *KeyedLimiter) Len() int {
	kl.mu.Lock()
	defer kl.mu.Unlock()
	return len(kl.entries)
}

// Evict xóa các key idle lâu hơn idleTTL
func (kl *KeyedLimiter) Evict() {
	cutoff := kl.now().Add(-kl.idleTTL)

	kl.mu.Lock()
	defer kl.mu.Unlock()
	for key, e := range kl.entries {
		if e.lastSeen.Before(cutoff) {
			delete(kl.entries, key)
		}
	}
}

func (kl *KeyedLimiter) Stop() {
	kl.stopOnce.Do(func() {
		close(kl.done)
	})
}

func (kl *KeyedLimiter) cleanupLoop() {
	if kl.idleTTL <= 0 {
		<-kl.done
		return
	}

	ticker := time.NewTicker(kl.idleTTL)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			kl.Evict()
		case <-kl.done:
			return
		}
	}
}
