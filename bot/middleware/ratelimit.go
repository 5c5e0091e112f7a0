package middleware

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// UserRateLimiter keeps one token bucket per Discord user
type UserRateLimiter struct {
	users map[string]*visitor
	mu    sync.Mutex
	rate  rate.Limit
	burst int
	ttl   time.Duration
	now   func() time.Time
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewUserRateLimiter creates a limiter allowing rps commands per second per
// user with the given burst. Idle users are forgotten after ttl.
func NewUserRateLimiter(rps float64, burst int, ttl time.Duration) *UserRateLimiter {
	return &UserRateLimiter{
		users: make(map[string]*visitor),
		rate:  rate.Limit(rps),
		burst: burst,
		ttl:   ttl,
		now:   time.Now,
	}
}

// Allow reports whether the user may run a command now
func (rl *UserRateLimiter) Allow(userID string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	v, exists := rl.users[userID]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.users[userID] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

// Sweep forgets users idle for longer than the ttl
func (rl *UserRateLimiter) Sweep() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	removed := 0
	for id, v := range rl.users {
		if now.Sub(v.lastSeen) > rl.ttl {
			delete(rl.users, id)
			removed++
		}
	}
	return removed
}

// Run sweeps every minute until ctx is done
func (rl *UserRateLimiter) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.Sweep()
		}
	}
}

// Tracked returns the number of users with a live bucket
func (rl *UserRateLimiter) Tracked() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.users)
}
