package bot

import (
	"sync"
	"time"

	"github.com/fwojciec/vipbot"
	"golang.org/x/time/rate"
)

var _ vipbot.RateLimiter = (*UserLimiter)(nil)

// DefaultMaxUsers is the default number of users a UserLimiter tracks.
const DefaultMaxUsers = 10000

// UserLimiter provides per-user rate limiting using token buckets, so one
// user cannot exhaust the model quota for everyone else.
//
// At most MaxUsers buckets are kept. When the limit is reached, buckets that
// have refilled completely are dropped first, since a full bucket behaves
// like a new one. If none has refilled, the least recently seen user is
// evicted.
type UserLimiter struct {
	// MaxUsers caps the number of tracked users. Defaults to DefaultMaxUsers.
	MaxUsers int

	mu       sync.Mutex
	limiters map[string]*userBucket
	rps      float64
	burst    int
}

type userBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewUserLimiter creates a UserLimiter allowing rps requests per second per
// user with the given burst.
func NewUserLimiter(rps float64, burst int) *UserLimiter {
	if burst < 1 {
		burst = 1
	}
	return &UserLimiter{
		MaxUsers: DefaultMaxUsers,
		limiters: make(map[string]*userBucket),
		rps:      rps,
		burst:    burst,
	}
}

// Allow reports whether the user may ask now.
func (l *UserLimiter) Allow(user string) bool {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.limiters[user]
	if !ok {
		if len(l.limiters) >= l.maxUsers() {
			l.evict(now)
		}
		b = &userBucket{limiter: rate.NewLimiter(rate.Limit(l.rps), l.burst)}
		l.limiters[user] = b
	}
	b.lastSeen = now

	return b.limiter.AllowN(now, 1)
}

// Len returns the number of tracked users.
func (l *UserLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}

// evict makes room for one more user. The caller holds l.mu.
func (l *UserLimiter) evict(now time.Time) {
	for user, b := range l.limiters {
		if b.limiter.TokensAt(now) >= float64(l.burst) {
			delete(l.limiters, user)
		}
	}
	if len(l.limiters) < l.maxUsers() {
		return
	}

	var oldest string
	var oldestSeen time.Time
	for user, b := range l.limiters {
		if oldest == "" || b.lastSeen.Before(oldestSeen) {
			oldest, oldestSeen = user, b.lastSeen
		}
	}
	delete(l.limiters, oldest)
}

func (l *UserLimiter) maxUsers() int {
	if l.MaxUsers > 0 {
		return l.MaxUsers
	}
	return DefaultMaxUsers
}
