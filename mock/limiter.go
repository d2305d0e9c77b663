package mock

import "github.com/fwojciec/vipbot"

var (
	_ vipbot.RateLimiter    = (*RateLimiter)(nil)
	_ vipbot.RefreshMonitor = (*RefreshMonitor)(nil)
)

// RateLimiter is a mock implementation of vipbot.RateLimiter.
type RateLimiter struct {
	AllowFn func(key string) bool
}

func (l *RateLimiter) Allow(key string) bool {
	return l.AllowFn(key)
}

// RefreshMonitor is a mock implementation of vipbot.RefreshMonitor.
type RefreshMonitor struct {
	StatusFn func() vipbot.RefreshStatus
}

func (m *RefreshMonitor) Status() vipbot.RefreshStatus {
	return m.StatusFn()
}
