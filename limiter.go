package vipbot

// RateLimiter limits how often a key (such as a user ID) may perform an
// expensive operation.
type RateLimiter interface {
	// Allow reports whether the key may proceed now, consuming a token if so.
	Allow(key string) bool
}
