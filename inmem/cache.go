// Package inmem provides in-memory implementations of vipbot services.
package inmem

import (
	"sync/atomic"

	"github.com/fwojciec/vipbot"
)

// Ensure Cache implements vipbot.Catalog at compile time.
var _ vipbot.Catalog = (*Cache)(nil)

// Cache holds the current catalog snapshot behind an atomic pointer.
// Readers never block and always see a whole snapshot. Replace is the only
// mutation.
type Cache struct {
	snap atomic.Pointer[vipbot.Snapshot]
}

// NewCache creates a Cache holding an empty snapshot.
func NewCache() *Cache {
	c := &Cache{}
	c.snap.Store(&vipbot.Snapshot{})
	return c
}

// Snapshot returns the last adopted snapshot.
func (c *Cache) Snapshot() *vipbot.Snapshot {
	return c.snap.Load()
}

// Replace adopts s unless it is empty, in which case the current snapshot
// is kept.
func (c *Cache) Replace(s *vipbot.Snapshot) bool {
	if s.IsEmpty() {
		return false
	}
	c.snap.Store(s)
	return true
}
