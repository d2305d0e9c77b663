package mock

import "github.com/fwojciec/vipbot"

var _ vipbot.Catalog = (*Catalog)(nil)

// Catalog is a mock implementation of vipbot.Catalog.
type Catalog struct {
	SnapshotFn func() *vipbot.Snapshot
	ReplaceFn  func(s *vipbot.Snapshot) bool
}

func (c *Catalog) Snapshot() *vipbot.Snapshot {
	return c.SnapshotFn()
}

func (c *Catalog) Replace(s *vipbot.Snapshot) bool {
	return c.ReplaceFn(s)
}
