// cache.go holds the current rule snapshot (the engine's L1 cache). The
// snapshot pointer is swapped atomically and never mutated, so readers need
// no lock. A stale flag defers the rebuild to the next request when an
// invalidation arrives without an immediate rebuild.
package engine

import (
	"log/slog"
	"sync/atomic"
)

type snapshotCache struct {
	current atomic.Pointer[Snapshot]
	stale   atomic.Bool
	version atomic.Uint64
}

// get returns the current snapshot and whether it must be rebuilt first.
func (c *snapshotCache) get() (*Snapshot, bool) {
	s := c.current.Load()
	return s, s == nil || c.stale.Load()
}

// put swaps in a freshly built snapshot.
func (c *snapshotCache) put(s *Snapshot) {
	c.current.Store(s)
	slog.Debug("theme snapshot swapped", "version", s.Version, "fingerprint", s.Fingerprint)
}

// beginBuild clears the stale flag before the rows are read. An
// invalidation that lands while the build is reading sets it again, so
// the next request rebuilds once more.
func (c *snapshotCache) beginBuild() uint64 {
	c.stale.Store(false)
	return c.version.Add(1)
}

// invalidate marks the snapshot stale.
func (c *snapshotCache) invalidate() {
	c.stale.Store(true)
	slog.Debug("theme snapshot invalidated")
}
