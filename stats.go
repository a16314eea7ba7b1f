package shapecache

import (
	"os"
	"time"
)

// stats tracks the debug statistics surface named in SPEC_FULL.md §6: since
// when the cache has been alive, how many hits it has served, and how many
// cumulative nanoseconds those hits saved by not recomputing.
type stats struct {
	startedAt  time.Time
	hitCount   uint64
	nanosSaved int64
}

func newStats() stats {
	return stats{startedAt: time.Now()}
}

func (s *stats) recordHit(savedNanos int64) {
	s.hitCount++
	s.nanosSaved += savedNanos
}

// dumpStatsLocked logs process id, uptime, entry count, configured and
// remaining byte budget, cumulative hit count and cumulative nanoseconds
// saved. Callers must hold c.mu.
func (c *Cache) dumpStatsLocked() {
	remaining := c.maxBytes - c.curBytes
	pct := 0.0
	if c.maxBytes > 0 {
		pct = 100 * float64(remaining) / float64(c.maxBytes)
	}
	tracer().Debugf(
		"shapecache stats: pid=%d uptime=%s entries=%d max_bytes=%d remaining_bytes=%d (%.1f%%) hits=%d nanos_saved=%d",
		os.Getpid(), time.Since(c.stats.startedAt), c.store.Len(), c.maxBytes, remaining, pct,
		c.stats.hitCount, c.stats.nanosSaved,
	)
}
