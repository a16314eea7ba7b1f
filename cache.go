package shapecache

import (
	"sync"
	"time"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'shapecache'.
func tracer() tracing.Trace {
	return tracing.Select("shapecache")
}

// DefaultMaxBytes is the default byte budget for a Cache: 256 KiB.
const DefaultMaxBytes = 256 * 1024

// DefaultStatsInterval is the default number of hits between periodic stats
// dumps.
const DefaultStatsInterval = 100

// Cache is the public text-shaping memoization facade: GetOrCompute looks up
// or computes an Artifact for a shaping request, subject to a byte budget
// enforced by evicting the oldest entries.
//
// All state is protected by a single mutex held for the entire body of
// GetOrCompute, including the miss-path shaping computation: a second caller
// requesting the same key while a miss is in flight blocks, then observes a
// hit. See SPEC_FULL.md §5 for the rationale.
type Cache struct {
	mu        sync.Mutex
	store     *store
	driver    *driver
	maxBytes  int
	curBytes  int
	stats     stats
	statsEach int
}

// New constructs a Cache with the given complex shaper and bidi engine,
// ready for use. Most callers should use Default instead.
func New(shaper ComplexShaper, bidiEngine BidiEngine) *Cache {
	c := &Cache{
		store:     newStore(),
		driver:    newDriver(bidiEngine, shaper),
		maxBytes:  DefaultMaxBytes,
		statsEach: DefaultStatsInterval,
		stats:     newStats(),
	}
	c.store.SetOnRemoved(func(k Key, a *Artifact) {
		c.curBytes -= k.size() + a.size()
	})
	return c
}

var (
	defaultOnce  sync.Once
	defaultCache *Cache
)

// Default returns the process-wide singleton Cache, constructing it with
// deferred initialization on first use, backed by this package's production
// ComplexShaper and BidiEngine implementations.
func Default() *Cache {
	defaultOnce.Do(func() {
		defaultCache = New(NewComplexShaper(), NewBidiEngine())
		tracer().Infof("shapecache: default cache initialized, max_bytes=%d", defaultCache.maxBytes)
	})
	return defaultCache
}

// GetOrCompute looks up an artifact for (font, code units, direction mode),
// computing and (subject to the byte budget) caching it on a miss. It always
// returns a usable artifact, on hit or miss — anomalies in the bidi/shaper
// layers are recovered internally per SPEC_FULL.md §7 and never surface
// here.
func (c *Cache) GetOrCompute(font FontConfig, codeUnits []uint16, mode DirectionMode) *Artifact {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := NewKey(font, codeUnits, mode)
	if artifact, hit := c.store.Get(&key); hit {
		c.stats.recordHit(artifact.Elapsed.Nanoseconds())
		c.maybeDumpStatsLocked()
		return artifact
	}

	start := time.Now()
	artifact := c.driver.compute(font, codeUnits, mode)
	artifact.Elapsed = time.Since(start)

	entryBytes := key.size() + artifact.size()
	if entryBytes > c.maxBytes {
		tracer().Debugf("%v: entry_bytes=%d max_bytes=%d", ErrOversizeEntry, entryBytes, c.maxBytes)
		return artifact
	}

	for c.curBytes+entryBytes > c.maxBytes && c.store.Len() > 0 {
		c.store.RemoveOldest()
	}

	key.internalize()
	c.store.Put(key, artifact, entryBytes)
	c.curBytes += entryBytes
	tracer().Debugf("shapecache: miss, cached entry_bytes=%d current_bytes=%d", entryBytes, c.curBytes)
	return artifact
}

// MaxBytes returns the configured byte budget.
func (c *Cache) MaxBytes() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.maxBytes
}

// SetMaxBytes changes the byte budget, immediately evicting oldest entries
// until current_bytes is at or under the new budget.
func (c *Cache) SetMaxBytes(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.maxBytes = n
	for c.curBytes > c.maxBytes && c.store.Len() > 0 {
		c.store.RemoveOldest()
	}
}

// CurrentBytes returns the sum of entry_bytes across present entries.
func (c *Cache) CurrentBytes() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.curBytes
}

// Len returns the number of entries currently held.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Len()
}

// Clear releases all held artifacts.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store.Clear()
	c.curBytes = 0
}

// DumpStats logs the statistics surface named in SPEC_FULL.md §6.
func (c *Cache) DumpStats() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dumpStatsLocked()
}

func (c *Cache) maybeDumpStatsLocked() {
	if c.statsEach > 0 && c.stats.hitCount%uint64(c.statsEach) == 0 {
		c.dumpStatsLocked()
	}
}
