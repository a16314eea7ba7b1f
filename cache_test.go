package shapecache

import (
	"testing"

	"github.com/npillmayer/opentype/ot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sizedShaper returns a glyph/advance pair whose entry_bytes can be dialed
// in by the caller, independent of the font/text size — used to drive the
// eviction and oversize scenarios without depending on artifact.size()'s
// exact formula matching a hand-picked byte count.
type sizedShaper struct {
	glyphCount int
}

func (s sizedShaper) Shape(req ShapeRequest) (rawShapeOutput, error) {
	out := rawShapeOutput{
		Glyphs:      make([]ot.GlyphIndex, s.glyphCount),
		Advances:    make([]Fixed26_6, s.glyphCount),
		LogClusters: make([]uint16, req.Count),
		NumGlyphs:   s.glyphCount,
	}
	return out, nil
}

func newTestCache(glyphCount, maxBytes int) *Cache {
	c := New(sizedShaper{glyphCount: glyphCount}, stubBidi{ok: true})
	c.SetMaxBytes(maxBytes)
	return c
}

// S4 Eviction.
func TestCacheEvictsOldestOnOverBudget(t *testing.T) {
	// Pick a cache/text combination whose entry_bytes is known and small
	// enough that three entries exceed a tight budget but two fit.
	c := newTestCache(1, 1000)
	k1 := []uint16{1, 2}
	k2 := []uint16{3, 4}
	k3 := []uint16{5, 6}

	c.GetOrCompute(FontConfig{}, k1, LTR)
	entryBytes := c.CurrentBytes()
	require.Greater(t, entryBytes, 0)
	c.SetMaxBytes(2 * entryBytes) // room for exactly two entries

	c.GetOrCompute(FontConfig{}, k2, LTR)
	assert.Equal(t, 2, c.Len())

	c.GetOrCompute(FontConfig{}, k3, LTR)

	assert.Equal(t, 2, c.Len(), "store should hold exactly two entries after eviction")
	k1Key := NewKey(FontConfig{}, k1, LTR)
	_, stillPresent := c.store.Get(&k1Key)
	assert.False(t, stillPresent, "expected the oldest entry (k1) to be evicted")
}

// S5 Oversize bypass.
func TestCacheOversizeEntryBypassesStore(t *testing.T) {
	c := newTestCache(1, 32) // tiny budget, any real entry exceeds it
	assert.Equal(t, 0, c.Len())

	art := c.GetOrCompute(FontConfig{}, []uint16{1, 2, 3}, LTR)
	require.NotNil(t, art)
	assert.Equal(t, 0, c.Len(), "oversize entry must not be admitted")
	assert.Equal(t, 0, c.CurrentBytes())
}

func TestCacheHitIncrementsHitCount(t *testing.T) {
	c := newTestCache(1, DefaultMaxBytes)
	codeUnits := []uint16{1, 2}

	first := c.GetOrCompute(FontConfig{}, codeUnits, LTR)
	require.NotNil(t, first)
	before := c.stats.hitCount

	second := c.GetOrCompute(FontConfig{}, codeUnits, LTR)
	assert.Equal(t, before+1, c.stats.hitCount)
	assert.Equal(t, first.TotalAdvance, second.TotalAdvance)
}

func TestSetMaxBytesEvictsDownToNewBudget(t *testing.T) {
	c := newTestCache(1, DefaultMaxBytes)
	c.GetOrCompute(FontConfig{}, []uint16{1}, LTR)
	c.GetOrCompute(FontConfig{}, []uint16{2}, LTR)
	c.GetOrCompute(FontConfig{}, []uint16{3}, LTR)
	require.Equal(t, 3, c.Len())

	c.SetMaxBytes(c.CurrentBytes() / 2)
	assert.LessOrEqual(t, c.CurrentBytes(), c.MaxBytes())
}

func TestCacheClearReleasesEverything(t *testing.T) {
	c := newTestCache(1, DefaultMaxBytes)
	c.GetOrCompute(FontConfig{}, []uint16{1}, LTR)
	c.Clear()
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, 0, c.CurrentBytes())
}
