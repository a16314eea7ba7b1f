package shapecache

import (
	"time"

	"github.com/npillmayer/opentype/ot"
	"golang.org/x/image/math/fixed"
)

// Fixed26_6 is a 26.6 fixed-point value, the representation advances travel
// in between the complex shaper and the artifact's float conversion. It
// converts cleanly to golang.org/x/image/math/fixed.Int26_6, the convention
// otlayout.PosItem already uses for XAdvance. An Artifact itself stores its
// advances as float32; Float32ToFixed26_6 converts them back.
type Fixed26_6 int32

// Float32 converts a fixed-point 26.6 value to a float32 pixel measurement,
// routing through golang.org/x/image/math/fixed's own 26.6 type rather than
// shifting the int32 by hand.
func (f Fixed26_6) Float32() float32 {
	return float32(f.ToImageFixed()) / 64.0
}

// ToImageFixed converts to golang.org/x/image/math/fixed's 26.6 type.
func (f Fixed26_6) ToImageFixed() fixed.Int26_6 {
	return fixed.Int26_6(f)
}

// Float32ToFixed26_6 converts a float32 pixel measurement to 26.6 fixed point.
func Float32ToFixed26_6(v float32) Fixed26_6 {
	return Fixed26_6(v * 64.0)
}

// Artifact is the immutable result of shaping one code-unit sequence: the
// per-code-unit advances, their total, the glyph list in visual order, and
// the code-unit-to-glyph cluster mapping. GetOrCompute records Elapsed right
// after the bidi driver returns it; once GetOrCompute has returned it, it is
// never mutated again — callers and the cache entry share it freely.
type Artifact struct {
	Advances     []float32
	TotalAdvance float32
	Glyphs       []ot.GlyphIndex
	LogClusters  []uint16
	Elapsed      time.Duration
}

// newArtifact allocates an artifact with capacity hints sized to the number
// of code units it will describe.
func newArtifact(codeUnitCount int) *Artifact {
	return &Artifact{
		Advances:    make([]float32, 0, codeUnitCount),
		Glyphs:      make([]ot.GlyphIndex, 0, codeUnitCount),
		LogClusters: make([]uint16, 0, codeUnitCount),
	}
}

// size reports the artifact's accounted byte size: a fixed overhead plus the
// capacities of its three buffers at their documented per-element widths.
func (a *Artifact) size() int {
	const fixedOverhead = 32
	return fixedOverhead + 4*cap(a.Advances) + 2*cap(a.Glyphs) + 2*cap(a.LogClusters)
}

// AdvancesSlice returns the advances for code units [start, start+count).
func (a *Artifact) AdvancesSlice(start, count int) []float32 {
	if start < 0 || count <= 0 || start+count > len(a.Advances) {
		return nil
	}
	return a.Advances[start : start+count]
}

// TotalAdvanceOf re-sums the advances for code units [start, start+count);
// unlike TotalAdvance, it is never cached and always reflects the requested
// sub-range exactly.
func (a *Artifact) TotalAdvanceOf(start, count int) float32 {
	var total float32
	for _, adv := range a.AdvancesSlice(start, count) {
		total += adv
	}
	return total
}

// GlyphRangeFor resolves a code-unit sub-range [start, start+count) to a
// contiguous glyph sub-range using log_clusters: the start index is the
// largest glyph index whose cluster is <= start, the end index is the
// largest glyph index whose cluster is <= start+count.
func (a *Artifact) GlyphRangeFor(start, count int) (glyphStart, glyphCount int) {
	if count == 0 {
		return 0, 0
	}
	endIndex := 0
	for i, cluster := range a.LogClusters {
		c := int(cluster)
		if c <= start {
			glyphStart = i
			endIndex = i
			continue
		}
		if c <= start+count {
			endIndex = i
		}
	}
	return glyphStart, endIndex - glyphStart + 1
}
