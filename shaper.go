package shapecache

import "github.com/npillmayer/opentype/ot"

// ShapeRequest describes one complex-shaper invocation: a run [Start,
// Start+Count) within a context of ContextCount code units belonging to
// codeUnits, with a resolved direction.
type ShapeRequest struct {
	Font         FontConfig
	CodeUnits    []uint16 // the full input the run is a sub-range of
	Start, Count int
	ContextCount int
	IsRTL        bool
}

// rawShapeOutput mirrors the low-level complex-shaper ABI named in
// SPEC_FULL.md §4.3/§6: a glyph-indexed Advances buffer, a code-unit-indexed
// LogClusters buffer mapping each code unit in the run to the glyph that
// owns it, and the glyph list itself. NumGlyphs == 0 signals the empty-result
// policy (§4.3): callers emit zero advances and append nothing.
type rawShapeOutput struct {
	Glyphs      []ot.GlyphIndex
	Advances    []Fixed26_6
	LogClusters []uint16
	NumGlyphs   int
}

// ComplexShaper is the external collaborator the shaper adapter drives: a
// synchronous shape call over one run, returning the low-level ABI outputs
// the bidi driver projects into an Artifact's advances/glyphs/log_clusters.
//
// A production ComplexShaper (otShaper, see rawshape.go) streams glyph
// records from otshape.Shaper (external opentype module) and reconstructs the ABI
// buffers from that stream. Tests supply a stub implementation to exercise
// the literal scenarios named in SPEC_FULL.md §8.
type ComplexShaper interface {
	Shape(req ShapeRequest) (rawShapeOutput, error)
}
