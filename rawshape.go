package shapecache

import (
	"io"
	"unicode/utf8"

	"github.com/npillmayer/opentype/ot"
	"github.com/npillmayer/opentype/otquery"
	"github.com/npillmayer/opentype/otshape"
	"github.com/npillmayer/opentype/otshape/otarabic"
	"github.com/npillmayer/opentype/otshape/otcore"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/bidi"
)

// otShaper backs ComplexShaper with the streaming shaping engine of the
// external github.com/npillmayer/opentype module: otshape.Shaper, selecting between otcore (Latin-like/common
// scripts) and otarabic (Arabic-joining scripts) per request, the same
// engine pairing typeface.ShapeLatinText demonstrates for the single-script,
// single-direction case.
//
// otshape has no raw fixed-capacity buffer to overflow, so there is no retry
// loop to drive: the sink is an unbounded slice. What this adapter does
// instead is reconstruct the two ABI-shaped buffers (§4.3) the rest of the
// pipeline depends on from otshape's GlyphRecord stream — see
// assembleRawOutput.
type otShaper struct{}

// NewComplexShaper returns the production ComplexShaper implementation.
func NewComplexShaper() ComplexShaper {
	return otShaper{}
}

func (otShaper) Shape(req ShapeRequest) (rawShapeOutput, error) {
	if req.Count <= 0 {
		return rawShapeOutput{}, nil
	}
	runSlice := req.CodeUnits[req.Start : req.Start+req.Count]
	runes, cuOffset := decodeUTF16(runSlice)

	script := language.MustParseScript("Zyyy") // Common, per §4.3 script hint
	dir := bidi.LeftToRight
	if req.IsRTL {
		script = language.MustParseScript("Arab")
		dir = bidi.RightToLeft
	}
	params := otshape.Params{
		Font:      req.Font.Typeface,
		Direction: dir,
		Script:    script,
		Language:  language.Und,
	}
	src := &runeSliceSource{runes: runes}
	// Initial capacity mirrors the 2*(contextCount+2) heuristic of §4.3 step
	// 2, even though the sink cannot overflow the way a fixed C buffer can.
	sink := &glyphCollector{glyphs: make([]otshape.GlyphRecord, 0, 2*(req.ContextCount+2))}
	engine := otshape.NewShaper(otcore.New(), otarabic.New())
	bufOpts := otshape.BufferOptions{FlushBoundary: otshape.FlushOnRunBoundary}
	if err := engine.Shape(params, src, sink, bufOpts); err != nil {
		return rawShapeOutput{}, err
	}
	return assembleRawOutput(req.Font.Typeface, req.Font.TextSize, sink.glyphs, cuOffset, req.Count), nil
}

// runeSliceSource adapts a decoded rune slice to otshape.RuneSource.
type runeSliceSource struct {
	runes []rune
	pos   int
}

func (s *runeSliceSource) ReadRune() (rune, int, error) {
	if s.pos >= len(s.runes) {
		return 0, 0, io.EOF
	}
	r := s.runes[s.pos]
	s.pos++
	return r, utf8.RuneLen(r), nil
}

// glyphCollector adapts otshape.GlyphSink to a plain slice.
type glyphCollector struct {
	glyphs []otshape.GlyphRecord
}

func (c *glyphCollector) WriteGlyph(g otshape.GlyphRecord) error {
	c.glyphs = append(c.glyphs, g)
	return nil
}

// assembleRawOutput reconstructs the §4.3 ABI buffers from a stream of
// otshape.GlyphRecord values.
//
// Advances: otshape reports advances in font design units
// (otquery.GlyphMetrics-derived), so this adapter performs the pixel scaling
// itself from FontConfig.TextSize before converting to 26.6 fixed point.
//
// LogClusters: otshape.GlyphRecord.Cluster gives the forward mapping (glyph
// -> starting rune index within the run). The ABI this adapter emulates
// wants the inverse: a code-unit-indexed buffer where entry u names the
// glyph owning code unit u. Each glyph's cluster span runs from its own
// cluster start up to (but excluding) the next glyph's cluster start; code
// units within that span all map to the same glyph index.
func assembleRawOutput(font *ot.Font, textSize float32, records []otshape.GlyphRecord, cuOffset []int, count int) rawShapeOutput {
	numGlyphs := len(records)
	if numGlyphs == 0 {
		return rawShapeOutput{}
	}
	unitsPerEm := otquery.FontMetrics(font).UnitsPerEm
	if unitsPerEm == 0 {
		unitsPerEm = 1000
	}

	glyphs := make([]ot.GlyphIndex, numGlyphs)
	advances := make([]Fixed26_6, numGlyphs)
	for i, rec := range records {
		glyphs[i] = rec.GID
		px := float32(rec.Pos.XAdvance) * textSize / float32(unitsPerEm)
		advances[i] = Float32ToFixed26_6(px)
	}

	logClusters := make([]uint16, count)
	for g := numGlyphs - 1; g >= 0; g-- {
		runeIdx := clampIndex(int(records[g].Cluster), len(cuOffset))
		cuStart := cuOffset[runeIdx]
		cuEnd := count
		if g+1 < numGlyphs {
			nextRune := clampIndex(int(records[g+1].Cluster), len(cuOffset))
			cuEnd = cuOffset[nextRune]
		}
		for u := cuStart; u < cuEnd && u < count; u++ {
			logClusters[u] = uint16(g)
		}
	}
	return rawShapeOutput{Glyphs: glyphs, Advances: advances, LogClusters: logClusters, NumGlyphs: numGlyphs}
}

func clampIndex(i, n int) int {
	if n == 0 {
		return 0
	}
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
