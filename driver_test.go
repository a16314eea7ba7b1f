package shapecache

import (
	"testing"

	"github.com/npillmayer/opentype/ot"
)

// stubShaper replays a queue of pre-built rawShapeOutput values, one per
// call, letting tests drive the bidi driver's projection logic without a
// real font or shaping engine.
type stubShaper struct {
	queue []rawShapeOutput
	calls []ShapeRequest
}

func newStubShaper(outputs ...rawShapeOutput) *stubShaper {
	return &stubShaper{queue: outputs}
}

func (s *stubShaper) Shape(req ShapeRequest) (rawShapeOutput, error) {
	s.calls = append(s.calls, req)
	if len(s.queue) == 0 {
		return rawShapeOutput{}, nil
	}
	out := s.queue[0]
	s.queue = s.queue[1:]
	return out, nil
}

// stubBidi returns a fixed resolution for every call, letting tests pin the
// bidi driver to a known run layout.
type stubBidi struct {
	level int
	runs  []BidiRun
	ok    bool
}

func (s stubBidi) Resolve(_ []uint16, _ DirectionMode) (int, []BidiRun, bool) {
	return s.level, s.runs, s.ok
}

func fix(f float32) Fixed26_6 { return Float32ToFixed26_6(f) }

// S1 LTR ASCII.
func TestDriverLTRAscii(t *testing.T) {
	shaper := newStubShaper(rawShapeOutput{
		Glyphs:      []ot.GlyphIndex{7, 8},
		Advances:    []Fixed26_6{fix(10.0), fix(5.0)},
		LogClusters: []uint16{0, 1},
		NumGlyphs:   2,
	})
	d := newDriver(stubBidi{level: 0, ok: true}, shaper)
	art := d.compute(FontConfig{}, []uint16{0x0048, 0x0069}, DefaultLTR)

	if len(art.Advances) != 2 || art.Advances[0] != 10.0 || art.Advances[1] != 5.0 {
		t.Fatalf("unexpected advances: %v", art.Advances)
	}
	if art.TotalAdvance != 15.0 {
		t.Fatalf("expected total advance 15.0, got %v", art.TotalAdvance)
	}
	if len(art.Glyphs) != 2 || art.Glyphs[0] != 7 || art.Glyphs[1] != 8 {
		t.Fatalf("unexpected glyphs: %v", art.Glyphs)
	}
}

// S2 RTL Arabic reversal.
func TestDriverRTLReversesGlyphs(t *testing.T) {
	shaper := newStubShaper(rawShapeOutput{
		Glyphs:      []ot.GlyphIndex{1, 2, 3},
		Advances:    []Fixed26_6{fix(6), fix(6), fix(6)},
		LogClusters: []uint16{0, 1, 2},
		NumGlyphs:   3,
	})
	d := newDriver(stubBidi{level: 1, ok: true}, shaper)
	art := d.compute(FontConfig{}, []uint16{0x0627, 0x0644, 0x0645}, RTL)

	wantGlyphs := []ot.GlyphIndex{3, 2, 1}
	for i, g := range wantGlyphs {
		if art.Glyphs[i] != g {
			t.Fatalf("glyph[%d]: want %d, got %d", i, g, art.Glyphs[i])
		}
	}
	for i, adv := range []float32{6, 6, 6} {
		if art.Advances[i] != adv {
			t.Fatalf("advance[%d]: want %v, got %v", i, adv, art.Advances[i])
		}
	}
	if art.TotalAdvance != 18.0 {
		t.Fatalf("expected total advance 18.0, got %v", art.TotalAdvance)
	}
}

// S3 Ligature clustering.
func TestDriverLigatureClustering(t *testing.T) {
	shaper := newStubShaper(rawShapeOutput{
		Glyphs:      []ot.GlyphIndex{42},
		Advances:    []Fixed26_6{fix(12)},
		LogClusters: []uint16{0, 0},
		NumGlyphs:   1,
	})
	d := newDriver(stubBidi{level: 0, ok: true}, shaper)
	art := d.compute(FontConfig{}, []uint16{'A', 'B'}, DefaultLTR)

	if art.Advances[0] != 12 || art.Advances[1] != 0 {
		t.Fatalf("unexpected advances: %v", art.Advances)
	}
	if art.TotalAdvance != 12 {
		t.Fatalf("expected total advance 12, got %v", art.TotalAdvance)
	}
	if len(art.Glyphs) != 1 {
		t.Fatalf("expected one glyph, got %d", len(art.Glyphs))
	}
}

// S6 Multi-run bidi.
func TestDriverMultiRunShiftsLogClusters(t *testing.T) {
	shaper := newStubShaper(
		rawShapeOutput{
			Glyphs:      []ot.GlyphIndex{1},
			Advances:    []Fixed26_6{fix(7)},
			LogClusters: []uint16{0, 0, 0},
			NumGlyphs:   1,
		},
		rawShapeOutput{
			Glyphs:      []ot.GlyphIndex{2},
			Advances:    []Fixed26_6{fix(4)},
			LogClusters: []uint16{0, 0},
			NumGlyphs:   1,
		},
	)
	runs := []BidiRun{
		{Start: 0, Length: 3, Dir: DirLTR},
		{Start: 3, Length: 2, Dir: DirLTR},
	}
	d := newDriver(stubBidi{level: 0, ok: true, runs: runs}, shaper)
	art := d.compute(FontConfig{}, make([]uint16, 5), LTR)

	if art.TotalAdvance != 11.0 {
		t.Fatalf("expected total advance 11.0, got %v", art.TotalAdvance)
	}
	if len(art.LogClusters) != 2 || art.LogClusters[0] != 0 || art.LogClusters[1] != 1 {
		t.Fatalf("expected second run's log cluster shifted by 1, got %v", art.LogClusters)
	}
}

func TestDriverForceDirectionBypassesBidi(t *testing.T) {
	shaper := newStubShaper(rawShapeOutput{
		Glyphs:      []ot.GlyphIndex{5},
		Advances:    []Fixed26_6{fix(3)},
		LogClusters: []uint16{0},
		NumGlyphs:   1,
	})
	d := newDriver(stubBidi{ok: false}, shaper) // bidi would refuse to even open
	art := d.compute(FontConfig{}, []uint16{'x'}, ForceLTR)
	if art.TotalAdvance != 3 {
		t.Fatalf("expected forced single run to shape successfully, got total %v", art.TotalAdvance)
	}
}

func TestDriverBidiStatusNotOKFallbackUsesLevel(t *testing.T) {
	shaper := newStubShaper(rawShapeOutput{
		Glyphs:      []ot.GlyphIndex{1},
		Advances:    []Fixed26_6{fix(1)},
		LogClusters: []uint16{0},
		NumGlyphs:   1,
	})
	// ok=true but no runs: the resolver opened but reported a status this
	// driver can't use, so it degrades to a single run at the paragraph
	// level instead of treating it as an open failure.
	d := newDriver(stubBidi{level: 1, ok: true, runs: nil}, shaper)
	d.compute(FontConfig{}, []uint16{'x'}, LTR)
	if len(shaper.calls) != 1 || !shaper.calls[0].IsRTL {
		t.Fatalf("expected degrade-to-single-run to resolve RTL from level 1, got calls=%v", shaper.calls)
	}
}

func TestDriverBidiOpenFailedFallbackUsesEquality(t *testing.T) {
	shaper := newStubShaper(rawShapeOutput{
		Glyphs:      []ot.GlyphIndex{1},
		Advances:    []Fixed26_6{fix(1)},
		LogClusters: []uint16{0},
		NumGlyphs:   1,
	})
	d := newDriver(stubBidi{ok: false}, shaper)
	d.compute(FontConfig{}, []uint16{'x'}, DefaultRTL)
	if len(shaper.calls) != 1 || !shaper.calls[0].IsRTL {
		t.Fatalf("expected fallback run to resolve RTL for DefaultRTL, got calls=%v", shaper.calls)
	}
}
