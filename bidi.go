package shapecache

import "golang.org/x/text/unicode/bidi"

// Direction is the resolved direction of a single run, as reported by the
// bidi driver to the shaper adapter.
type Direction uint8

const (
	DirLTR Direction = iota
	DirRTL
)

// BidiRun is one visual run of a resolved paragraph, expressed in code-unit
// offsets (not rune offsets) so the rest of the pipeline never has to think
// in runes.
type BidiRun struct {
	Start, Length int
	Dir           Direction
}

// BidiEngine narrows the bidi resolver this package depends on to exactly the
// operations the driver needs, mirroring the open/set_paragraph/count_runs/
// get_visual_run surface named in SPEC_FULL.md §6 while staying idiomatic:
// there is no open/close lifecycle to manage because the backing
// golang.org/x/text/unicode/bidi.Paragraph is a stateless value type.
//
// Resolve returns ok=false when the resolver could not process the input at
// all (the equivalent of ubidi_open failing); callers fall back to a single
// run in that case.
type BidiEngine interface {
	Resolve(codeUnits []uint16, mode DirectionMode) (paragraphLevel int, runs []BidiRun, ok bool)
}

// textBidiEngine backs BidiEngine with golang.org/x/text/unicode/bidi.
type textBidiEngine struct{}

// NewBidiEngine returns the production BidiEngine implementation.
func NewBidiEngine() BidiEngine {
	return textBidiEngine{}
}

func (textBidiEngine) Resolve(codeUnits []uint16, mode DirectionMode) (int, []BidiRun, bool) {
	if len(codeUnits) == 0 {
		return 0, nil, true
	}
	runes, cuOffset := decodeUTF16(codeUnits)
	text := string(runes)

	var p bidi.Paragraph
	// golang.org/x/text/unicode/bidi has no notion of a definite numeric
	// paragraph level distinct from a default direction; LTR/DefaultLTR and
	// RTL/DefaultRTL collapse onto the same option here (see DESIGN.md, Open
	// Question: DirectionMode -> bidi engine mapping).
	opt := bidi.DefaultDirection(bidi.LeftToRight)
	if mode == RTL || mode == DefaultRTL {
		opt = bidi.DefaultDirection(bidi.RightToLeft)
	}
	if _, err := p.SetString(text, opt); err != nil {
		return 0, nil, false
	}
	level := 0
	if !p.IsLeftToRight() {
		level = 1
	}
	ordering, err := p.Order()
	if err != nil {
		return level, nil, false
	}
	n := ordering.NumRuns()
	if n == 0 {
		return level, nil, true
	}
	runs := make([]BidiRun, n)
	lastRune := len(runes) - 1
	for i := 0; i < n; i++ {
		r := ordering.Run(i)
		startRune, endRune := r.Pos()
		startCU := cuOffset[startRune]
		endCU := len(codeUnits)
		if endRune < lastRune {
			endCU = cuOffset[endRune+1]
		}
		dir := DirLTR
		if r.Direction() == bidi.RightToLeft {
			dir = DirRTL
		}
		runs[i] = BidiRun{Start: startCU, Length: endCU - startCU, Dir: dir}
	}
	return level, runs, true
}
