package shapecache

import "errors"

// Error kinds recovered internally while computing an artifact. None of these
// ever escape GetOrCompute: every anomaly they name has a documented,
// best-effort fallback and the caller always receives a usable artifact.
var (
	// ErrBidiOpenFailed means the bidi resolver could not be constructed for
	// a paragraph; the driver falls back to a single run.
	ErrBidiOpenFailed = errors.New("shapecache: bidi resolver unavailable")
	// ErrBidiStatusNotOK means the bidi resolver ran but reported a
	// non-usable status; the driver degrades to a single run at the
	// resolved paragraph level.
	ErrBidiStatusNotOK = errors.New("shapecache: bidi resolver reported a bad status")
	// ErrShaperEmpty means the complex shaper produced zero glyphs or a nil
	// advances buffer for a run; the driver emits zero advances for it.
	ErrShaperEmpty = errors.New("shapecache: shaper returned no glyphs")
	// ErrOversizeEntry means a computed entry exceeds the configured byte
	// budget on its own; it is returned to the caller but never cached.
	ErrOversizeEntry = errors.New("shapecache: entry exceeds max_bytes, not admitted")
)
