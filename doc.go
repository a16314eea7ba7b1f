// Package shapecache implements an in-process, size-bounded cache for text
// shaping results.
//
// Given a font, a sequence of UTF-16 code units and a bidirectional-resolution
// mode, GetOrCompute resolves bidi runs, drives a complex shaper per run, and
// returns an immutable Artifact holding per-code-unit advances, a glyph list in
// visual order and a code-unit-to-glyph cluster mapping. Results are memoized
// in a byte-budgeted LRU store keyed by the full shaping request, so repeated
// requests for the same text/font/mode combination are served without
// re-shaping.
//
// The cache is safe for concurrent use: a single mutex guards the whole
// lookup-or-compute operation, so a miss for a given key blocks concurrent
// callers requesting the same key rather than racing to compute it twice.
package shapecache
