package shapecache

import (
	"fmt"
	"strings"

	"github.com/npillmayer/opentype/ot"
)

// Hinting is a small enum of hinting modes a caller may request, mirroring
// the hinting field paint-like configurations carry alongside a typeface.
type Hinting uint8

const (
	HintingNone Hinting = iota
	HintingSlight
	HintingNormal
	HintingFull
)

// DirectionMode selects how a shaping request's bidirectional resolution is
// driven. LTR/RTL are definite; DefaultLTR/DefaultRTL resolve neutral runs
// towards that direction but otherwise run full bidi resolution; ForceLTR and
// ForceRTL bypass the bidi resolver entirely and shape the whole input as one
// run in the forced direction. The production BidiEngine (textBidiEngine)
// does not keep LTR/RTL definite: it resolves LTR exactly like DefaultLTR and
// RTL exactly like DefaultRTL (see bidi.go).
type DirectionMode uint8

const (
	LTR DirectionMode = iota
	RTL
	DefaultLTR
	DefaultRTL
	ForceLTR
	ForceRTL
)

func (m DirectionMode) String() string {
	switch m {
	case LTR:
		return "LTR"
	case RTL:
		return "RTL"
	case DefaultLTR:
		return "DefaultLTR"
	case DefaultRTL:
		return "DefaultRTL"
	case ForceLTR:
		return "ForceLTR"
	case ForceRTL:
		return "ForceRTL"
	default:
		return "DirectionMode(?)"
	}
}

// FontConfig bundles everything about a shaping request that is not the text
// itself: the typeface to shape with, its pixel-space size/skew/scale, paint
// flags that influence shaping, and a hinting mode. Typeface identity is
// pointer equality on *ot.Font — fonts are parsed once and reused, never
// compared structurally.
type FontConfig struct {
	Typeface *ot.Font
	TextSize float32
	SkewX    float32
	ScaleX   float32
	Flags    uint32
	Hinting  Hinting
}

// Key canonically identifies a shaping request: font configuration, the exact
// code-unit sequence to shape, and the direction mode. A Key used only to
// look up the cache may borrow its code units from the caller; a Key held by
// the store must own a private copy, obtained via internalize.
type Key struct {
	font      FontConfig
	codeUnits []uint16
	owned     bool
	direction DirectionMode
}

// NewKey builds a key that borrows codeUnits. The caller must not mutate
// codeUnits while the key is in use for a lookup, and must call internalize
// before the key is retained past the call that produced it (i.e. before
// inserting it into the store).
func NewKey(font FontConfig, codeUnits []uint16, direction DirectionMode) Key {
	return Key{font: font, codeUnits: codeUnits, direction: direction}
}

// CodeUnits returns the key's code-unit sequence, borrowed or owned.
func (k *Key) CodeUnits() []uint16 {
	return k.codeUnits
}

// Font returns the key's font configuration.
func (k *Key) Font() FontConfig {
	return k.font
}

// Direction returns the key's direction mode.
func (k *Key) Direction() DirectionMode {
	return k.direction
}

// internalize transitions the key from borrowing its code units to owning a
// private copy. It is safe to call more than once (the second call is a
// no-op) but is contractually expected to be called exactly once, immediately
// before insertion into the store.
func (k *Key) internalize() {
	if k.owned {
		return
	}
	owned := make([]uint16, len(k.codeUnits))
	copy(owned, k.codeUnits)
	k.codeUnits = owned
	k.owned = true
}

// size reports the key's accounted byte size: a fixed per-key overhead plus
// two bytes per code unit.
func (k *Key) size() int {
	const fixedOverhead = 64 // font config fields + slice header + bookkeeping
	return fixedOverhead + 2*len(k.codeUnits)
}

// digest renders the key's full identity as a single comparable string, used
// as the store's map key. It is deterministic, includes every field the
// specification's equality/ordering contract names, and is read-only with
// respect to the key (safe to call on a borrowing key during lookup).
func (k *Key) digest() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%p|%g|%g|%g|%d|%d|%d|", k.font.Typeface, k.font.TextSize, k.font.SkewX,
		k.font.ScaleX, k.font.Flags, k.font.Hinting, k.direction)
	for _, u := range k.codeUnits {
		fmt.Fprintf(&b, "%04x", u)
	}
	return b.String()
}

// Equal reports whether two keys are identical under the specification's
// field-by-field equality contract.
func (k Key) Equal(other Key) bool {
	if k.font.Typeface != other.font.Typeface || k.font.TextSize != other.font.TextSize ||
		k.font.SkewX != other.font.SkewX || k.font.ScaleX != other.font.ScaleX ||
		k.font.Flags != other.font.Flags || k.font.Hinting != other.font.Hinting ||
		k.direction != other.direction || len(k.codeUnits) != len(other.codeUnits) {
		return false
	}
	for i, u := range k.codeUnits {
		if other.codeUnits[i] != u {
			return false
		}
	}
	return true
}
