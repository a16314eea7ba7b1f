package shapecache

import (
	"unicode"
	"unicode/utf16"
)

// decodeUTF16 decodes a sequence of UTF-16 code units into runes, along with
// the code-unit offset at which each rune begins. The mapping is needed
// whenever a rune-indexed result (bidi run positions, shaper cluster indices)
// must be translated back into the code-unit space the rest of this package
// operates in.
func decodeUTF16(codeUnits []uint16) (runes []rune, cuOffset []int) {
	runes = make([]rune, 0, len(codeUnits))
	cuOffset = make([]int, 0, len(codeUnits))
	i := 0
	for i < len(codeUnits) {
		r := rune(codeUnits[i])
		size := 1
		if utf16.IsSurrogate(r) && i+1 < len(codeUnits) {
			if r2 := utf16.DecodeRune(r, rune(codeUnits[i+1])); r2 != unicode.ReplacementChar {
				r = r2
				size = 2
			}
		}
		runes = append(runes, r)
		cuOffset = append(cuOffset, i)
		i += size
	}
	return runes, cuOffset
}
