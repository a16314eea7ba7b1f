package main

import (
	"unicode/utf16"

	"github.com/npillmayer/shapecache"
	"github.com/pterm/pterm"
)

// Additional op-codes for exercising the shaping cache from the REPL,
// appended after the teacher's original command set.
const (
	SHAPE = PRINT + 1 + iota
	CACHESTATS
	CLEARCACHE
)

func init() {
	opMap["shape"] = SHAPE
	opMap["cachestats"] = CACHESTATS
	opMap["clearcache"] = CLEARCACHE
	opNames = append(opNames, "shape", "cachestats", "clearcache")
	commandFn[SHAPE] = shapeOp
	commandFn[CACHESTATS] = cacheStatsOp
	commandFn[CLEARCACHE] = clearCacheOp
}

// shapeOp shapes its argument text against the currently loaded font through
// the default shaping cache, printing the resulting glyphs, advances and
// total advance.
func shapeOp(intp *Intp, op *Op) (error, bool) {
	if intp.font == nil {
		pterm.Error.Println("no font loaded")
		return nil, false
	}
	text, ok := op.hasArg()
	if !ok {
		pterm.Error.Println("usage: shape:<text>")
		return nil, false
	}
	codeUnits := utf16.Encode([]rune(text))
	cfg := shapecache.FontConfig{Typeface: intp.font, TextSize: 12}
	art := shapecache.Default().GetOrCompute(cfg, codeUnits, shapecache.DefaultLTR)
	pterm.Printf("glyphs=%v advances=%v total=%.2f\n", art.Glyphs, art.Advances, art.TotalAdvance)
	return nil, false
}

// cacheStatsOp dumps the shaping cache's debug statistics surface.
func cacheStatsOp(intp *Intp, op *Op) (error, bool) {
	c := shapecache.Default()
	c.DumpStats()
	pterm.Printf("entries=%d current_bytes=%d max_bytes=%d\n", c.Len(), c.CurrentBytes(), c.MaxBytes())
	return nil, false
}

// clearCacheOp empties the shaping cache.
func clearCacheOp(intp *Intp, op *Op) (error, bool) {
	shapecache.Default().Clear()
	pterm.Info.Println("cache cleared")
	return nil, false
}
