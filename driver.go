package shapecache

// driver orchestrates bidi resolution and per-run shaping, assembling an
// Artifact per SPEC_FULL.md §4.4. It is the bidi driver component.
type driver struct {
	bidi   BidiEngine
	shaper ComplexShaper
}

func newDriver(bidiEngine BidiEngine, shaper ComplexShaper) *driver {
	return &driver{bidi: bidiEngine, shaper: shaper}
}

// compute drives bidi resolution (unless the mode forces a single direction)
// and shapes every resulting run into a freshly allocated Artifact.
func (d *driver) compute(font FontConfig, codeUnits []uint16, mode DirectionMode) *Artifact {
	contextCount := len(codeUnits)
	art := newArtifact(contextCount)
	if contextCount == 0 {
		return art
	}

	switch mode {
	case ForceLTR:
		d.shapeRun(art, font, codeUnits, 0, contextCount, false)
		return art
	case ForceRTL:
		d.shapeRun(art, font, codeUnits, 0, contextCount, true)
		return art
	}

	level, runs, ok := d.bidi.Resolve(codeUnits, mode)
	if !ok {
		tracer().Errorf("%v, falling back to a single run", ErrBidiOpenFailed)
		// The intent here is equality, not assignment: whether the caller
		// asked for RTL (definite or default). See DESIGN.md for the
		// correction of the historical assignment-typo this branch is
		// modeled on.
		isRTL := mode == RTL || mode == DefaultRTL
		d.shapeRun(art, font, codeUnits, 0, contextCount, isRTL)
		return art
	}
	if len(runs) == 0 {
		tracer().Errorf("%v, degrading to a single run", ErrBidiStatusNotOK)
		isRTL := level&1 == 1
		d.shapeRun(art, font, codeUnits, 0, contextCount, isRTL)
		return art
	}
	if len(runs) == 1 {
		d.shapeRun(art, font, codeUnits, 0, contextCount, level&1 == 1)
		return art
	}
	for _, run := range runs {
		d.shapeRun(art, font, codeUnits, run.Start, run.Length, run.Dir == DirRTL)
	}
	return art
}

// shapeRun invokes the shaper adapter for one run and projects its output
// into the artifact per the §4.4 projection rules: advances, glyphs (visual
// order), and log_clusters (shifted to stay unique across runs).
func (d *driver) shapeRun(art *Artifact, font FontConfig, codeUnits []uint16, start, count int, isRTL bool) {
	if count == 0 {
		return
	}
	req := ShapeRequest{
		Font:         font,
		CodeUnits:    codeUnits,
		Start:        start,
		Count:        count,
		ContextCount: len(codeUnits),
		IsRTL:        isRTL,
	}
	out, err := d.shaper.Shape(req)
	if err != nil {
		tracer().Errorf("shaper adapter failed: %v", err)
		for i := 0; i < count; i++ {
			art.Advances = append(art.Advances, 0)
		}
		return
	}
	if out.NumGlyphs == 0 || out.Advances == nil {
		tracer().Debugf("%v", ErrShaperEmpty)
		for i := 0; i < count; i++ {
			art.Advances = append(art.Advances, 0)
		}
		return
	}

	// Advances: read advances[log_clusters[0]], then for each subsequent
	// position emit 0 if it shares a cluster with its predecessor, else
	// read advances[log_clusters[i]] and accumulate the run total.
	runTotal := out.Advances[out.LogClusters[0]].Float32()
	art.Advances = append(art.Advances, runTotal)
	for i := 1; i < count; i++ {
		if out.LogClusters[i] == out.LogClusters[i-1] {
			art.Advances = append(art.Advances, 0)
			continue
		}
		adv := out.Advances[out.LogClusters[i]].Float32()
		art.Advances = append(art.Advances, adv)
		runTotal += adv
	}
	art.TotalAdvance += runTotal

	// Glyphs: natural order, or reversed for RTL (visual-to-logical
	// reversal within the run).
	if isRTL {
		for i := out.NumGlyphs - 1; i >= 0; i-- {
			art.Glyphs = append(art.Glyphs, out.Glyphs[i])
		}
	} else {
		art.Glyphs = append(art.Glyphs, out.Glyphs[:out.NumGlyphs]...)
	}

	// Log clusters: append the run's first num_glyphs log_clusters entries,
	// shifted by the artifact's current length so cluster indices stay
	// unique across runs. This reads the same code-unit-indexed buffer
	// positionally for i < num_glyphs, faithfully reproducing the source
	// ABI's reuse of a single buffer for both purposes (see DESIGN.md).
	shift := uint16(len(art.LogClusters))
	n := out.NumGlyphs
	if n > len(out.LogClusters) {
		n = len(out.LogClusters)
	}
	for i := 0; i < n; i++ {
		art.LogClusters = append(art.LogClusters, out.LogClusters[i]+shift)
	}
}
