// Package hunkops splits hunks at context gaps, edits them to drop
// additions or demote removals to context, selects hunks/lines by id, and
// regenerates valid patch text from the result. Every operation produces
// a freshly constructed Hunk; inputs are never mutated in place.
package hunkops

import (
	"fmt"

	"commitsmith/pkg/diffmodel"
)

type run struct {
	isContext bool
	lines     []diffmodel.Line
}

func buildRuns(lines []diffmodel.Line) []run {
	var runs []run
	for _, l := range lines {
		isCtx := l.Kind == diffmodel.Context
		if len(runs) > 0 && runs[len(runs)-1].isContext == isCtx {
			last := &runs[len(runs)-1]
			last.lines = append(last.lines, l)
			continue
		}
		runs = append(runs, run{isContext: isCtx, lines: []diffmodel.Line{l}})
	}
	return runs
}

// qualifyingGaps returns the indices, into runs, of interior context runs
// (bridging a change run on both sides) at least minContextGap lines long.
func qualifyingGaps(runs []run, minContextGap int) map[int]bool {
	gaps := make(map[int]bool)
	for i, r := range runs {
		if !r.isContext {
			continue
		}
		interior := i != 0 && i != len(runs)-1
		if interior && len(r.lines) >= minContextGap {
			gaps[i] = true
		}
	}
	return gaps
}

// IsSplittable reports whether h can be split under minContextGap: there
// must be change lines on both sides of at least one run of
// minContextGap or more consecutive context lines.
func IsSplittable(h *diffmodel.Hunk, minContextGap int) bool {
	if minContextGap < 1 {
		minContextGap = 1
	}
	runs := buildRuns(h.Lines)
	return len(qualifyingGaps(runs, minContextGap)) > 0
}

// SplitHunk splits h at every qualifying context gap, returning the
// ordered sub-hunks that together cover the same region. A non-splittable
// hunk returns []*Hunk{h}.
func SplitHunk(h *diffmodel.Hunk, minContextGap int) []*diffmodel.Hunk {
	if minContextGap < 1 {
		minContextGap = 1
	}
	runs := buildRuns(h.Lines)
	gaps := qualifyingGaps(runs, minContextGap)
	if len(gaps) == 0 {
		return []*diffmodel.Hunk{h}
	}

	var result []*diffmodel.Hunk

	oldPos, newPos := h.OldStart, h.NewStart
	var curLines []diffmodel.Line
	curOldStart, curNewStart := 0, 0
	started := false

	appendLine := func(l diffmodel.Line) {
		if !started {
			curOldStart, curNewStart = oldPos, newPos
			started = true
		}
		curLines = append(curLines, l)
		switch l.Kind {
		case diffmodel.Context:
			oldPos++
			newPos++
		case diffmodel.Remove:
			oldPos++
		case diffmodel.Add:
			newPos++
		}
	}

	finalize := func() {
		if !started {
			return
		}
		subIndex := len(result)
		sub := &diffmodel.Hunk{
			File:     h.File,
			Index:    h.Index,
			ID:       fmt.Sprintf("%s.%d", h.ID, subIndex),
			OldStart: curOldStart,
			NewStart: curNewStart,
			Context:  h.Context,
			Lines:    curLines,
		}
		sub.RecalculateCounts()
		result = append(result, sub)
		curLines = nil
		started = false
	}

	for i, r := range runs {
		if gaps[i] {
			head := r.lines[:minContextGap]
			tail := r.lines[minContextGap:]
			for _, l := range head {
				appendLine(l)
			}
			finalize()
			for _, l := range tail {
				appendLine(l)
			}
			continue
		}
		for _, l := range r.lines {
			appendLine(l)
		}
	}
	finalize()

	return result
}
