package hunkops

import (
	"fmt"

	"commitsmith/pkg/diffmodel"
	errs "commitsmith/pkg/errors"
)

// EditHunk builds a new hunk from h by dropping selected additions and
// demoting unselected removals to context.
//
// Both removeAdditions and keepRemovals are sets of indices into h.Lines
// itself — the position of the line in the hunk's body, not a count of
// how many Add or Remove lines precede it. Indexing by per-kind counters
// instead of by line-sequence position is the mistake this function
// exists to avoid: two Add lines separated by a Remove line do not
// share a counter-relative identity, but they always have distinct,
// stable positions in Lines.
//
// Every index in removeAdditions must name an Add line; every index in
// keepRemovals must name a Remove line. An Add line whose index is in
// removeAdditions is excluded from the result entirely. A Remove line
// whose index IS in keepRemovals is rewritten to Context (it is being
// kept in the working tree for this commit, so it can't be staged as a
// deletion here). Context lines pass through unchanged regardless of
// either set.
func EditHunk(h *diffmodel.Hunk, removeAdditions, keepRemovals map[int]bool) (*diffmodel.Hunk, error) {
	for idx := range removeAdditions {
		if idx < 0 || idx >= len(h.Lines) {
			return nil, errs.New(errs.CodeInvalidSelection,
				fmt.Sprintf("line index %d out of range for hunk %s", idx, h.ID)).
				WithContext("hunk_id", h.ID)
		}
		if h.Lines[idx].Kind != diffmodel.Add {
			return nil, errs.New(errs.CodeInvalidSelection,
				fmt.Sprintf("line index %d in removeAdditions is not an Add line in hunk %s", idx, h.ID)).
				WithContext("hunk_id", h.ID)
		}
	}
	for idx := range keepRemovals {
		if idx < 0 || idx >= len(h.Lines) {
			return nil, errs.New(errs.CodeInvalidSelection,
				fmt.Sprintf("line index %d out of range for hunk %s", idx, h.ID)).
				WithContext("hunk_id", h.ID)
		}
		if h.Lines[idx].Kind != diffmodel.Remove {
			return nil, errs.New(errs.CodeInvalidSelection,
				fmt.Sprintf("line index %d in keepRemovals is not a Remove line in hunk %s", idx, h.ID)).
				WithContext("hunk_id", h.ID)
		}
	}

	var newLines []diffmodel.Line
	for i, l := range h.Lines {
		switch l.Kind {
		case diffmodel.Add:
			if removeAdditions[i] {
				continue
			}
			newLines = append(newLines, l)
		case diffmodel.Remove:
			if keepRemovals[i] {
				newLines = append(newLines, diffmodel.Line{Kind: diffmodel.Context, Content: l.Content})
			} else {
				newLines = append(newLines, l)
			}
		default:
			newLines = append(newLines, l)
		}
	}

	edited := &diffmodel.Hunk{
		File:     h.File,
		Index:    h.Index,
		ID:       h.ID,
		OldStart: h.OldStart,
		NewStart: h.NewStart,
		Context:  h.Context,
		Lines:    newLines,
	}
	edited.RecalculateCounts()
	return edited, nil
}
