package executor

import (
	"context"

	"commitsmith/pkg/diffmodel"
	errs "commitsmith/pkg/errors"
	"commitsmith/pkg/hunkops"
	"commitsmith/pkg/stagingplan"
)

// ExecResult is the structured outcome of Execute: on any failure,
// StagedHunks still reports exactly what made it into the index before
// the failing selection was reached, per spec.md §4.4/§5's ordering
// guarantee that prior successful applications are never rolled back
// automatically.
type ExecResult struct {
	Success     bool
	StagedHunks []string
	Err         *errs.AgentError
}

// Execute applies plan's selections to parsed's hunks against vcs, in
// document order, stopping at the first failure.
func Execute(ctx context.Context, parsed *diffmodel.ParsedDiff, plan *stagingplan.StagingPlan, vcs VCS) *ExecResult {
	result := &ExecResult{Success: true}

	for _, sel := range plan.Selections {
		if sel.Mode == stagingplan.None {
			continue
		}

		h := parsed.GetHunk(sel.HunkID)
		if h == nil {
			result.Success = false
			result.Err = errs.HunkNotFoundError(sel.HunkID)
			return result
		}

		edited, err := computeEditedHunk(h, sel)
		if err != nil {
			result.Success = false
			if ae, ok := err.(*errs.AgentError); ok {
				result.Err = ae
			} else {
				result.Err = errs.InternalError(err.Error())
			}
			return result
		}

		patchText := hunkops.GenerateForHunk(edited)

		checkRes, checkErr := vcs.CheckPatch(ctx, patchText)
		if checkErr != nil {
			result.Success = false
			result.Err = errs.VCSRejectedError(h.ID, checkErr.Error())
			return result
		}
		if !checkRes.Applies {
			result.Success = false
			result.Err = errs.VCSRejectedError(h.ID, checkRes.ToolError)
			return result
		}

		applyRes, applyErr := vcs.ApplyPatchToIndex(ctx, patchText)
		if applyErr != nil {
			result.Success = false
			result.Err = errs.ApplyFailedError(h.ID, applyErr.Error())
			return result
		}
		if !applyRes.Success {
			result.Success = false
			result.Err = errs.ApplyFailedError(h.ID, applyRes.ToolError)
			return result
		}

		result.StagedHunks = append(result.StagedHunks, h.ID)
	}

	return result
}

// computeEditedHunk builds the hunk that should actually be staged for
// one selection:
//
//   - Mode All with no line edits: the hunk as-is.
//   - Otherwise: apply any line-content edits first (a content swap,
//     never a reordering, so original line-sequence indices still line
//     up), then compute removeAdditions/keepRemovals from the
//     selection's include-sets — for Mode All every addition/removal
//     index counts as included even if the document left individual
//     line checkboxes unmarked, since "include entire hunk" means
//     exactly that — and call EditHunk.
func computeEditedHunk(h *diffmodel.Hunk, sel stagingplan.HunkSelection) (*diffmodel.Hunk, error) {
	if sel.Mode == stagingplan.All && len(sel.LineEdits) == 0 {
		return h, nil
	}

	base := h
	if len(sel.LineEdits) > 0 {
		base = applyLineEdits(h, sel.LineEdits)
	}

	if sel.Mode == stagingplan.All {
		return base, nil
	}

	removeAdditions := make(map[int]bool)
	keepRemovals := make(map[int]bool)
	for i, l := range base.Lines {
		switch l.Kind {
		case diffmodel.Add:
			if !sel.IncludeAdditions[i] {
				removeAdditions[i] = true
			}
		case diffmodel.Remove:
			if !sel.IncludeRemovals[i] {
				keepRemovals[i] = true
			}
		}
	}

	return hunkops.EditHunk(base, removeAdditions, keepRemovals)
}

// applyLineEdits returns a new hunk with the content of the lines named
// in edits replaced. Kind and line count are unchanged, so indices into
// the result still mean the same position they meant in h.
func applyLineEdits(h *diffmodel.Hunk, edits map[int]string) *diffmodel.Hunk {
	lines := make([]diffmodel.Line, len(h.Lines))
	copy(lines, h.Lines)
	for idx, content := range edits {
		if idx < 0 || idx >= len(lines) {
			continue
		}
		lines[idx] = diffmodel.Line{Kind: lines[idx].Kind, Content: content}
	}
	edited := &diffmodel.Hunk{
		File:     h.File,
		Index:    h.Index,
		ID:       h.ID,
		OldStart: h.OldStart,
		NewStart: h.NewStart,
		Context:  h.Context,
		Lines:    lines,
	}
	edited.RecalculateCounts()
	return edited
}
