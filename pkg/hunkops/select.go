package hunkops

import (
	"strconv"
	"strings"

	"commitsmith/pkg/diffmodel"
	errs "commitsmith/pkg/errors"
)

// Selector is a parsed hunk or hunk-line identifier. Selector ids take
// one of two forms:
//
//	"<file>:<hunkIndex>"              selects a whole hunk
//	"<file>:<hunkIndex>:<lineIndex>"  selects one line within that hunk
//
// lineIndex, like every other index in this package, is a position
// into the hunk's Lines slice, not a per-kind counter.
type Selector struct {
	File      string
	HunkIndex int
	LineIndex int
	HasLine   bool
}

// ParseSelector splits a selector id into its file, hunk-index, and
// optional line-index parts.
func ParseSelector(id string) (Selector, error) {
	parts := strings.Split(id, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return Selector{}, errs.New(errs.CodeInvalidSelection,
			"selector must be \"file:hunkIndex\" or \"file:hunkIndex:lineIndex\": "+id)
	}
	hunkIndex, err := strconv.Atoi(parts[1])
	if err != nil {
		return Selector{}, errs.New(errs.CodeInvalidSelection, "non-numeric hunk index in selector: "+id)
	}
	sel := Selector{File: parts[0], HunkIndex: hunkIndex}
	if len(parts) == 3 {
		lineIndex, err := strconv.Atoi(parts[2])
		if err != nil {
			return Selector{}, errs.New(errs.CodeInvalidSelection, "non-numeric line index in selector: "+id)
		}
		sel.LineIndex = lineIndex
		sel.HasLine = true
	}
	return sel, nil
}

// ResolveHunk looks up the hunk a selector names. The hunk-id form
// "<file>:<hunkIndex>" matches diffmodel.Hunk.ID directly since that is
// exactly how MakeID builds it.
func ResolveHunk(parsed *diffmodel.ParsedDiff, id string) (*diffmodel.Hunk, error) {
	sel, err := ParseSelector(id)
	if err != nil {
		return nil, err
	}
	h := parsed.GetHunk(diffmodel.MakeID(sel.File, sel.HunkIndex))
	if h == nil {
		return nil, errs.HunkNotFoundError(id)
	}
	return h, nil
}

// ResolveLine looks up the hunk and validates that a line-qualified
// selector's line index falls within that hunk's Lines slice.
func ResolveLine(parsed *diffmodel.ParsedDiff, id string) (*diffmodel.Hunk, int, error) {
	sel, err := ParseSelector(id)
	if err != nil {
		return nil, 0, err
	}
	if !sel.HasLine {
		return nil, 0, errs.New(errs.CodeInvalidSelection, "selector has no line index: "+id)
	}
	h := parsed.GetHunk(diffmodel.MakeID(sel.File, sel.HunkIndex))
	if h == nil {
		return nil, 0, errs.HunkNotFoundError(id)
	}
	if sel.LineIndex < 0 || sel.LineIndex >= len(h.Lines) {
		return nil, 0, errs.New(errs.CodeInvalidSelection, "line index out of range: "+id).
			WithContext("hunk_id", h.ID)
	}
	return h, sel.LineIndex, nil
}
