package stagingplan

import (
	"fmt"
	"sort"
	"strings"

	"commitsmith/pkg/diffmodel"
)

// RenderDocument renders plan back into the plain-text plan document
// format ParseDocument reads, resolving each selection's hunk against
// parsed to render its line bodies. A selection whose hunk id cannot be
// resolved is rendered with an empty fenced block.
func RenderDocument(parsed *diffmodel.ParsedDiff, plan *StagingPlan) string {
	var b strings.Builder

	msg := plan.CommitMessage
	if msg == "" {
		msg = DefaultCommitMessage
	}
	fmt.Fprintf(&b, "Commit message: %s\n\n", msg)

	for _, sel := range plan.Selections {
		b.WriteString(renderSelection(parsed, sel))
		b.WriteString("\n")
	}

	for _, c := range plan.Compensations {
		b.WriteString(renderCompensation(c))
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

func renderSelection(parsed *diffmodel.ParsedDiff, sel HunkSelection) string {
	var b strings.Builder
	fmt.Fprintf(&b, "### %s\n", sel.HunkID)

	entireChecked := " "
	if sel.Mode == All {
		entireChecked = "x"
	}
	fmt.Fprintf(&b, "[%s] Include entire hunk\n", entireChecked)

	h := parsed.GetHunk(sel.HunkID)
	if h == nil {
		b.WriteString("```\n```\n")
		return b.String()
	}

	b.WriteString("```\n")
	for i, l := range h.Lines {
		var checked rune
		switch l.Kind {
		case diffmodel.Add:
			if sel.Mode == All || sel.IncludeAdditions[i] {
				checked = 'x'
			} else {
				checked = ' '
			}
			if _, edited := sel.LineEdits[i]; edited {
				checked = 'E'
			}
		case diffmodel.Remove:
			if sel.Mode == All || sel.IncludeRemovals[i] {
				checked = 'x'
			} else {
				checked = ' '
			}
		default:
			checked = 0
		}
		b.WriteString(formatChangeLine(i, checked, l.Kind.Prefix(), l.Content))
		b.WriteString("\n")
	}
	b.WriteString("```\n")

	var editIdx []int
	for idx := range sel.LineEdits {
		editIdx = append(editIdx, idx)
	}
	sort.Ints(editIdx)
	for _, idx := range editIdx {
		fmt.Fprintf(&b, "EDIT [%02d]: %s\n", idx, sel.LineEdits[idx])
	}

	return b.String()
}

func renderCompensation(c Compensation) string {
	var b strings.Builder
	switch {
	case c.Anchor.HasLineNumber:
		fmt.Fprintf(&b, "COMPENSATE %s AFTER LINE %d:\n", c.File, c.Anchor.LineNumber)
	case c.Anchor.BeforePattern != "":
		fmt.Fprintf(&b, "COMPENSATE %s BEFORE %q:\n", c.File, c.Anchor.BeforePattern)
	default:
		fmt.Fprintf(&b, "COMPENSATE %s AFTER %q:\n", c.File, c.Anchor.AfterPattern)
	}
	for _, contentLine := range strings.Split(c.Content, "\n") {
		if contentLine == "" {
			b.WriteString("\n")
			continue
		}
		fmt.Fprintf(&b, "  %s\n", contentLine)
	}
	if c.Reason != "" {
		fmt.Fprintf(&b, "REASON: %s\n", c.Reason)
	}
	if c.RemovedBy != "" {
		fmt.Fprintf(&b, "REMOVED_BY: %s\n", c.RemovedBy)
	}
	return b.String()
}
