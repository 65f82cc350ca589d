package stagingplan

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	commitMessageRE = regexp.MustCompile(`^Commit message:\s*(.*)$`)
	fileCheckboxRE  = regexp.MustCompile(`^\[([ xX~])\]\s+(\S.*)$`)
	hunkHeaderRE    = regexp.MustCompile(`^### (.+)$`)
	entireHunkRE    = regexp.MustCompile(`(?i)^\[x\]\s*include entire hunk\s*$`)
	fenceRE         = regexp.MustCompile("^```\\s*$")
	changeLineRE    = regexp.MustCompile(`^(\[.\]|   ) \[\s*(\d+)\s*\]([ +\-])(.*)$`)
	editDirectiveRE = regexp.MustCompile(`^EDIT\s*\[\s*(\d+)\s*\]:\s?(.*)$`)

	compensateAfterPatternRE = regexp.MustCompile(`^COMPENSATE (\S+) AFTER "(.*)":$`)
	compensateAfterLineRE    = regexp.MustCompile(`^COMPENSATE (\S+) AFTER LINE (\d+):$`)
	compensateBeforePattern  = regexp.MustCompile(`^COMPENSATE (\S+) BEFORE "(.*)":$`)
	reasonRE                 = regexp.MustCompile(`^REASON:\s*(.*)$`)
	removedByRE              = regexp.MustCompile(`^REMOVED_BY:\s*(.*)$`)
)

// ParseDocument parses a plan document's plain text into a StagingPlan.
// It is lenient: lines it does not recognize in a given context are
// skipped rather than raised as errors. Index-range and hunk-existence
// validation happen later, when the plan is actually resolved against a
// ParsedDiff.
func ParseDocument(text string) *StagingPlan {
	plan := &StagingPlan{}
	fileMode := make(map[string]byte) // 'x', ' ', or '~'

	var curSel *HunkSelection
	inFence := false
	var curComp *Compensation
	collectingComp := false

	finalizeSelection := func() {
		if curSel == nil {
			return
		}
		if curSel.Mode == 0 && (len(curSel.IncludeAdditions) > 0 || len(curSel.IncludeRemovals) > 0 || len(curSel.LineEdits) > 0) {
			curSel.Mode = Partial
		}
		plan.Selections = append(plan.Selections, *curSel)
		curSel = nil
	}
	finalizeCompensation := func() {
		if curComp == nil {
			return
		}
		curComp.Content = strings.TrimRight(curComp.Content, "\n")
		plan.Compensations = append(plan.Compensations, *curComp)
		curComp = nil
		collectingComp = false
	}

	lines := strings.Split(text, "\n")
	for _, line := range lines {
		if collectingComp {
			if m := reasonRE.FindStringSubmatch(line); m != nil {
				curComp.Reason = m[1]
				continue
			}
			if m := removedByRE.FindStringSubmatch(line); m != nil {
				curComp.RemovedBy = m[1]
				continue
			}
			if strings.HasPrefix(line, "  ") {
				curComp.Content += strings.TrimPrefix(line, "  ") + "\n"
				continue
			}
			if strings.TrimSpace(line) == "" {
				curComp.Content += "\n"
				continue
			}
			// Un-indented, non-metadata line: the compensation block ends
			// here. Fall through and let this line be reprocessed below.
			finalizeCompensation()
		}

		if m := compensateAfterPatternRE.FindStringSubmatch(line); m != nil {
			finalizeSelection()
			curComp = &Compensation{File: m[1], Type: AddAfterLine, Anchor: Anchor{AfterPattern: m[2]}}
			collectingComp = true
			continue
		}
		if m := compensateAfterLineRE.FindStringSubmatch(line); m != nil {
			finalizeSelection()
			n, _ := strconv.Atoi(m[2])
			curComp = &Compensation{File: m[1], Type: AddAfterLine, Anchor: Anchor{LineNumber: n, HasLineNumber: true}}
			collectingComp = true
			continue
		}
		if m := compensateBeforePattern.FindStringSubmatch(line); m != nil {
			finalizeSelection()
			curComp = &Compensation{File: m[1], Type: AddBeforeLine, Anchor: Anchor{BeforePattern: m[2]}}
			collectingComp = true
			continue
		}

		if m := hunkHeaderRE.FindStringSubmatch(line); m != nil {
			finalizeSelection()
			curSel = &HunkSelection{HunkID: strings.TrimSpace(m[1])}
			inFence = false
			continue
		}

		if curSel != nil && entireHunkRE.MatchString(line) {
			curSel.Mode = All
			continue
		}

		if fenceRE.MatchString(line) {
			inFence = !inFence
			continue
		}

		if inFence && curSel != nil {
			if m := changeLineRE.FindStringSubmatch(line); m != nil {
				applyChangeLine(curSel, m)
				continue
			}
			continue
		}

		if curSel != nil {
			if m := editDirectiveRE.FindStringSubmatch(line); m != nil {
				idx, _ := strconv.Atoi(m[1])
				if curSel.LineEdits == nil {
					curSel.LineEdits = make(map[int]string)
				}
				curSel.LineEdits[idx] = m[2]
				continue
			}
		}

		if m := fileCheckboxRE.FindStringSubmatch(line); m != nil {
			fileMode[strings.TrimSpace(m[2])] = m[1][0]
			continue
		}

		if m := commitMessageRE.FindStringSubmatch(line); m != nil {
			plan.CommitMessage = strings.TrimSpace(m[1])
			continue
		}
	}
	finalizeSelection()
	finalizeCompensation()

	if plan.CommitMessage == "" {
		plan.CommitMessage = DefaultCommitMessage
	}

	applyFileLevelOverrides(plan, fileMode)

	return plan
}

func applyChangeLine(sel *HunkSelection, m []string) {
	checkboxField := m[1]
	idx, _ := strconv.Atoi(m[2])
	prefix := m[3]

	if checkboxField == "   " {
		return // context line, no inclusion semantics
	}
	checkbox := checkboxField[1]
	included := checkbox == 'x' || checkbox == 'X' || checkbox == 'e' || checkbox == 'E'
	if !included {
		return
	}

	switch prefix {
	case "+":
		if sel.IncludeAdditions == nil {
			sel.IncludeAdditions = make(map[int]bool)
		}
		sel.IncludeAdditions[idx] = true
	case "-":
		if sel.IncludeRemovals == nil {
			sel.IncludeRemovals = make(map[int]bool)
		}
		sel.IncludeRemovals[idx] = true
	}
}

// fileForHunkID strips the trailing ":<index>" from a hunk id to
// recover the file path it belongs to.
func fileForHunkID(hunkID string) string {
	i := strings.LastIndex(hunkID, ":")
	if i < 0 {
		return hunkID
	}
	return hunkID[:i]
}

func applyFileLevelOverrides(plan *StagingPlan, fileMode map[string]byte) {
	if len(fileMode) == 0 {
		return
	}
	for i := range plan.Selections {
		file := fileForHunkID(plan.Selections[i].HunkID)
		switch fileMode[file] {
		case 'x', 'X':
			plan.Selections[i].Mode = All
		case ' ':
			plan.Selections[i].Mode = None
		}
		// '~' (or absent): defer entirely to hunk-level parsing.
	}
}

// formatChangeLine renders one body line of a hunk section in the
// document's checkbox syntax, used by RenderDocument.
func formatChangeLine(index int, checked rune, prefix byte, content string) string {
	field := "   "
	if checked != 0 {
		field = fmt.Sprintf("[%c]", checked)
	}
	return fmt.Sprintf("%s [%02d]%c%s", field, index, prefix, content)
}
