package stagingplan

// Worksheet is the structured alternative to the plan document described
// in spec.md §4.3.3: identical semantics, built directly as values
// instead of parsed from text. It is the shape an MCP tool call or other
// programmatic caller passes in, skipping the document round-trip
// entirely. The executor accepts either a StagingPlan built from
// ParseDocument or one built from Worksheet.ToStagingPlan.
type Worksheet struct {
	CommitMessage string
	Files         []WorksheetFile
}

// WorksheetFile mirrors a plan document's per-file grouping.
type WorksheetFile struct {
	Path    string
	Include string // "all", "none", or "partial"
	Hunks   []WorksheetHunk
}

// WorksheetHunk mirrors a plan document's per-hunk section.
type WorksheetHunk struct {
	HunkID    string
	Include   string // "all", "none", or "partial"
	Lines     []WorksheetLine
	LineEdits map[int]string
	Note      string
}

// WorksheetLine carries one line's inclusion decision. IsAdd and IsRemove
// distinguish an addition from a removal; Index is the line's position in the
// hunk's Lines slice, exactly as elsewhere in this module.
type WorksheetLine struct {
	Index     int
	IsAdd     bool
	IsRemove  bool
	Include   bool
}

// ToStagingPlan converts a Worksheet into a StagingPlan with the same
// semantics a parsed document would produce: a file-level "all"/"none"
// expands to every one of that file's listed hunks, "partial" defers to
// each hunk's own Include value.
func (w Worksheet) ToStagingPlan() *StagingPlan {
	plan := &StagingPlan{CommitMessage: w.CommitMessage}
	if plan.CommitMessage == "" {
		plan.CommitMessage = DefaultCommitMessage
	}

	for _, f := range w.Files {
		for _, h := range f.Hunks {
			mode := resolveMode(f.Include, h.Include)
			sel := HunkSelection{
				HunkID:    h.HunkID,
				Mode:      mode,
				LineEdits: h.LineEdits,
				Note:      h.Note,
			}
			if mode == Partial {
				sel.IncludeAdditions = make(map[int]bool)
				sel.IncludeRemovals = make(map[int]bool)
				for _, l := range h.Lines {
					if !l.Include {
						continue
					}
					if l.IsAdd {
						sel.IncludeAdditions[l.Index] = true
					}
					if l.IsRemove {
						sel.IncludeRemovals[l.Index] = true
					}
				}
			}
			plan.Selections = append(plan.Selections, sel)
		}
	}
	return plan
}

func resolveMode(fileInclude, hunkInclude string) SelectionMode {
	switch fileInclude {
	case "all":
		return All
	case "none":
		return None
	}
	switch hunkInclude {
	case "all":
		return All
	case "partial":
		return Partial
	default:
		return None
	}
}
