// Package stagingplan represents staging selections at file, hunk, line,
// and line-edit granularity, and translates between that model and a
// human/agent-editable plain-text plan document.
package stagingplan

// SelectionMode tags how much of a hunk a HunkSelection includes.
type SelectionMode int

const (
	// None skips the hunk entirely.
	None SelectionMode = iota
	// All includes every line of the hunk as-is (subject to any
	// LineEdits still applied).
	All
	// Partial includes only the lines named in IncludeAdditions /
	// IncludeRemovals.
	Partial
)

func (m SelectionMode) String() string {
	switch m {
	case All:
		return "All"
	case Partial:
		return "Partial"
	default:
		return "None"
	}
}

// HunkSelection names one hunk and how much of it to stage.
//
// IncludeAdditions and IncludeRemovals are sets of indices into the
// target hunk's Lines slice — positions, never per-kind counters, per
// the load-bearing invariant the whole module is built around.
type HunkSelection struct {
	HunkID            string
	Mode              SelectionMode
	IncludeAdditions  map[int]bool
	IncludeRemovals   map[int]bool
	LineEdits         map[int]string
	Note              string
}

// CompensationType identifies the kind of insertion a Compensation
// performs.
type CompensationType int

const (
	// AddAfterLine inserts Content after the anchor.
	AddAfterLine CompensationType = iota
	// AddBeforeLine inserts Content before the anchor.
	AddBeforeLine
	// ReplaceLine replaces the anchor line with Content.
	ReplaceLine
)

// Anchor locates the insertion point for a Compensation. Exactly one
// field is set: LineNumber, AfterPattern, or BeforePattern.
type Anchor struct {
	LineNumber    int
	HasLineNumber bool
	AfterPattern  string
	BeforePattern string
}

// Compensation is a temporary insertion into a working-tree file, made
// so a partial commit compiles or runs in isolation.
type Compensation struct {
	File      string
	Type      CompensationType
	Anchor    Anchor
	Content   string
	Reason    string
	RemovedBy string
}

// StagingPlan is the full unit the executor consumes: a commit message,
// an ordered list of hunk selections, and optional compensations.
type StagingPlan struct {
	CommitMessage string
	Selections    []HunkSelection
	Compensations []Compensation
}

// DefaultCommitMessage is substituted when a plan document has no
// "Commit message:" line.
const DefaultCommitMessage = "untitled commit"
