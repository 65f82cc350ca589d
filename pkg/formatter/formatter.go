// Package formatter renders a parsed diff into the three text shapes an
// LLM-driven caller consumes: a compact hunk table, detailed per-hunk
// blocks, and a plan-document scaffold ready for selection editing.
package formatter

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"commitsmith/pkg/diffmodel"
	"commitsmith/pkg/hunkops"
)

// MinContextGap is the default gap width used when a caller asks the
// formatter to note splittability without specifying its own threshold.
const MinContextGap = 3

// effectiveGap substitutes MinContextGap for a caller-supplied zero or
// negative value, matching hunkops' own non-positive handling at the
// formatter's chosen default instead of hunkops' floor of 1.
func effectiveGap(minContextGap int) int {
	if minContextGap <= 0 {
		return MinContextGap
	}
	return minContextGap
}

// CompactTable renders one markdown row per hunk: `| id | file | lines
// X-Y | summary |`, in the order hunks appear in parsed.
func CompactTable(parsed *diffmodel.ParsedDiff) string {
	var b strings.Builder
	b.WriteString("| id | file | lines | summary |\n")
	b.WriteString("|---|---|---|---|\n")
	for _, h := range parsed.GetAllHunks() {
		fmt.Fprintf(&b, "| %s | %s | %d-%d | %s |\n",
			h.ID, h.File, h.NewStart, h.NewStart+h.NewCount-1, summarize(h))
	}
	return b.String()
}

func summarize(h *diffmodel.Hunk) string {
	add, rem := h.AdditionCount(), h.RemovalCount()
	if add == 0 && rem == 0 {
		return "no changes"
	}
	return fmt.Sprintf("+%d lines, -%d lines", add, rem)
}

// DetailedBlock renders one hunk's heading, summary, optional
// splittability note, and fenced indexed-line body.
func DetailedBlock(h *diffmodel.Hunk, minContextGap int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "### Hunk: %s\n", h.ID)
	if h.Context != "" {
		fmt.Fprintf(&b, "Context: %s\n", h.Context)
	}
	fmt.Fprintf(&b, "Summary: %s\n", summarize(h))
	if subHunks := hunkops.SplitHunk(h, effectiveGap(minContextGap)); len(subHunks) > 1 {
		fmt.Fprintf(&b, "Splittable: Can be split into %d sub-hunks\n", len(subHunks))
	}
	b.WriteString("```\n")
	oldNo, newNo := h.OldStart, h.NewStart
	for i, l := range h.Lines {
		oldCol, newCol := "   ", "   "
		switch l.Kind {
		case diffmodel.Context:
			oldCol = fmt.Sprintf("%3d", oldNo)
			newCol = fmt.Sprintf("%3d", newNo)
			oldNo++
			newNo++
		case diffmodel.Remove:
			oldCol = fmt.Sprintf("%3d", oldNo)
			oldNo++
		case diffmodel.Add:
			newCol = fmt.Sprintf("%3d", newNo)
			newNo++
		}
		fmt.Fprintf(&b, "[%02d] %s:%s %c %s\n", i, oldCol, newCol, l.Kind.Prefix(), l.Content)
	}
	b.WriteString("```\n")
	return b.String()
}

// PlanScaffold renders a plan-document scaffold for every hunk in
// parsed: a default commit message line, then one section per hunk with
// a pre-checked entire-hunk box and a fenced per-line checkbox block —
// the same grammar stagingplan.ParseDocument reads back.
func PlanScaffold(parsed *diffmodel.ParsedDiff, commitMessage string) string {
	if commitMessage == "" {
		commitMessage = "untitled commit"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Commit message: %s\n\n", commitMessage)
	for _, h := range parsed.GetAllHunks() {
		fmt.Fprintf(&b, "### %s\n", h.ID)
		b.WriteString("[x] Include entire hunk\n")
		b.WriteString("```\n")
		for i, l := range h.Lines {
			if l.Kind == diffmodel.Context {
				fmt.Fprintf(&b, "    [%02d] %s\n", i, l.Content)
				continue
			}
			fmt.Fprintf(&b, "[x] [%02d]%c%s\n", i, l.Kind.Prefix(), l.Content)
		}
		b.WriteString("```\n\n")
	}
	return b.String()
}

// Tag is one advisory content-category match over a hunk's aggregated
// change content.
type Tag string

const (
	TagLogging       Tag = "logging"
	TagImports       Tag = "imports"
	TagFunctionDef   Tag = "function definition"
	TagErrorHandling Tag = "error handling"
	TagAsync         Tag = "async"
	TagConditional   Tag = "conditional"
)

var tagPatterns = []struct {
	tag Tag
	re  *regexp.Regexp
}{
	{TagLogging, regexp.MustCompile(`(?i)\b(log|logger|logging|fmt\.Print|console\.log)\b`)},
	{TagImports, regexp.MustCompile(`(?i)^\s*(import|require|use|#include)\b`)},
	{TagFunctionDef, regexp.MustCompile(`(?i)\b(func|def|function|fn)\s+\w+\s*\(`)},
	{TagErrorHandling, regexp.MustCompile(`(?i)\b(err|error|exception|catch|panic|raise)\b`)},
	{TagAsync, regexp.MustCompile(`(?i)\b(async|await|goroutine|go\s+func|promise|future)\b`)},
	{TagConditional, regexp.MustCompile(`(?i)\b(if|else|switch|case|match)\b`)},
}

// DetectTags scans a hunk's added and removed content for the advisory
// categories; tags carry no influence over parsing, editing, or patch
// generation.
func DetectTags(h *diffmodel.Hunk) []Tag {
	var content strings.Builder
	for _, l := range h.Lines {
		if l.Kind != diffmodel.Context {
			content.WriteString(l.Content)
			content.WriteString("\n")
		}
	}
	text := content.String()

	var tags []Tag
	for _, tp := range tagPatterns {
		if tp.re.MatchString(text) {
			tags = append(tags, tp.tag)
		}
	}
	return tags
}

// ComplexityHint scores a hunk: 1 by default, 4 if more than one
// addition or more than one removal exists, capped at 3 if the hunk is
// splittable.
func ComplexityHint(h *diffmodel.Hunk, minContextGap int) int {
	hint := 1
	if h.AdditionCount() > 1 || h.RemovalCount() > 1 {
		hint = 4
	}
	if hint > 3 && hunkops.IsSplittable(h, effectiveGap(minContextGap)) {
		hint = 3
	}
	return hint
}

// Analysis buckets every hunk in parsed by its nature, for callers that
// want a quick triage view rather than a full per-hunk render.
type Analysis struct {
	SimpleHunks     []string
	SplittableHunks []string
	ComplexHunks    []string
}

// Analyze buckets parsed's hunks into simple, splittable, and complex
// id lists, in ascending hunk-id order within each bucket.
func Analyze(parsed *diffmodel.ParsedDiff, minContextGap int) Analysis {
	var a Analysis
	for _, h := range parsed.GetAllHunks() {
		hint := ComplexityHint(h, minContextGap)
		switch {
		case hunkops.IsSplittable(h, effectiveGap(minContextGap)):
			a.SplittableHunks = append(a.SplittableHunks, h.ID)
		case hint >= 4:
			a.ComplexHunks = append(a.ComplexHunks, h.ID)
		default:
			a.SimpleHunks = append(a.SimpleHunks, h.ID)
		}
	}
	sort.Strings(a.SimpleHunks)
	sort.Strings(a.SplittableHunks)
	sort.Strings(a.ComplexHunks)
	return a
}
