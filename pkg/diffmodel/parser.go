package diffmodel

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	errs "commitsmith/pkg/errors"
)

var (
	fileHeaderRE = regexp.MustCompile(`^diff --git a/(.*) b/(.*)$`)
	hunkHeaderRE = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@ ?(.*)$`)
)

// Parse parses unified-diff text into a ParsedDiff. It is total: no input
// ever causes it to fail. Lines it cannot recognize are silently skipped,
// and whatever structure is recoverable from the rest of the text is
// returned.
func Parse(text string) *ParsedDiff {
	result := &ParsedDiff{}

	var file *FileDiff
	var hunk *Hunk
	inMetadata := false

	lines := strings.Split(text, "\n")
	for _, line := range lines {
		if m := fileHeaderRE.FindStringSubmatch(line); m != nil {
			hunk = nil
			file = &FileDiff{OldPath: m[1], NewPath: m[2]}
			file.IsRenamed = file.OldPath != file.NewPath
			result.Files = append(result.Files, file)
			inMetadata = true
			continue
		}

		if file == nil {
			// Anything before the first file header is ignored.
			continue
		}

		if inMetadata && isMetadataLine(line) {
			applyMetadata(file, line)
			continue
		}
		inMetadata = false

		if m := hunkHeaderRE.FindStringSubmatch(line); m != nil {
			hunk = newHunkFromHeaderMatch(file, m)
			file.Hunks = append(file.Hunks, hunk)
			continue
		}

		if hunk == nil {
			continue
		}

		if kind, content, ok := parseBodyLine(line); ok {
			hunk.Lines = append(hunk.Lines, Line{Kind: kind, Content: content})
		}
		// Any other leading character (including '\', e.g. "\ No newline
		// at end of file") is skipped.
	}

	return result
}

// isMetadataLine reports whether line is one of the recognized file-header
// metadata lines that precede a file's first hunk.
func isMetadataLine(line string) bool {
	switch {
	case strings.HasPrefix(line, "new file mode"),
		strings.HasPrefix(line, "deleted file mode"),
		strings.HasPrefix(line, "index "),
		strings.HasPrefix(line, "--- "),
		strings.HasPrefix(line, "+++ "),
		strings.HasPrefix(line, "old mode"),
		strings.HasPrefix(line, "new mode"),
		strings.HasPrefix(line, "similarity index"),
		strings.HasPrefix(line, "rename from"),
		strings.HasPrefix(line, "rename to"),
		strings.HasPrefix(line, "Binary files"):
		return true
	default:
		return false
	}
}

func applyMetadata(file *FileDiff, line string) {
	switch {
	case strings.HasPrefix(line, "new file mode"):
		file.IsNew = true
	case strings.HasPrefix(line, "deleted file mode"):
		file.IsDeleted = true
	case strings.HasPrefix(line, "rename from"), strings.HasPrefix(line, "rename to"):
		file.IsRenamed = true
	}
}

// parseBodyLine classifies a hunk body line by its leading character.
// A truly blank line (no prefix at all) is not a body line and is
// skipped; an empty context line arrives as a single space.
func parseBodyLine(line string) (kind LineKind, content string, ok bool) {
	if line == "" {
		return 0, "", false
	}
	switch line[0] {
	case ' ':
		return Context, line[1:], true
	case '+':
		return Add, line[1:], true
	case '-':
		return Remove, line[1:], true
	default:
		return 0, "", false
	}
}

// HunkHeaderFields holds the numeric fields recovered from a standalone
// "@@ -o,c +n,c @@ context" line.
type HunkHeaderFields struct {
	OldStart, OldCount int
	NewStart, NewCount int
	Context            string
}

// ParseHunkHeader parses a single hunk header line. It returns (nil,
// false) if line does not match the unified-diff hunk-header pattern.
// Omitted counts default to 1.
func ParseHunkHeader(line string) (*HunkHeaderFields, bool) {
	m := hunkHeaderRE.FindStringSubmatch(line)
	if m == nil {
		return nil, false
	}
	return &HunkHeaderFields{
		OldStart: mustAtoi(m[1]),
		OldCount: atoiOrDefault(m[2], 1),
		NewStart: mustAtoi(m[3]),
		NewCount: atoiOrDefault(m[4], 1),
		Context:  m[5],
	}, true
}

func newHunkFromHeaderMatch(file *FileDiff, m []string) *Hunk {
	fields := &HunkHeaderFields{
		OldStart: mustAtoi(m[1]),
		OldCount: atoiOrDefault(m[2], 1),
		NewStart: mustAtoi(m[3]),
		NewCount: atoiOrDefault(m[4], 1),
		Context:  m[5],
	}
	index := len(file.Hunks)
	h := &Hunk{
		File:     file.NewPath,
		Index:    index,
		ID:       MakeID(file.NewPath, index),
		OldStart: fields.OldStart,
		OldCount: fields.OldCount,
		NewStart: fields.NewStart,
		NewCount: fields.NewCount,
		Context:  fields.Context,
	}
	h.Header = formatHunkHeader(h.OldStart, h.OldCount, h.NewStart, h.NewCount, h.Context)
	return h
}

func mustAtoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func atoiOrDefault(s string, def int) int {
	if s == "" {
		return def
	}
	return mustAtoi(s)
}

// ValidateHunk is the explicit invariant checker spec.md §4.1 calls for:
// oldCount must equal the number of non-Add lines, and newCount must
// equal the number of non-Remove lines. Parsing itself never enforces
// this; callers that need the guarantee call ValidateHunk explicitly.
func ValidateHunk(h *Hunk) error {
	wantOld, wantNew := 0, 0
	for _, l := range h.Lines {
		if l.Kind != Add {
			wantOld++
		}
		if l.Kind != Remove {
			wantNew++
		}
	}
	if wantOld != h.OldCount {
		return errs.New(errs.CodeParseFault,
			fmt.Sprintf("Old count mismatch: header says %d, lines imply %d", h.OldCount, wantOld)).
			WithContext("hunk_id", h.ID)
	}
	if wantNew != h.NewCount {
		return errs.New(errs.CodeParseFault,
			fmt.Sprintf("New count mismatch: header says %d, lines imply %d", h.NewCount, wantNew)).
			WithContext("hunk_id", h.ID)
	}
	return nil
}
