// Package compensate applies the small working-tree insertions
// ("compensations") that keep a partially-committed tree compiling; it
// does not remove them again. Each one is a read/locate/splice/write/stage
// cycle grounded in the
// teacher's atomic-write file helper, generalized from a single-file
// tool call to a sequential walk over a staging plan's compensations.
package compensate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	errs "commitsmith/pkg/errors"
	"commitsmith/pkg/stagingplan"
)

// FileStager is the subset of the VCS collaborator compensation
// application needs: staging one file wholesale after it has been
// rewritten on disk.
type FileStager interface {
	StageFile(ctx context.Context, path string) error
}

// Result reports how far compensation application got.
type Result struct {
	ModifiedFiles []string
	Err           *errs.AgentError
}

// Apply walks comps in order, writing each into rootDir-relative files
// and staging the result. On the first failure it stops and returns,
// with ModifiedFiles already containing every file rewritten and
// staged so far (a file that was written but failed to stage is named
// only in Err) — mirroring the executor's partial-progress
// reporting for hunk selections.
func Apply(ctx context.Context, rootDir string, comps []stagingplan.Compensation, stager FileStager) *Result {
	result := &Result{}

	for _, c := range comps {
		path := filepath.Join(rootDir, c.File)
		original, err := os.ReadFile(path)
		if err != nil {
			result.Err = errs.New(errs.CodeCompensationFailed,
				fmt.Sprintf("cannot read %s: %v", c.File, err)).
				WithContext("file", c.File)
			return result
		}

		lines := splitLines(string(original))
		updated, ok := spliceCompensation(lines, c)
		if !ok {
			result.Err = errs.New(errs.CodeCompensationFailed,
				fmt.Sprintf("insertion anchor not found in %s", c.File)).
				WithContext("file", c.File)
			return result
		}

		if err := os.WriteFile(path, []byte(strings.Join(updated, "\n")), 0644); err != nil {
			result.Err = errs.New(errs.CodeCompensationFailed,
				fmt.Sprintf("cannot write %s: %v", c.File, err)).
				WithContext("file", c.File)
			return result
		}

		if err := stager.StageFile(ctx, c.File); err != nil {
			result.Err = errs.New(errs.CodeCompensationFailed,
				fmt.Sprintf("cannot stage %s: %v", c.File, err)).
				WithContext("file", c.File)
			return result
		}

		result.ModifiedFiles = append(result.ModifiedFiles, c.File)
	}

	return result
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// locateAnchor resolves a Compensation's Anchor to a 0-based line index
// into lines. found is false if the anchor cannot be resolved.
func locateAnchor(lines []string, a stagingplan.Anchor) (idx int, found bool) {
	switch {
	case a.HasLineNumber:
		idx = a.LineNumber - 1
		return idx, idx >= 0 && idx < len(lines)
	case a.AfterPattern != "":
		for i, l := range lines {
			if strings.Contains(l, a.AfterPattern) {
				return i, true
			}
		}
	case a.BeforePattern != "":
		for i, l := range lines {
			if strings.Contains(l, a.BeforePattern) {
				return i, true
			}
		}
	}
	return 0, false
}

// spliceCompensation inserts (or, for ReplaceLine, substitutes) c's
// content at its anchor, bracketed by comment markers derived from the
// file extension.
func spliceCompensation(lines []string, c stagingplan.Compensation) ([]string, bool) {
	idx, found := locateAnchor(lines, c.Anchor)
	if !found {
		return nil, false
	}

	begin, end := markerLines(c.File)
	contentLines := strings.Split(c.Content, "\n")

	if c.Type == stagingplan.ReplaceLine {
		block := append([]string{begin}, contentLines...)
		block = append(block, end)
		out := make([]string, 0, len(lines)+len(block))
		out = append(out, lines[:idx]...)
		out = append(out, block...)
		out = append(out, lines[idx+1:]...)
		return out, true
	}

	insertAt := idx
	if c.Type == stagingplan.AddAfterLine {
		insertAt = idx + 1
	}

	block := append([]string{begin}, contentLines...)
	block = append(block, end)

	out := make([]string, 0, len(lines)+len(block))
	out = append(out, lines[:insertAt]...)
	out = append(out, block...)
	out = append(out, lines[insertAt:]...)
	return out, true
}

func markerLines(file string) (begin, end string) {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".py", ".rb", ".sh":
		return "# BEGIN COMPENSATION", "# END COMPENSATION"
	case ".html":
		return "<!-- BEGIN COMPENSATION -->", "<!-- END COMPENSATION -->"
	case ".css":
		return "/* BEGIN COMPENSATION */", "/* END COMPENSATION */"
	default:
		return "// BEGIN COMPENSATION", "// END COMPENSATION"
	}
}
