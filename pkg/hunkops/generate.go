package hunkops

import (
	"fmt"
	"sort"
	"strings"

	"commitsmith/pkg/diffmodel"
)

// GeneratePatch is the core patch regenerator spec.md §4.2 describes:
// group the given hunks by file, sort each file's hunks by OldStart
// ascending, and emit a minimal modification-style patch — no "new file
// mode" / "deleted file mode" headers, always "a/<file>" and "b/<file>".
// Applying to genuinely new or deleted files is the caller's concern
// (pre-stage the file, or use the VCS's recount-apply variant); this
// generator only ever emits the simplified form.
//
// An empty hunk list yields an empty string. The result always ends in
// exactly one trailing newline.
func GeneratePatch(hunks []*diffmodel.Hunk) string {
	if len(hunks) == 0 {
		return ""
	}

	byFile := make(map[string][]*diffmodel.Hunk)
	var order []string
	for _, h := range hunks {
		if _, seen := byFile[h.File]; !seen {
			order = append(order, h.File)
		}
		byFile[h.File] = append(byFile[h.File], h)
	}

	var b strings.Builder
	for _, file := range order {
		fileHunks := byFile[file]
		sort.SliceStable(fileHunks, func(i, j int) bool {
			return fileHunks[i].OldStart < fileHunks[j].OldStart
		})
		fmt.Fprintf(&b, "diff --git a/%s b/%s\n", file, file)
		fmt.Fprintf(&b, "--- a/%s\n", file)
		fmt.Fprintf(&b, "+++ b/%s\n", file)
		for _, h := range fileHunks {
			writeHunkBody(&b, h)
		}
	}
	return b.String()
}

// GenerateForHunk is a convenience wrapper for the common case of
// regenerating a patch fragment from a single edited hunk, as the
// executor does at each selection step.
func GenerateForHunk(h *diffmodel.Hunk) string {
	return GeneratePatch([]*diffmodel.Hunk{h})
}

func writeHunkBody(b *strings.Builder, h *diffmodel.Hunk) {
	header := h.Header
	if header == "" {
		header = fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.OldStart, h.OldCount, h.NewStart, h.NewCount)
		if h.Context != "" {
			header += " " + h.Context
		}
	}
	b.WriteString(header)
	b.WriteString("\n")
	for _, l := range h.Lines {
		b.WriteString(l.String())
		b.WriteString("\n")
	}
}
