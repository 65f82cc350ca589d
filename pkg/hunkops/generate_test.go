package hunkops

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"commitsmith/pkg/diffmodel"
)

func TestGenerateForHunk_RoundTripsThroughParse(t *testing.T) {
	h := mkHunk([]diffmodel.Line{
		{Kind: diffmodel.Context, Content: "line 1"},
		{Kind: diffmodel.Add, Content: "added"},
		{Kind: diffmodel.Context, Content: "line 2"},
	})
	text := GenerateForHunk(h)

	reparsed := diffmodel.Parse(text)
	require.Len(t, reparsed.Files, 1)
	require.Len(t, reparsed.Files[0].Hunks, 1)
	got := reparsed.Files[0].Hunks[0]
	assert.Equal(t, h.OldCount, got.OldCount)
	assert.Equal(t, h.NewCount, got.NewCount)
	assert.Equal(t, h.Lines, got.Lines)
}

func TestGeneratePatch_EmptyInputIsEmptyString(t *testing.T) {
	assert.Equal(t, "", GeneratePatch(nil))
}

func TestGeneratePatch_NoNewOrDeletedFileHeaders(t *testing.T) {
	h := mkHunk([]diffmodel.Line{{Kind: diffmodel.Add, Content: "hello"}})
	text := GeneratePatch([]*diffmodel.Hunk{h})
	assert.NotContains(t, text, "new file mode")
	assert.NotContains(t, text, "deleted file mode")
	assert.NotContains(t, text, "/dev/null")
	assert.Contains(t, text, "diff --git a/f.go b/f.go")
	assert.Contains(t, text, "--- a/f.go")
	assert.Contains(t, text, "+++ b/f.go")
}

func TestGeneratePatch_EndsWithExactlyOneTrailingNewline(t *testing.T) {
	h := mkHunk([]diffmodel.Line{{Kind: diffmodel.Add, Content: "hello"}})
	text := GeneratePatch([]*diffmodel.Hunk{h})
	assert.True(t, strings.HasSuffix(text, "\n"))
	assert.False(t, strings.HasSuffix(text, "\n\n"))
}

func TestGeneratePatch_GroupsByFileAndSortsByOldStart(t *testing.T) {
	hA1 := &diffmodel.Hunk{File: "a.go", OldStart: 10, Lines: []diffmodel.Line{{Kind: diffmodel.Context, Content: "x"}}}
	hA1.RecalculateCounts()
	hA0 := &diffmodel.Hunk{File: "a.go", OldStart: 1, Lines: []diffmodel.Line{{Kind: diffmodel.Context, Content: "y"}}}
	hA0.RecalculateCounts()
	hB := &diffmodel.Hunk{File: "b.go", OldStart: 1, Lines: []diffmodel.Line{{Kind: diffmodel.Context, Content: "z"}}}
	hB.RecalculateCounts()

	text := GeneratePatch([]*diffmodel.Hunk{hA1, hB, hA0})
	idxA := strings.Index(text, "a.go")
	idxB := strings.Index(text, "b.go")
	idxY := strings.Index(text, " y")
	idxX := strings.Index(text, " x")
	require.True(t, idxA < idxB, "a.go section should come before b.go (first-seen file order)")
	require.True(t, idxY < idxX, "oldStart=1 hunk should be emitted before oldStart=10 hunk")
}
