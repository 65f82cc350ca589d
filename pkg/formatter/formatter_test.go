package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"commitsmith/pkg/diffmodel"
)

const simpleDiff = `diff --git a/file.txt b/file.txt
--- a/file.txt
+++ b/file.txt
@@ -1,3 +1,4 @@ func main() {
 line 1
+added line
 line 2
 line 3
`

func TestCompactTable_RendersOneRowPerHunk(t *testing.T) {
	parsed := diffmodel.Parse(simpleDiff)
	table := CompactTable(parsed)
	assert.Contains(t, table, "| file.txt:0 | file.txt | 1-4 | +1 lines, -0 lines |")
}

func TestDetailedBlock_RendersHeadingSummaryAndFence(t *testing.T) {
	parsed := diffmodel.Parse(simpleDiff)
	h := parsed.GetHunk("file.txt:0")
	block := DetailedBlock(h, MinContextGap)
	assert.Contains(t, block, "### Hunk: file.txt:0")
	assert.Contains(t, block, "Context: func main() {")
	assert.Contains(t, block, "Summary: +1 lines, -0 lines")
	assert.Contains(t, block, "```\n")
	assert.Contains(t, block, "[01]    :  2 + added line")
}

func TestDetailedBlock_OmittedLineNumberIsThreeSpaces(t *testing.T) {
	parsed := diffmodel.Parse(simpleDiff)
	h := parsed.GetHunk("file.txt:0")
	block := DetailedBlock(h, MinContextGap)
	assert.Contains(t, block, "[01]    :  2 +")
}

func TestDetailedBlock_SplittabilityNoteWhenApplicable(t *testing.T) {
	diff := `diff --git a/f.txt b/f.txt
--- a/f.txt
+++ b/f.txt
@@ -1,8 +1,8 @@
+add1
 ctx1
 ctx2
 ctx3
 ctx4
-rem1
 ctx5
+add2
`
	parsed := diffmodel.Parse(diff)
	h := parsed.GetHunk("f.txt:0")
	block := DetailedBlock(h, 3)
	assert.Contains(t, block, "Splittable: Can be split into 2 sub-hunks")
}

func TestDetailedBlock_NoSplitNoteWhenNotSplittable(t *testing.T) {
	parsed := diffmodel.Parse(simpleDiff)
	h := parsed.GetHunk("file.txt:0")
	block := DetailedBlock(h, 3)
	assert.NotContains(t, block, "Splittable")
}

func TestPlanScaffold_PreChecksEntireHunkAndRendersLines(t *testing.T) {
	parsed := diffmodel.Parse(simpleDiff)
	scaffold := PlanScaffold(parsed, "")
	assert.Contains(t, scaffold, "Commit message: untitled commit")
	assert.Contains(t, scaffold, "### file.txt:0")
	assert.Contains(t, scaffold, "[x] Include entire hunk")
	assert.Contains(t, scaffold, "[x] [01]+added line")
	assert.Contains(t, scaffold, "    [00] line 1")
}

func TestPlanScaffold_CustomCommitMessage(t *testing.T) {
	parsed := diffmodel.Parse(simpleDiff)
	scaffold := PlanScaffold(parsed, "fix: thing")
	assert.Contains(t, scaffold, "Commit message: fix: thing")
}

func TestDetectTags_FindsErrorHandlingAndLogging(t *testing.T) {
	diff := `diff --git a/f.go b/f.go
--- a/f.go
+++ b/f.go
@@ -1,1 +1,3 @@
 ctx
+if err != nil {
+	log.Printf("failed: %v", err)
`
	parsed := diffmodel.Parse(diff)
	h := parsed.GetHunk("f.go:0")
	tags := DetectTags(h)
	assert.Contains(t, tags, TagErrorHandling)
	assert.Contains(t, tags, TagLogging)
	assert.Contains(t, tags, TagConditional)
}

func TestDetectTags_NoMatchesYieldsEmpty(t *testing.T) {
	diff := `diff --git a/f.go b/f.go
--- a/f.go
+++ b/f.go
@@ -1,1 +1,2 @@
 ctx
+x := 1
`
	parsed := diffmodel.Parse(diff)
	h := parsed.GetHunk("f.go:0")
	assert.Empty(t, DetectTags(h))
}

func TestComplexityHint_DefaultIsOne(t *testing.T) {
	parsed := diffmodel.Parse(simpleDiff)
	h := parsed.GetHunk("file.txt:0")
	assert.Equal(t, 1, ComplexityHint(h, MinContextGap))
}

func TestComplexityHint_MultipleAdditionsIsFour(t *testing.T) {
	diff := `diff --git a/f.txt b/f.txt
--- a/f.txt
+++ b/f.txt
@@ -1,1 +1,3 @@
 ctx
+add1
+add2
`
	parsed := diffmodel.Parse(diff)
	h := parsed.GetHunk("f.txt:0")
	assert.Equal(t, 4, ComplexityHint(h, MinContextGap))
}

func TestComplexityHint_CappedAtThreeWhenSplittable(t *testing.T) {
	diff := `diff --git a/f.txt b/f.txt
--- a/f.txt
+++ b/f.txt
@@ -1,8 +1,9 @@
+add1
 ctx1
 ctx2
 ctx3
 ctx4
-rem1
 ctx5
+add2
+add3
`
	parsed := diffmodel.Parse(diff)
	h := parsed.GetHunk("f.txt:0")
	assert.Equal(t, 3, ComplexityHint(h, 3))
}

func TestAnalyze_BucketsHunks(t *testing.T) {
	parsed := diffmodel.Parse(simpleDiff)
	a := Analyze(parsed, MinContextGap)
	assert.Equal(t, []string{"file.txt:0"}, a.SimpleHunks)
	assert.Empty(t, a.SplittableHunks)
	assert.Empty(t, a.ComplexHunks)
}
