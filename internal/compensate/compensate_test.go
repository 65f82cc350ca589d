package compensate

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"commitsmith/pkg/stagingplan"
)

type fakeStager struct {
	staged []string
	failOn string
}

func (f *fakeStager) StageFile(ctx context.Context, path string) error {
	if f.failOn != "" && path == f.failOn {
		return assertError{path}
	}
	f.staged = append(f.staged, path)
	return nil
}

type assertError struct{ path string }

func (e assertError) Error() string { return "could not stage " + e.path }

func writeFixture(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestApply_AfterLineNumber(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "a.go", "line1\nline2\nline3")

	comps := []stagingplan.Compensation{
		{
			File:    "a.go",
			Type:    stagingplan.AddAfterLine,
			Anchor:  stagingplan.Anchor{LineNumber: 2, HasLineNumber: true},
			Content: "stub",
		},
	}
	stager := &fakeStager{}
	res := Apply(context.Background(), dir, comps, stager)
	require.Nil(t, res.Err)
	assert.Equal(t, []string{"a.go"}, res.ModifiedFiles)
	assert.Equal(t, []string{"a.go"}, stager.staged)

	out, err := os.ReadFile(filepath.Join(dir, "a.go"))
	require.NoError(t, err)
	assert.Contains(t, string(out), "line2\n// BEGIN COMPENSATION\nstub\n// END COMPENSATION\nline3")
}

func TestApply_AfterPattern(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "util.py", "def helper():\n    pass\n")

	comps := []stagingplan.Compensation{
		{
			File:    "util.py",
			Type:    stagingplan.AddAfterLine,
			Anchor:  stagingplan.Anchor{AfterPattern: "def helper():"},
			Content: "x = 1",
		},
	}
	res := Apply(context.Background(), dir, comps, &fakeStager{})
	require.Nil(t, res.Err)
	out, _ := os.ReadFile(filepath.Join(dir, "util.py"))
	assert.Contains(t, string(out), "# BEGIN COMPENSATION\nx = 1\n# END COMPENSATION")
}

func TestApply_BeforePattern(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "a.css", "body { color: red; }\n")

	comps := []stagingplan.Compensation{
		{
			File:    "a.css",
			Type:    stagingplan.AddBeforeLine,
			Anchor:  stagingplan.Anchor{BeforePattern: "body {"},
			Content: ".stub {}",
		},
	}
	res := Apply(context.Background(), dir, comps, &fakeStager{})
	require.Nil(t, res.Err)
	out, _ := os.ReadFile(filepath.Join(dir, "a.css"))
	assert.Contains(t, string(out), "/* BEGIN COMPENSATION */\n.stub {}\n/* END COMPENSATION */\nbody {")
}

func TestApply_AnchorNotFoundReportsCompensationFailed(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "a.go", "line1\n")

	comps := []stagingplan.Compensation{
		{File: "a.go", Type: stagingplan.AddAfterLine, Anchor: stagingplan.Anchor{AfterPattern: "missing"}, Content: "x"},
	}
	res := Apply(context.Background(), dir, comps, &fakeStager{})
	require.NotNil(t, res.Err)
	assert.Contains(t, res.Err.Error(), "insertion anchor not found")
	assert.Empty(t, res.ModifiedFiles)
}

func TestApply_PartialFailureReportsFilesAlreadyModified(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "a.go", "line1\nline2\n")
	writeFixture(t, dir, "b.go", "line1\nline2\n")

	comps := []stagingplan.Compensation{
		{File: "a.go", Type: stagingplan.AddAfterLine, Anchor: stagingplan.Anchor{LineNumber: 1, HasLineNumber: true}, Content: "ok"},
		{File: "b.go", Type: stagingplan.AddAfterLine, Anchor: stagingplan.Anchor{LineNumber: 1, HasLineNumber: true}, Content: "fails"},
	}
	stager := &fakeStager{failOn: "b.go"}
	res := Apply(context.Background(), dir, comps, stager)
	require.NotNil(t, res.Err)
	assert.Equal(t, []string{"a.go"}, res.ModifiedFiles)
	assert.Contains(t, res.Err.Error(), "cannot stage b.go")
}

func TestApply_ReplaceLineSubstitutesAnchorLine(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "a.go", "line1\nline2\nline3\n")

	comps := []stagingplan.Compensation{
		{File: "a.go", Type: stagingplan.ReplaceLine, Anchor: stagingplan.Anchor{LineNumber: 2, HasLineNumber: true}, Content: "replacement"},
	}
	res := Apply(context.Background(), dir, comps, &fakeStager{})
	require.Nil(t, res.Err)
	out, _ := os.ReadFile(filepath.Join(dir, "a.go"))
	assert.Contains(t, string(out), "line1\n// BEGIN COMPENSATION\nreplacement\n// END COMPENSATION\nline3")
	assert.NotContains(t, string(out), "line2")
}
