package diffmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// S1 from spec.md §8: a simple insertion.
func TestParse_SimpleInsertion(t *testing.T) {
	diff := `diff --git a/file.txt b/file.txt
index 1111111..2222222 100644
--- a/file.txt
+++ b/file.txt
@@ -1,3 +1,4 @@
 line 1
+added line
 line 2
 line 3
`
	parsed := Parse(diff)
	require.Len(t, parsed.Files, 1)
	file := parsed.Files[0]
	require.Len(t, file.Hunks, 1)

	h := file.Hunks[0]
	assert.Equal(t, "file.txt:0", h.ID)
	assert.Equal(t, 3, h.OldCount)
	assert.Equal(t, 4, h.NewCount)

	want := []Line{
		{Context, "line 1"},
		{Add, "added line"},
		{Context, "line 2"},
		{Context, "line 3"},
	}
	assert.Equal(t, want, h.Lines)
}

func TestParse_MultipleHunksGetSequentialIndices(t *testing.T) {
	diff := `diff --git a/a.go b/a.go
--- a/a.go
+++ b/a.go
@@ -1,2 +1,2 @@
-old
+new
@@ -10,2 +10,2 @@
-old2
+new2
`
	parsed := Parse(diff)
	hunks := parsed.GetFileHunks("a.go")
	require.Len(t, hunks, 2)
	assert.Equal(t, "a.go:0", hunks[0].ID)
	assert.Equal(t, "a.go:1", hunks[1].ID)
	assert.Equal(t, 0, hunks[0].Index)
	assert.Equal(t, 1, hunks[1].Index)
}

func TestParse_MultipleFiles_IDsUnique(t *testing.T) {
	diff := `diff --git a/a.go b/a.go
--- a/a.go
+++ b/a.go
@@ -1,1 +1,1 @@
-old
+new
diff --git a/b.go b/b.go
--- a/b.go
+++ b/b.go
@@ -1,1 +1,1 @@
-old
+new
`
	parsed := Parse(diff)
	seen := map[string]bool{}
	for _, h := range parsed.GetAllHunks() {
		assert.False(t, seen[h.ID], "duplicate id %s", h.ID)
		seen[h.ID] = true
	}
	assert.Len(t, seen, 2)
}

func TestParse_NewAndDeletedFileMetadata(t *testing.T) {
	diff := `diff --git a/new.txt b/new.txt
new file mode 100644
index 0000000..1111111
--- /dev/null
+++ b/new.txt
@@ -0,0 +1,1 @@
+hello
diff --git a/gone.txt b/gone.txt
deleted file mode 100644
index 1111111..0000000
--- a/gone.txt
+++ /dev/null
@@ -1,1 +0,0 @@
-bye
`
	parsed := Parse(diff)
	require.Len(t, parsed.Files, 2)
	assert.True(t, parsed.Files[0].IsNew)
	assert.False(t, parsed.Files[0].IsDeleted)
	assert.True(t, parsed.Files[1].IsDeleted)
	assert.False(t, parsed.Files[1].IsNew)
}

func TestParse_Rename(t *testing.T) {
	diff := `diff --git a/old_name.go b/new_name.go
similarity index 100%
rename from old_name.go
rename to new_name.go
`
	parsed := Parse(diff)
	require.Len(t, parsed.Files, 1)
	assert.True(t, parsed.Files[0].IsRenamed)
}

func TestParse_MalformedInputNeverPanics(t *testing.T) {
	inputs := []string{
		"",
		"not a diff at all\njust some text\n",
		"diff --git a/x b/x\n@@ garbage @@\n+still captured?\n",
		"@@ -1,1 +1,1 @@\n+orphan hunk body with no file header\n",
	}
	for _, in := range inputs {
		assert.NotPanics(t, func() {
			Parse(in)
		})
	}
}

func TestParse_OmittedCountsDefaultToOne(t *testing.T) {
	diff := `diff --git a/f.go b/f.go
--- a/f.go
+++ b/f.go
@@ -5 +5 @@
-old
+new
`
	parsed := Parse(diff)
	h := parsed.GetHunk("f.go:0")
	require.NotNil(t, h)
	assert.Equal(t, 1, h.OldCount)
	assert.Equal(t, 1, h.NewCount)
	assert.Equal(t, 5, h.OldStart)
	assert.Equal(t, 5, h.NewStart)
}

func TestParseHunkHeader_StandaloneHelper(t *testing.T) {
	fields, ok := ParseHunkHeader("@@ -10,5 +12,7 @@ func doThing()")
	require.True(t, ok)
	assert.Equal(t, 10, fields.OldStart)
	assert.Equal(t, 5, fields.OldCount)
	assert.Equal(t, 12, fields.NewStart)
	assert.Equal(t, 7, fields.NewCount)
	assert.Equal(t, "func doThing()", fields.Context)

	_, ok = ParseHunkHeader("not a hunk header")
	assert.False(t, ok)
}

func TestValidateHunk(t *testing.T) {
	good := &Hunk{
		OldCount: 2, NewCount: 2,
		Lines: []Line{{Context, "a"}, {Context, "b"}},
	}
	assert.NoError(t, ValidateHunk(good))

	badOld := &Hunk{
		ID:       "f:0",
		OldCount: 5, NewCount: 2,
		Lines: []Line{{Context, "a"}, {Context, "b"}},
	}
	err := ValidateHunk(badOld)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Old count mismatch")

	badNew := &Hunk{
		ID:       "f:0",
		OldCount: 2, NewCount: 5,
		Lines: []Line{{Context, "a"}, {Context, "b"}},
	}
	err = ValidateHunk(badNew)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "New count mismatch")
}
