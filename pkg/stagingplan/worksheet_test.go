package stagingplan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorksheet_FileLevelAllExpandsHunks(t *testing.T) {
	ws := Worksheet{
		CommitMessage: "msg",
		Files: []WorksheetFile{
			{Path: "a.go", Include: "all", Hunks: []WorksheetHunk{
				{HunkID: "a.go:0", Include: "partial"},
				{HunkID: "a.go:1", Include: "none"},
			}},
		},
	}
	plan := ws.ToStagingPlan()
	require.Len(t, plan.Selections, 2)
	assert.Equal(t, All, plan.Selections[0].Mode)
	assert.Equal(t, All, plan.Selections[1].Mode)
}

func TestWorksheet_PartialDefersToHunkInclude(t *testing.T) {
	ws := Worksheet{
		Files: []WorksheetFile{
			{Path: "a.go", Include: "partial", Hunks: []WorksheetHunk{
				{HunkID: "a.go:0", Include: "all"},
				{HunkID: "a.go:1", Include: "none"},
				{HunkID: "a.go:2", Include: "partial", Lines: []WorksheetLine{
					{Index: 0, IsAdd: true, Include: true},
					{Index: 1, IsAdd: true, Include: false},
					{Index: 2, IsRemove: true, Include: true},
				}},
			}},
		},
	}
	plan := ws.ToStagingPlan()
	require.Len(t, plan.Selections, 3)
	assert.Equal(t, All, plan.Selections[0].Mode)
	assert.Equal(t, None, plan.Selections[1].Mode)
	assert.Equal(t, Partial, plan.Selections[2].Mode)
	assert.True(t, plan.Selections[2].IncludeAdditions[0])
	assert.False(t, plan.Selections[2].IncludeAdditions[1])
	assert.True(t, plan.Selections[2].IncludeRemovals[2])
}

func TestWorksheet_EmptyCommitMessageDefaults(t *testing.T) {
	plan := Worksheet{}.ToStagingPlan()
	assert.Equal(t, DefaultCommitMessage, plan.CommitMessage)
}
