package planstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "commitsmith/pkg/errors"
	"commitsmith/pkg/executor"
	"commitsmith/pkg/stagingplan"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "plans.db")
	store, err := Open(dbPath)
	require.NoError(t, err)
	return store
}

func TestRecordAndGetRun_SuccessfulPlan(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	plan := &stagingplan.StagingPlan{
		CommitMessage: "fix: thing",
		Selections: []stagingplan.HunkSelection{
			{HunkID: "a.go:0", Mode: stagingplan.All},
		},
	}
	result := &executor.ExecResult{Success: true, StagedHunks: []string{"a.go:0"}}

	id, err := store.RecordRun(ctx, plan, result)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	run, err := store.GetRun(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "fix: thing", run.Plan.CommitMessage)
	assert.True(t, run.Result.Success)
	assert.Equal(t, []string{"a.go:0"}, run.Result.StagedHunks)
	assert.Nil(t, run.Result.Err)
}

func TestRecordAndGetRun_FailedPlanPreservesError(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	plan := &stagingplan.StagingPlan{CommitMessage: "untitled commit"}
	result := &executor.ExecResult{
		Success:     false,
		StagedHunks: []string{"a.go:0"},
		Err:         errs.HunkNotFoundError("a.go:99"),
	}

	id, err := store.RecordRun(ctx, plan, result)
	require.NoError(t, err)

	run, err := store.GetRun(ctx, id)
	require.NoError(t, err)
	assert.False(t, run.Result.Success)
	require.NotNil(t, run.Result.Err)
	assert.Contains(t, run.Result.Err.Error(), "Hunk not found: a.go:99")
}

func TestListRuns_ReturnsMostRecentFirst(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	_, err := store.RecordRun(ctx, &stagingplan.StagingPlan{CommitMessage: "first"}, &executor.ExecResult{Success: true})
	require.NoError(t, err)
	_, err = store.RecordRun(ctx, &stagingplan.StagingPlan{CommitMessage: "second"}, &executor.ExecResult{Success: true})
	require.NoError(t, err)

	runs, err := store.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "second", runs[0].Plan.CommitMessage)
	assert.Equal(t, "first", runs[1].Plan.CommitMessage)
}
