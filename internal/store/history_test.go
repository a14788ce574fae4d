package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initTestHistory(t *testing.T) {
	t.Helper()
	require.NoError(t, InitHistory(filepath.Join(t.TempDir(), "history.db")))
}

func TestRunLifecycle(t *testing.T) {
	initTestHistory(t)

	runID := uuid.New().String()
	require.NoError(t, SaveRun(runID))
	require.NoError(t, UpdateRunCounts(runID, 3, 2, 3))
	require.NoError(t, UpdateRunStatus(runID, "completed"))

	runs, err := ListRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	assert.Equal(t, runID, runs[0]["id"])
	assert.Equal(t, "completed", runs[0]["status"])
	assert.Equal(t, 3, runs[0]["employees"])
	assert.Equal(t, 2, runs[0]["departments"])
	assert.Equal(t, 3, runs[0]["projects"])
}

func TestSaveRunError(t *testing.T) {
	initTestHistory(t)

	runID := uuid.New().String()
	require.NoError(t, SaveRun(runID))
	require.NoError(t, UpdateRunStatus(runID, "failed"))
	require.NoError(t, SaveRunError(runID, "query", errors.New("Table 'db.employees' doesn't exist")))

	errs, err := GetRunErrors(runID)
	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, "query", errs[0]["kind"])
	assert.Contains(t, errs[0]["message"], "doesn't exist")
}

func TestSaveRunErrorNil(t *testing.T) {
	initTestHistory(t)
	assert.NoError(t, SaveRunError(uuid.New().String(), "render", nil))
}

func TestListRunsLimit(t *testing.T) {
	initTestHistory(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, SaveRun(uuid.New().String()))
	}

	runs, err := ListRuns(3)
	require.NoError(t, err)
	assert.Len(t, runs, 3)
}
