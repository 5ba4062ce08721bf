package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunStatus_String(t *testing.T) {
	assert.Equal(t, "pending", RunStatusPending.String())
	assert.Equal(t, "exploring", RunStatusExploring.String())
	assert.Equal(t, "completed", RunStatusCompleted.String())
	assert.Equal(t, "failed", RunStatusFailed.String())
	assert.Equal(t, "budget_exhausted", RunStatusBudget.String())
	assert.Equal(t, "unknown", RunStatus(42).String())
}

func TestSolveReport_JSONRoundTrip(t *testing.T) {
	report := &SolveReport{
		RunUUID:         "run-1",
		MapName:         "level1.txt",
		MapWidth:        8,
		MapHeight:       6,
		StateCount:      120,
		ExpandedCount:   120,
		Iterations:      120,
		Done:            true,
		MinGoalDistance: 7,
		GoalReachable:   true,
		Progress:        ProgressCounts{DeadEnd: 40, InProcess: 72, Goal: 8},
		Ghosts:          []GhostFrame{{Distance: 1, Frame: "..@.."}},
	}

	data, err := json.Marshal(report)
	require.NoError(t, err)

	var decoded SolveReport
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, report.RunUUID, decoded.RunUUID)
	assert.Equal(t, report.Progress, decoded.Progress)
	require.Len(t, decoded.Ghosts, 1)
	assert.Equal(t, 1, decoded.Ghosts[0].Distance)
}

func TestGhostFrame_OmittedWhenEmpty(t *testing.T) {
	data, err := json.Marshal(&SolveReport{RunUUID: "run-2"})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "ghosts")
}
