// Package repository provides database persistence for solve runs.
// Only run summaries are stored; the state graph itself is never
// persisted.
package repository

import (
	"context"

	"github.com/puzzle-scout/pkg/model"
)

// RunRepository defines the interface for solve-run database operations.
type RunRepository interface {
	// CreateRun inserts a new run record and fills in its ID.
	CreateRun(ctx context.Context, run *model.SolveRun) error

	// GetRunByUUID retrieves a run by its UUID.
	GetRunByUUID(ctx context.Context, uuid string) (*model.SolveRun, error)

	// ListRuns retrieves the most recent runs, newest first.
	ListRuns(ctx context.Context, limit int) ([]*model.SolveRun, error)

	// UpdateStatus updates the status of a run.
	UpdateStatus(ctx context.Context, uuid string, status model.RunStatus, info string) error

	// CompleteRun stores the final counters and report key of a run.
	CompleteRun(ctx context.Context, run *model.SolveRun) error
}
