package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/puzzle-scout/pkg/errors"
	"github.com/puzzle-scout/pkg/model"
)

// GormRunRepository implements RunRepository using GORM.
type GormRunRepository struct {
	db *gorm.DB
}

// NewGormRunRepository creates a new GormRunRepository.
func NewGormRunRepository(db *gorm.DB) *GormRunRepository {
	return &GormRunRepository{db: db}
}

// Migrate creates or updates the solve_runs table.
func (r *GormRunRepository) Migrate() error {
	if err := r.db.AutoMigrate(&SolveRunRecord{}); err != nil {
		return apperrors.Wrap(apperrors.CodeDatabaseError, "migrate solve_runs", err)
	}
	return nil
}

// CreateRun inserts a new run record and fills in its ID.
func (r *GormRunRepository) CreateRun(ctx context.Context, run *model.SolveRun) error {
	rec := fromModel(run)
	if rec.CreateTime.IsZero() {
		rec.CreateTime = time.Now()
	}
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return apperrors.Wrap(apperrors.CodeDatabaseError, "insert run", err)
	}
	run.ID = rec.ID
	run.CreateTime = rec.CreateTime
	return nil
}

// GetRunByUUID retrieves a run by its UUID.
func (r *GormRunRepository) GetRunByUUID(ctx context.Context, uuid string) (*model.SolveRun, error) {
	var rec SolveRunRecord
	err := r.db.WithContext(ctx).Where("run_uuid = ?", uuid).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Newf(apperrors.CodeNotFound, "run not found: %s", uuid)
		}
		return nil, apperrors.Wrap(apperrors.CodeDatabaseError, "get run", err)
	}
	return rec.ToModel(), nil
}

// ListRuns retrieves the most recent runs, newest first.
func (r *GormRunRepository) ListRuns(ctx context.Context, limit int) ([]*model.SolveRun, error) {
	if limit <= 0 {
		limit = 50
	}
	var recs []SolveRunRecord
	err := r.db.WithContext(ctx).
		Order("id DESC").
		Limit(limit).
		Find(&recs).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeDatabaseError, "list runs", err)
	}

	runs := make([]*model.SolveRun, len(recs))
	for i := range recs {
		runs[i] = recs[i].ToModel()
	}
	return runs, nil
}

// UpdateStatus updates the status of a run.
func (r *GormRunRepository) UpdateStatus(ctx context.Context, uuid string, status model.RunStatus, info string) error {
	result := r.db.WithContext(ctx).
		Model(&SolveRunRecord{}).
		Where("run_uuid = ?", uuid).
		Updates(map[string]interface{}{
			"status":      status,
			"status_info": info,
		})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.CodeDatabaseError, "update status", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.Newf(apperrors.CodeNotFound, "run not found: %s", uuid)
	}
	return nil
}

// CompleteRun stores the final counters and report key of a run.
func (r *GormRunRepository) CompleteRun(ctx context.Context, run *model.SolveRun) error {
	result := r.db.WithContext(ctx).
		Model(&SolveRunRecord{}).
		Where("run_uuid = ?", run.RunUUID).
		Updates(map[string]interface{}{
			"status":            run.Status,
			"status_info":       run.StatusInfo,
			"state_count":       run.StateCount,
			"expanded_count":    run.ExpandedCount,
			"min_goal_distance": run.MinGoalDistance,
			"goal_reachable":    run.GoalReachable,
			"report_key":        run.ReportKey,
			"begin_time":        run.BeginTime,
			"end_time":          run.EndTime,
		})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.CodeDatabaseError, "complete run", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.Newf(apperrors.CodeNotFound, "run not found: %s", run.RunUUID)
	}
	return nil
}
