package repository

import (
	"time"

	"github.com/puzzle-scout/pkg/model"
)

// SolveRunRecord represents the solve_runs table.
type SolveRunRecord struct {
	ID              int64           `gorm:"column:id;primaryKey;autoIncrement"`
	RunUUID         string          `gorm:"column:run_uuid;type:varchar(64);uniqueIndex"`
	MapName         string          `gorm:"column:map_name;type:varchar(255)"`
	Status          model.RunStatus `gorm:"column:status"`
	StatusInfo      string          `gorm:"column:status_info;type:text"`
	StateCount      int             `gorm:"column:state_count"`
	ExpandedCount   int             `gorm:"column:expanded_count"`
	MinGoalDistance int             `gorm:"column:min_goal_distance"`
	GoalReachable   bool            `gorm:"column:goal_reachable"`
	ReportKey       string          `gorm:"column:report_key;type:varchar(512)"`
	CreateTime      time.Time       `gorm:"column:create_time;autoCreateTime"`
	BeginTime       *time.Time      `gorm:"column:begin_time"`
	EndTime         *time.Time      `gorm:"column:end_time"`
}

// TableName returns the table name for SolveRunRecord.
func (SolveRunRecord) TableName() string {
	return "solve_runs"
}

// ToModel converts the record to a model.SolveRun.
func (r *SolveRunRecord) ToModel() *model.SolveRun {
	return &model.SolveRun{
		ID:              r.ID,
		RunUUID:         r.RunUUID,
		MapName:         r.MapName,
		Status:          r.Status,
		StatusInfo:      r.StatusInfo,
		StateCount:      r.StateCount,
		ExpandedCount:   r.ExpandedCount,
		MinGoalDistance: r.MinGoalDistance,
		GoalReachable:   r.GoalReachable,
		ReportKey:       r.ReportKey,
		CreateTime:      r.CreateTime,
		BeginTime:       r.BeginTime,
		EndTime:         r.EndTime,
	}
}

// fromModel converts a model.SolveRun to a record.
func fromModel(run *model.SolveRun) *SolveRunRecord {
	return &SolveRunRecord{
		ID:              run.ID,
		RunUUID:         run.RunUUID,
		MapName:         run.MapName,
		Status:          run.Status,
		StatusInfo:      run.StatusInfo,
		StateCount:      run.StateCount,
		ExpandedCount:   run.ExpandedCount,
		MinGoalDistance: run.MinGoalDistance,
		GoalReachable:   run.GoalReachable,
		ReportKey:       run.ReportKey,
		CreateTime:      run.CreateTime,
		BeginTime:       run.BeginTime,
		EndTime:         run.EndTime,
	}
}
