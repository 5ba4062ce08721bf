// Package service wires the puzzle, solver, storage and repository layers
// into the solve workflow the CLI and web server run.
package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/puzzle-scout/internal/puzzle"
	"github.com/puzzle-scout/internal/render"
	"github.com/puzzle-scout/internal/repository"
	"github.com/puzzle-scout/internal/solver"
	"github.com/puzzle-scout/internal/storage"
	"github.com/puzzle-scout/pkg/config"
	apperrors "github.com/puzzle-scout/pkg/errors"
	"github.com/puzzle-scout/pkg/model"
	"github.com/puzzle-scout/pkg/utils"
	"github.com/puzzle-scout/pkg/writer"
)

const tracerName = "puzzle-scout/service"

// SolveService runs complete solves: load a map, explore its state graph,
// classify it, render ghost previews and persist the outcome.
type SolveService struct {
	cfg    *config.Config
	logger utils.Logger
	repo   repository.RunRepository
	store  storage.Storage
	clock  utils.Clock
}

// New creates a SolveService. Repository and storage may be nil, in which
// case run records and report uploads are skipped.
func New(cfg *config.Config, logger utils.Logger, repo repository.RunRepository, store storage.Storage) *SolveService {
	if logger == nil {
		logger = &utils.NullLogger{}
	}
	return &SolveService{
		cfg:    cfg,
		logger: logger,
		repo:   repo,
		store:  store,
		clock:  utils.NewRealClock(),
	}
}

// SetClock replaces the clock, for tests.
func (s *SolveService) SetClock(clock utils.Clock) {
	s.clock = clock
}

// SolveFile loads a map from disk and solves it.
func (s *SolveService) SolveFile(ctx context.Context, mapPath string) (*model.SolveReport, error) {
	state, err := puzzle.Load(mapPath)
	if err != nil {
		return nil, err
	}
	return s.Solve(ctx, state)
}

// Solve explores the full state graph of the given start state, computes
// the classification relative to it, and returns the report.
func (s *SolveService) Solve(ctx context.Context, state *puzzle.State) (*model.SolveReport, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "solve")
	defer span.End()
	span.SetAttributes(
		attribute.String("map.name", state.Name()),
		attribute.Int("map.width", state.Width()),
		attribute.Int("map.height", state.Height()),
	)

	run := &model.SolveRun{
		RunUUID: uuid.NewString(),
		MapName: state.Name(),
		Status:  model.RunStatusPending,
	}
	log := s.logger.WithField("run", run.RunUUID)

	if s.repo != nil {
		if err := s.repo.CreateRun(ctx, run); err != nil {
			return nil, err
		}
	}

	report, err := s.solve(ctx, log, run, state)
	if err != nil {
		s.failRun(ctx, run, err)
		return nil, err
	}

	if err := s.finishRun(ctx, log, run, report); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *SolveService) solve(ctx context.Context, log utils.Logger, run *model.SolveRun, state *puzzle.State) (*model.SolveReport, error) {
	term := render.NewTerminal(state.Width(), state.Height())
	state.SetRenderer(term)

	buckets := int(float64(state.Width()*state.Height()) * s.cfg.Solver.BucketLoadFactor)
	if buckets < 1 {
		buckets = 1
	}
	slv, err := solver.New(buckets, int(puzzle.NumInputs), log)
	if err != nil {
		return nil, err
	}
	if err := slv.AddStartPoint(state); err != nil {
		return nil, err
	}

	begin := s.clock.Now()
	run.BeginTime = &begin
	run.Status = model.RunStatusExploring
	if s.repo != nil {
		if err := s.repo.UpdateStatus(ctx, run.RunUUID, run.Status, ""); err != nil {
			return nil, err
		}
	}

	timer := utils.NewPhaseTimer(s.clock)

	// Explore: drain the queue under the configured iteration budget,
	// checking for cancellation between expansion steps.
	exploreCtx, exploreSpan := otel.Tracer(tracerName).Start(ctx, "explore")
	timer.StartPhase("explore")
	iterations := 0
	budget := s.cfg.Solver.MaxIterations
	for !slv.Done() {
		if err := exploreCtx.Err(); err != nil {
			exploreSpan.End()
			return nil, apperrors.Wrap(apperrors.CodeSolverState, "exploration cancelled", err)
		}
		if budget > 0 && iterations >= budget {
			log.Warn("iteration budget %d exhausted with %d nodes queued", budget, slv.NodeCount()-slv.ExpandedCount())
			break
		}
		if _, err := slv.Process(); err != nil {
			exploreSpan.End()
			return nil, err
		}
		iterations++
	}
	timer.EndPhase("explore")
	exploreSpan.SetAttributes(
		attribute.Int("solver.iterations", iterations),
		attribute.Int("solver.nodes", slv.NodeCount()),
	)
	exploreSpan.End()

	// Classify relative to the start node.
	_, classifySpan := otel.Tracer(tracerName).Start(ctx, "classify")
	timer.StartPhase("classify")
	dist := slv.CalcViewState()
	timer.EndPhase("classify")
	classifySpan.SetAttributes(attribute.Int("solver.min_goal_distance", dist))
	classifySpan.End()

	var progress model.ProgressCounts
	slv.VisitNodes(func(v solver.NodeView) {
		switch v.Progress {
		case solver.DeadEnd:
			progress.DeadEnd++
		case solver.InProcess:
			progress.InProcess++
		case solver.Goal:
			progress.Goal++
		}
	})

	report := &model.SolveReport{
		RunUUID:         run.RunUUID,
		MapName:         state.Name(),
		MapWidth:        state.Width(),
		MapHeight:       state.Height(),
		StateCount:      slv.NodeCount(),
		ExpandedCount:   slv.ExpandedCount(),
		Iterations:      iterations,
		Done:            slv.Done(),
		MinGoalDistance: dist,
		GoalReachable:   dist < solver.MaxSteps,
		Progress:        progress,
		Ghosts:          s.renderGhosts(slv, term),
		ExploreMillis:   timer.PhaseDuration("explore").Milliseconds(),
		ClassifyMillis:  timer.PhaseDuration("classify").Milliseconds(),
		SolvedAt:        s.clock.Now(),
	}

	run.StateCount = report.StateCount
	run.ExpandedCount = report.ExpandedCount
	run.MinGoalDistance = report.MinGoalDistance
	run.GoalReachable = report.GoalReachable
	run.Status = model.RunStatusCompleted
	if !report.Done {
		run.Status = model.RunStatusBudget
	}

	log.Info("solved %s: %d states, goal distance %s",
		state.Name(), report.StateCount, distanceString(dist))
	return report, nil
}

// renderGhosts draws the live state with its look-ahead previews overlaid
// at each configured depth.
func (s *SolveService) renderGhosts(slv *solver.Solver, term *render.Terminal) []model.GhostFrame {
	current, ok := slv.Current().(*puzzle.State)
	if !ok {
		return nil
	}

	frames := make([]model.GhostFrame, 0, len(s.cfg.Solver.GhostDepths))
	for _, depth := range s.cfg.Solver.GhostDepths {
		term.Clear()
		current.Render()
		slv.Render(depth)
		frames = append(frames, model.GhostFrame{Distance: depth, Frame: term.Frame()})
	}
	return frames
}

func (s *SolveService) finishRun(ctx context.Context, log utils.Logger, run *model.SolveRun, report *model.SolveReport) error {
	if s.store != nil {
		key := fmt.Sprintf("runs/%s/report.json", run.RunUUID)
		var buf bytes.Buffer
		if err := writer.NewPrettyJSONWriter[*model.SolveReport]().Write(report, &buf); err != nil {
			return apperrors.Wrap(apperrors.CodeStorageError, "encode report", err)
		}
		if err := s.store.Upload(ctx, key, &buf); err != nil {
			return apperrors.Wrap(apperrors.CodeStorageError, "upload report", err)
		}
		run.ReportKey = key
		log.Debug("report stored at %s", s.store.GetURL(key))
	}

	end := s.clock.Now()
	run.EndTime = &end
	if s.repo != nil {
		if err := s.repo.CompleteRun(ctx, run); err != nil {
			return err
		}
	}
	return nil
}

func (s *SolveService) failRun(ctx context.Context, run *model.SolveRun, cause error) {
	if s.repo == nil {
		return
	}
	if err := s.repo.UpdateStatus(ctx, run.RunUUID, model.RunStatusFailed, cause.Error()); err != nil {
		s.logger.Warn("failed to record run failure: %v", err)
	}
}

func distanceString(dist int) string {
	if dist >= solver.MaxSteps {
		return "unreachable"
	}
	return fmt.Sprintf("%d", dist)
}
