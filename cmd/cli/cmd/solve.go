package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/puzzle-scout/internal/repository"
	"github.com/puzzle-scout/internal/service"
	"github.com/puzzle-scout/internal/storage"
	"github.com/puzzle-scout/pkg/model"
	"github.com/puzzle-scout/pkg/parallel"
)

var (
	// Solve command flags
	solveRecord     bool
	solveNoStore    bool
	solveShowGhosts bool
	solveWorkers    int
)

// solveCmd represents the solve command
var solveCmd = &cobra.Command{
	Use:   "solve <map-file>...",
	Short: "Explore a map's full state graph and report the solution distance",
	Long: `Explore every configuration reachable in the given maps, classify each
state graph relative to its start position, and write a report per map.

The report contains the state and expansion counts, the minimum number of
moves to any winning configuration, a classification histogram, and ghost
previews at the configured look-ahead depths. Multiple maps are solved
concurrently; each individual solve stays single-threaded.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSolve,
}

func init() {
	rootCmd.AddCommand(solveCmd)

	binName := BinName()
	solveCmd.Example = `  # Solve a map and print the summary
  ` + binName + ` solve maps/level1.txt

  # Show the ghost previews in the terminal
  ` + binName + ` solve maps/level1.txt --ghosts

  # Record the run in the configured database
  ` + binName + ` solve maps/level1.txt --record`

	solveCmd.Flags().BoolVar(&solveRecord, "record", false, "Record the run in the configured database")
	solveCmd.Flags().BoolVar(&solveNoStore, "no-store", false, "Skip writing the report to storage")
	solveCmd.Flags().BoolVar(&solveShowGhosts, "ghosts", false, "Print ghost previews to the terminal")
	solveCmd.Flags().IntVar(&solveWorkers, "workers", 0, "Concurrent solves when given multiple maps (0 = auto)")
}

func runSolve(cmd *cobra.Command, args []string) error {
	log := GetLogger()

	var repo repository.RunRepository
	if solveRecord {
		db, err := repository.NewGormDB(&cfg.Database)
		if err != nil {
			return err
		}
		gormRepo := repository.NewGormRunRepository(db)
		if err := gormRepo.Migrate(); err != nil {
			return err
		}
		repo = gormRepo
	}

	var store storage.Storage
	if !solveNoStore {
		var err error
		store, err = storage.NewStorage(&cfg.Storage)
		if err != nil {
			return err
		}
	}

	svc := service.New(cfg, log, repo, store)

	poolCfg := parallel.DefaultPoolConfig()
	if solveWorkers > 0 {
		poolCfg = poolCfg.WithWorkers(solveWorkers)
	}
	pool := parallel.NewWorkerPool[string, *model.SolveReport](poolCfg)
	results := pool.Execute(cmd.Context(), args, func(ctx context.Context, mapPath string) (*model.SolveReport, error) {
		return svc.SolveFile(ctx, mapPath)
	})

	var failed int
	for i, res := range results {
		if i > 0 {
			fmt.Println()
		}
		if res.Error != nil {
			failed++
			fmt.Printf("map:            %s\nerror:          %v\n", res.Input, res.Error)
			continue
		}
		printReport(res.Result)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d maps failed", failed, len(results))
	}
	return nil
}

func printReport(report *model.SolveReport) {
	fmt.Printf("map:            %s (%dx%d)\n", report.MapName, report.MapWidth, report.MapHeight)
	fmt.Printf("states:         %d (%d expanded, complete: %v)\n", report.StateCount, report.ExpandedCount, report.Done)
	if report.GoalReachable {
		fmt.Printf("goal distance:  %d moves\n", report.MinGoalDistance)
	} else {
		fmt.Printf("goal distance:  unreachable\n")
	}
	fmt.Printf("classification: %d dead ends, %d in process, %d on goal path\n",
		report.Progress.DeadEnd, report.Progress.InProcess, report.Progress.Goal)
	fmt.Printf("timing:         explore %dms, classify %dms\n", report.ExploreMillis, report.ClassifyMillis)

	if solveShowGhosts {
		for _, ghost := range report.Ghosts {
			fmt.Printf("\nghosts at distance %d:\n%s\n", ghost.Distance, ghost.Frame)
		}
	}
}
