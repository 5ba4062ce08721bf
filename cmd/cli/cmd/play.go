package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/puzzle-scout/internal/puzzle"
	"github.com/puzzle-scout/internal/render"
	"github.com/puzzle-scout/internal/solver"
)

var (
	// Play command flags
	playGhostDepth int
)

// playCmd represents the play command
var playCmd = &cobra.Command{
	Use:   "play <map-file>",
	Short: "Play a map interactively with ghost previews",
	Long: `Play a map turn by turn. After every move the full state graph is
reclassified from your position and ghosts of possible futures at the
chosen look-ahead distance are overlaid on the map.

Controls: w/a/s/d to move, u to undo, q to quit.`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().IntVarP(&playGhostDepth, "depth", "d", 2, "Ghost look-ahead distance")
}

// inputKeys maps keys to puzzle inputs.
var inputKeys = map[string]puzzle.Input{
	"w": puzzle.InputUp,
	"d": puzzle.InputRight,
	"s": puzzle.InputDown,
	"a": puzzle.InputLeft,
}

func runPlay(cmd *cobra.Command, args []string) error {
	log := GetLogger()

	state, err := puzzle.Load(args[0])
	if err != nil {
		return err
	}
	term := render.NewTerminal(state.Width(), state.Height())
	state.SetRenderer(term)

	buckets := state.Width() * state.Height()
	slv, err := solver.New(buckets, int(puzzle.NumInputs), log)
	if err != nil {
		return err
	}
	if err := slv.AddStartPoint(state); err != nil {
		return err
	}

	log.Info("exploring %s...", state.Name())
	for !slv.Done() {
		if _, err := slv.Process(); err != nil {
			return err
		}
	}
	log.Info("explored %d states", slv.NodeCount())

	// Moves taken so far, for undo by replay from the start node.
	var moves []puzzle.Input

	drawTurn(slv, term, playGhostDepth)
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return nil
		}
		key := strings.TrimSpace(strings.ToLower(scanner.Text()))

		switch key {
		case "q", "quit":
			return nil
		case "u", "undo":
			if len(moves) == 0 {
				fmt.Println("nothing to undo")
				continue
			}
			moves = moves[:len(moves)-1]
			if err := slv.ResetCurrent(); err != nil {
				return err
			}
			for _, in := range moves {
				if err := slv.Update(int(in)); err != nil {
					return err
				}
			}
		case "":
			continue
		default:
			in, ok := inputKeys[key]
			if !ok {
				fmt.Println("controls: w/a/s/d move, u undo, q quit")
				continue
			}
			if !slv.CanTransition(int(in)) {
				fmt.Printf("cannot move %s\n", in)
				continue
			}
			if err := slv.Update(int(in)); err != nil {
				return err
			}
			moves = append(moves, in)
		}

		drawTurn(slv, term, playGhostDepth)

		current := slv.Current().(*puzzle.State)
		if current.HasWon() {
			fmt.Printf("you won in %d moves\n", len(moves))
			return nil
		}
		if current.Player().Dead {
			fmt.Println("you are dead: u to undo")
		}
	}
}

// drawTurn reclassifies from the current node and prints the map with the
// ghost overlay.
func drawTurn(slv *solver.Solver, term *render.Terminal, depth int) {
	dist := slv.CalcViewState()

	term.Clear()
	current := slv.Current().(*puzzle.State)
	current.Render()
	slv.Render(depth)

	fmt.Println(term.Frame())
	if dist < solver.MaxSteps {
		fmt.Printf("goal in %d moves\n", dist)
	} else {
		fmt.Println("goal unreachable from here")
	}
}
