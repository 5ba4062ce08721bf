package puzzle

import (
	"github.com/puzzle-scout/internal/solver"
)

// Input is one player move.
type Input int

const (
	// InputUp moves the player up.
	InputUp Input = iota
	// InputRight moves the player right.
	InputRight
	// InputDown moves the player down.
	InputDown
	// InputLeft moves the player left.
	InputLeft
	// NumInputs is the transition count T for the solver.
	NumInputs
)

// String returns the string representation of Input.
func (in Input) String() string {
	switch in {
	case InputUp:
		return "up"
	case InputRight:
		return "right"
	case InputDown:
		return "down"
	case InputLeft:
		return "left"
	default:
		return "unknown"
	}
}

// dirs maps inputs to grid offsets. Y grows downwards.
var dirs = [NumInputs][2]int{
	InputUp:    {0, -1},
	InputRight: {1, 0},
	InputDown:  {0, 1},
	InputLeft:  {-1, 0},
}

// Player is the player's position and fate.
type Player struct {
	X, Y int
	Dead bool
	Won  bool
}

// Equals reports value equality of two players.
func (p Player) Equals(other Player) bool {
	return p == other
}

// State is one puzzle configuration: the map contents plus the player.
// It satisfies the solver's State capability.
type State struct {
	width, height int
	// cells is column-major: index x*height + y.
	cells    []Cell
	player   Player
	name     string
	renderer Renderer
}

// outOfBounds is what movement sees beyond the map edge.
var outOfBounds = Cell{Kind: CellWall}

// Width returns the map width in cells.
func (s *State) Width() int { return s.width }

// Height returns the map height in cells.
func (s *State) Height() int { return s.height }

// Name returns the name given to the map at load time.
func (s *State) Name() string { return s.name }

// Player returns the player's position and fate.
func (s *State) Player() Player { return s.player }

// Cell returns the cell at the given position. Positions outside the map
// read as walls.
func (s *State) Cell(x, y int) Cell {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return outOfBounds
	}
	return s.cells[x*s.height+y]
}

func (s *State) cellAt(x, y int) *Cell {
	return &s.cells[x*s.height+y]
}

// SetRenderer attaches the renderer used by Render and RenderGhosts.
// Clones share the renderer.
func (s *State) SetRenderer(r Renderer) {
	s.renderer = r
}

// canPass reports whether the player can enter (x, y) moving in direction
// dir. Blocks are passable when they can be pushed onward, which recurses
// through chains of blocks.
func (s *State) canPass(x, y int, dir Input) bool {
	switch c := s.Cell(x, y); c.Kind {
	case CellEmpty, CellTrap, CellTrigger, CellGoal:
		return true
	case CellWall:
		return false
	case CellDoor:
		return c.Open
	case CellBlock:
		return s.canPass(x+dirs[dir][0], y+dirs[dir][1], dir)
	default:
		return false
	}
}

// CanInput reports whether the given move is applicable: the player is
// alive, has not won, and the destination can be entered.
func (s *State) CanInput(in Input) bool {
	if in < 0 || in >= NumInputs || s.player.Dead || s.player.Won {
		return false
	}
	return s.canPass(s.player.X+dirs[in][0], s.player.Y+dirs[in][1], in)
}

//
// Solver capability
//

// Equals reports value equality with another solver state.
func (s *State) Equals(other solver.State) bool {
	o, ok := other.(*State)
	if !ok || s.width != o.width || s.height != o.height {
		return false
	}
	if !s.player.Equals(o.player) {
		return false
	}
	for i := range s.cells {
		if !s.cells[i].Equals(o.cells[i]) {
			return false
		}
	}
	return true
}

// Hash returns a weak bucket hint derived from the player position.
func (s *State) Hash() int {
	return s.player.X + s.width*s.player.Y
}

// HasWon reports whether the player has reached a goal.
func (s *State) HasWon() bool {
	return s.player.Won
}

// Transition returns the configuration after input i, or nil when the
// input is not applicable.
func (s *State) Transition(i int) solver.State {
	in := Input(i)
	if !s.CanInput(in) {
		return nil
	}
	next := s.Clone().(*State)
	action := s.buildAction(in)
	action.Apply(next)
	return next
}

// Clone returns a deep copy sharing only the renderer.
func (s *State) Clone() solver.State {
	cells := make([]Cell, len(s.cells))
	for i := range s.cells {
		cells[i] = s.cells[i].clone()
	}
	return &State{
		width:    s.width,
		height:   s.height,
		cells:    cells,
		player:   s.player,
		name:     s.name,
		renderer: s.renderer,
	}
}

// RenderGhosts renders this state as a look-ahead preview of the current
// one. Dead ends are not drawn; goal-path states render opaque, others
// faint.
func (s *State) RenderGhosts(progress solver.Progress, current solver.State) {
	if progress == solver.DeadEnd {
		return
	}
	alpha := 0.25
	if progress == solver.Goal {
		alpha = 1.0
	}
	cur, _ := current.(*State)
	s.render(alpha, cur)
}

// Render draws the full state.
func (s *State) Render() {
	s.render(1.0, nil)
}

// render draws the state, skipping anything identical to current.
func (s *State) render(alpha float64, current *State) {
	if s.renderer == nil {
		return
	}
	for x := 0; x < s.width; x++ {
		for y := 0; y < s.height; y++ {
			if current != nil && s.Cell(x, y).Equals(current.Cell(x, y)) {
				continue
			}
			s.renderer.RenderCell(x, y, s.Cell(x, y), alpha)
		}
	}

	if current != nil && s.player.Equals(current.player) {
		return
	}
	s.renderer.RenderPlayer(s.player.X, s.player.Y, s.player.Dead, s.player.Won, alpha)
}
