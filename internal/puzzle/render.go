package puzzle

// Renderer receives drawing calls from states. Alpha is 1.0 for the live
// state or a goal-path ghost and lower for other previews; back-ends map
// it to whatever intensity scale they have.
//
// Renderer implementations must not mutate states and must not call back
// into the solver.
type Renderer interface {
	// RenderPlayer draws the player.
	RenderPlayer(x, y int, dead, won bool, alpha float64)
	// RenderCell draws one map cell.
	RenderCell(x, y int, cell Cell, alpha float64)
}
