package puzzle

import (
	apperrors "github.com/puzzle-scout/pkg/errors"
)

// DeltaKind identifies the kind of a state delta.
type DeltaKind uint8

const (
	// DeltaMovePlayer shifts the player by DX, DY.
	DeltaMovePlayer DeltaKind = iota
	// DeltaSetDead marks the player dead.
	DeltaSetDead
	// DeltaSetWon marks the player as having won.
	DeltaSetWon
	// DeltaToggleDoor flips the door at X, Y.
	DeltaToggleDoor
	// DeltaPushBlock moves the block at X, Y onto ToX, ToY.
	DeltaPushBlock
	// DeltaDemolishBlock drops the block at X, Y into the hole at ToX, ToY,
	// leaving both cells empty.
	DeltaDemolishBlock
)

// Delta is one reversible unit of change to a state. It carries the
// fields needed both to apply it and to revert it; Prev and PrevTo are
// the pre-move snapshots of the affected cells for the block deltas.
type Delta struct {
	Kind   DeltaKind
	DX, DY int
	X, Y   int
	ToX    int
	ToY    int
	Prev   Cell
	PrevTo Cell
}

// Action is the flat sequence of deltas produced by one player move.
type Action struct {
	deltas []Delta
}

// Apply applies all deltas in order.
func (a *Action) Apply(s *State) {
	for i := range a.deltas {
		a.deltas[i].apply(s)
	}
}

// Revert undoes all deltas in reverse order.
func (a *Action) Revert(s *State) {
	for i := len(a.deltas) - 1; i >= 0; i-- {
		a.deltas[i].revert(s)
	}
}

// Deltas returns the deltas of the action.
func (a *Action) Deltas() []Delta {
	return a.deltas
}

func (a *Action) add(d Delta) {
	a.deltas = append(a.deltas, d)
}

// buildAction constructs the action for an applicable input without
// mutating the state. The caller must have checked CanInput.
func (s *State) buildAction(in Input) *Action {
	dx, dy := dirs[in][0], dirs[in][1]
	nx, ny := s.player.X+dx, s.player.Y+dy

	a := &Action{}
	a.add(Delta{Kind: DeltaMovePlayer, DX: dx, DY: dy})

	switch c := s.Cell(nx, ny); c.Kind {
	case CellTrap:
		a.add(Delta{Kind: DeltaSetDead})
	case CellGoal:
		a.add(Delta{Kind: DeltaSetWon})
	case CellTrigger:
		a.add(Delta{Kind: DeltaToggleDoor, X: c.DoorX, Y: c.DoorY})
	case CellBlock:
		bx, by := nx+dx, ny+dy
		kind := DeltaPushBlock
		if s.Cell(bx, by).isHole() {
			kind = DeltaDemolishBlock
		}
		a.add(Delta{
			Kind:   kind,
			X:      nx,
			Y:      ny,
			ToX:    bx,
			ToY:    by,
			Prev:   s.Cell(nx, ny).clone(),
			PrevTo: s.Cell(bx, by).clone(),
		})
	}

	return a
}

func (d *Delta) apply(s *State) {
	switch d.Kind {
	case DeltaMovePlayer:
		s.player.X += d.DX
		s.player.Y += d.DY
	case DeltaSetDead:
		s.player.Dead = true
	case DeltaSetWon:
		s.player.Won = true
	case DeltaToggleDoor:
		s.cellAt(d.X, d.Y).toggle()
	case DeltaPushBlock:
		block := s.Cell(d.X, d.Y)
		dest := s.Cell(d.ToX, d.ToY).clone()
		below := Cell{Kind: CellEmpty}
		if block.Below != nil {
			below = *block.Below
		}
		*s.cellAt(d.X, d.Y) = below
		*s.cellAt(d.ToX, d.ToY) = Cell{Kind: CellBlock, Below: &dest}
	case DeltaDemolishBlock:
		*s.cellAt(d.X, d.Y) = Cell{Kind: CellEmpty}
		*s.cellAt(d.ToX, d.ToY) = Cell{Kind: CellEmpty}
	}
}

func (d *Delta) revert(s *State) {
	switch d.Kind {
	case DeltaMovePlayer:
		s.player.X -= d.DX
		s.player.Y -= d.DY
	case DeltaSetDead:
		s.player.Dead = false
	case DeltaSetWon:
		s.player.Won = false
	case DeltaToggleDoor:
		s.cellAt(d.X, d.Y).toggle()
	case DeltaPushBlock, DeltaDemolishBlock:
		*s.cellAt(d.X, d.Y) = d.Prev.clone()
		*s.cellAt(d.ToX, d.ToY) = d.PrevTo.clone()
	}
}

// Move performs the input on this state in place, returning the action so
// the caller can undo it later. Inapplicable inputs return an error.
func (s *State) Move(in Input) (*Action, error) {
	if !s.CanInput(in) {
		return nil, apperrors.Newf(apperrors.CodeInvalidInput, "input %s not applicable", in)
	}
	a := s.buildAction(in)
	a.Apply(s)
	return a, nil
}

// Undo reverts a previously applied action.
func (s *State) Undo(a *Action) {
	a.Revert(s)
}
