// Package render provides rendering back-ends for puzzle states. The
// terminal renderer draws into an in-memory character frame that can be
// printed or embedded in reports.
package render

import (
	"strings"

	"github.com/puzzle-scout/internal/puzzle"
)

// Terminal is a character frame buffer implementing puzzle.Renderer.
// Draw calls overwrite cells in place; ghosts drawn after the live state
// overlay it. Alpha below the dim threshold selects faint glyphs.
type Terminal struct {
	width, height int
	grid          [][]rune
}

// dimThreshold separates full glyphs from faint ones.
const dimThreshold = 0.75

// NewTerminal creates a frame buffer for a map of the given size.
func NewTerminal(width, height int) *Terminal {
	t := &Terminal{width: width, height: height}
	t.Clear()
	return t
}

// Clear resets the frame to spaces.
func (t *Terminal) Clear() {
	t.grid = make([][]rune, t.height)
	for y := range t.grid {
		row := make([]rune, t.width)
		for x := range row {
			row[x] = ' '
		}
		t.grid[y] = row
	}
}

// RenderCell draws one map cell.
func (t *Terminal) RenderCell(x, y int, cell puzzle.Cell, alpha float64) {
	t.set(x, y, cellGlyph(cell, alpha >= dimThreshold))
}

// RenderPlayer draws the player.
func (t *Terminal) RenderPlayer(x, y int, dead, won bool, alpha float64) {
	g := '@'
	switch {
	case dead:
		g = 'X'
	case won:
		g = 'W'
	case alpha < dimThreshold:
		g = 'o'
	}
	t.set(x, y, g)
}

// Frame returns the rendered frame as newline-joined rows.
func (t *Terminal) Frame() string {
	rows := make([]string, t.height)
	for y := range t.grid {
		rows[y] = string(t.grid[y])
	}
	return strings.Join(rows, "\n")
}

func (t *Terminal) set(x, y int, g rune) {
	if x < 0 || x >= t.width || y < 0 || y >= t.height {
		return
	}
	t.grid[y][x] = g
}

func cellGlyph(cell puzzle.Cell, full bool) rune {
	switch cell.Kind {
	case puzzle.CellWall:
		return '#'
	case puzzle.CellEmpty:
		if full {
			return '.'
		}
		return ','
	case puzzle.CellTrap:
		if full {
			return '^'
		}
		return '~'
	case puzzle.CellDoor:
		if cell.Open {
			return '/'
		}
		return '+'
	case puzzle.CellTrigger:
		return '!'
	case puzzle.CellBlock:
		if full {
			return '%'
		}
		return 'b'
	case puzzle.CellGoal:
		return '*'
	default:
		return '?'
	}
}
