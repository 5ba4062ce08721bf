package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/puzzle-scout/internal/puzzle"
)

func parseState(t *testing.T, raw string) *puzzle.State {
	t.Helper()
	s, err := puzzle.Parse("test", strings.NewReader(strings.TrimSpace(raw)+"\n"))
	require.NoError(t, err)
	return s
}

func TestTerminal_FullRender(t *testing.T) {
	s := parseState(t, `
5,3
#####
#@.*#
#####`)

	term := NewTerminal(s.Width(), s.Height())
	s.SetRenderer(term)
	s.Render()

	assert.Equal(t, "#####\n#@.*#\n#####", term.Frame())
}

func TestTerminal_DeadPlayer(t *testing.T) {
	s := parseState(t, `
4,3
####
#@^#
####`)
	_, err := s.Move(puzzle.InputRight)
	require.NoError(t, err)

	term := NewTerminal(s.Width(), s.Height())
	s.SetRenderer(term)
	s.Render()

	assert.Contains(t, term.Frame(), "X", "dead player glyph")
}

func TestTerminal_DimGlyphs(t *testing.T) {
	term := NewTerminal(3, 1)

	below := puzzle.Cell{Kind: puzzle.CellEmpty}
	term.RenderCell(0, 0, puzzle.Cell{Kind: puzzle.CellBlock, Below: &below}, 0.25)
	term.RenderCell(1, 0, puzzle.Cell{Kind: puzzle.CellBlock, Below: &below}, 1.0)
	term.RenderPlayer(2, 0, false, false, 0.25)

	assert.Equal(t, "b%o", term.Frame())
}

func TestTerminal_DoorGlyphs(t *testing.T) {
	term := NewTerminal(2, 1)
	term.RenderCell(0, 0, puzzle.Cell{Kind: puzzle.CellDoor, Open: false}, 1.0)
	term.RenderCell(1, 0, puzzle.Cell{Kind: puzzle.CellDoor, Open: true}, 1.0)

	assert.Equal(t, "+/", term.Frame())
}

func TestTerminal_Clear(t *testing.T) {
	term := NewTerminal(2, 2)
	term.RenderPlayer(0, 0, false, false, 1.0)
	term.Clear()

	assert.Equal(t, "  \n  ", term.Frame())
}

func TestTerminal_OutOfBoundsIgnored(t *testing.T) {
	term := NewTerminal(2, 1)
	term.RenderPlayer(5, 5, false, false, 1.0)

	assert.Equal(t, "  ", term.Frame())
}

func TestTerminal_GhostOverlay(t *testing.T) {
	s := parseState(t, `
5,3
#####
#@.*#
#####`)

	term := NewTerminal(s.Width(), s.Height())
	s.SetRenderer(term)
	s.Render()

	// A ghost of the state one step right differs only in the player.
	ghost := s.Transition(int(puzzle.InputRight)).(*puzzle.State)
	ghost.RenderGhosts(1, s) // solver.InProcess

	frame := term.Frame()
	assert.Contains(t, frame, "o", "faint ghost player drawn")
	assert.Contains(t, frame, "@", "live player still visible")
}
