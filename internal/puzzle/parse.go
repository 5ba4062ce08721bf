package puzzle

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	apperrors "github.com/puzzle-scout/pkg/errors"
)

// Parse reads a map in the text format:
//
//	width,height
//	#######
//	#@..%*#
//	#######
//
// Cell characters: '#' wall, '.' empty, '@' player start, '^' trap,
// '%' pushable block, '*' goal. A lowercase letter is a trigger bound to
// the door marked by the matching uppercase letter; doors start closed.
func Parse(name string, r io.Reader) (*State, error) {
	scanner := bufio.NewScanner(r)

	if !scanner.Scan() {
		return nil, apperrors.New(apperrors.CodeMapParseError, "missing size header")
	}
	var width, height int
	if _, err := fmt.Sscanf(scanner.Text(), "%d,%d", &width, &height); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeMapParseError, "bad size header", err)
	}
	if width < 1 || height < 1 {
		return nil, apperrors.Newf(apperrors.CodeMapParseError, "bad map size %dx%d", width, height)
	}

	rows := make([]string, 0, height)
	for y := 0; y < height; y++ {
		if !scanner.Scan() {
			return nil, apperrors.Newf(apperrors.CodeMapParseError, "map truncated at row %d", y)
		}
		row := scanner.Text()
		if len(row) < width {
			return nil, apperrors.Newf(apperrors.CodeMapParseError, "row %d shorter than width %d", y, width)
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeMapParseError, "read failed", err)
	}

	s := &State{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
		name:   name,
	}

	// Door positions by letter id, gathered before triggers are bound.
	doors := make(map[byte][2]int)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if c := rows[y][x]; c >= 'A' && c <= 'Z' {
				doors[c-'A'] = [2]int{x, y}
			}
		}
	}

	starts := 0
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := rows[y][x]
			cell := s.cellAt(x, y)
			switch {
			case c == '#':
				cell.Kind = CellWall
			case c == '.':
				cell.Kind = CellEmpty
			case c == '@':
				cell.Kind = CellEmpty
				s.player.X = x
				s.player.Y = y
				starts++
			case c == '^':
				cell.Kind = CellTrap
			case c == '%':
				below := Cell{Kind: CellEmpty}
				cell.Kind = CellBlock
				cell.Below = &below
			case c == '*':
				cell.Kind = CellGoal
			case c >= 'a' && c <= 'z':
				door, ok := doors[c-'a']
				if !ok {
					return nil, apperrors.Newf(apperrors.CodeMapParseError, "trigger %q at %d,%d has no door", c, x, y)
				}
				cell.Kind = CellTrigger
				cell.DoorX = door[0]
				cell.DoorY = door[1]
			case c >= 'A' && c <= 'Z':
				cell.Kind = CellDoor
				cell.Open = false
			default:
				return nil, apperrors.Newf(apperrors.CodeMapParseError, "unknown char %q at %d,%d", c, x, y)
			}
		}
	}

	if starts != 1 {
		return nil, apperrors.Newf(apperrors.CodeMapParseError, "expected exactly one start position, found %d", starts)
	}

	return s, nil
}

// Load parses a map from a file; the map name is the file's base name.
func Load(path string) (*State, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeMapParseError, "open map file", err)
	}
	defer f.Close()

	return Parse(filepath.Base(path), f)
}
