package puzzle

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/puzzle-scout/pkg/errors"
)

func TestParse_AllCellKinds(t *testing.T) {
	s := mustParse(t, `
8,3
########
#@.^%*a#
##A#####`)

	assert.Equal(t, 8, s.Width())
	assert.Equal(t, 3, s.Height())
	assert.Equal(t, CellWall, s.Cell(0, 0).Kind)
	assert.Equal(t, CellEmpty, s.Cell(1, 1).Kind)
	assert.Equal(t, CellEmpty, s.Cell(2, 1).Kind)
	assert.Equal(t, CellTrap, s.Cell(3, 1).Kind)
	assert.Equal(t, CellBlock, s.Cell(4, 1).Kind)
	require.NotNil(t, s.Cell(4, 1).Below)
	assert.Equal(t, CellEmpty, s.Cell(4, 1).Below.Kind)
	assert.Equal(t, CellGoal, s.Cell(5, 1).Kind)

	trigger := s.Cell(6, 1)
	assert.Equal(t, CellTrigger, trigger.Kind)
	assert.Equal(t, 2, trigger.DoorX)
	assert.Equal(t, 2, trigger.DoorY)

	door := s.Cell(2, 2)
	assert.Equal(t, CellDoor, door.Kind)
	assert.False(t, door.Open)
}

func TestParse_MissingHeader(t *testing.T) {
	_, err := Parse("bad", strings.NewReader(""))
	require.Error(t, err)
	assert.True(t, apperrors.IsMapParseError(err))
}

func TestParse_BadHeader(t *testing.T) {
	_, err := Parse("bad", strings.NewReader("not a size\n"))
	require.Error(t, err)
	assert.True(t, apperrors.IsMapParseError(err))
}

func TestParse_Truncated(t *testing.T) {
	_, err := Parse("bad", strings.NewReader("3,3\n###\n#@#\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "truncated")
}

func TestParse_ShortRow(t *testing.T) {
	_, err := Parse("bad", strings.NewReader("4,2\n####\n#@\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shorter")
}

func TestParse_UnknownChar(t *testing.T) {
	_, err := Parse("bad", strings.NewReader("3,1\n#?#\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown char")
}

func TestParse_NoStart(t *testing.T) {
	_, err := Parse("bad", strings.NewReader("3,1\n#.#\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "start position")
}

func TestParse_TwoStarts(t *testing.T) {
	_, err := Parse("bad", strings.NewReader("4,1\n#@@#\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "start position")
}

func TestParse_TriggerWithoutDoor(t *testing.T) {
	_, err := Parse("bad", strings.NewReader("4,1\n#@z#\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no door")
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "level1.txt")
	content := "5,3\n#####\n#@.*#\n#####\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "level1.txt", s.Name())
	assert.Equal(t, 5, s.Width())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	assert.True(t, apperrors.IsMapParseError(err))
}
