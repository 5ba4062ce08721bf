package writer

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/puzzle-scout/pkg/model"
)

func TestJSONWriter_Write(t *testing.T) {
	w := NewJSONWriter[*model.SolveReport]()
	var buf bytes.Buffer

	report := &model.SolveReport{RunUUID: "run-1", StateCount: 3}
	require.NoError(t, w.Write(report, &buf))

	var decoded model.SolveReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "run-1", decoded.RunUUID)
	assert.Equal(t, 3, decoded.StateCount)
}

func TestPrettyJSONWriter_Indents(t *testing.T) {
	w := NewPrettyJSONWriter[map[string]int]()
	var buf bytes.Buffer

	require.NoError(t, w.Write(map[string]int{"a": 1}, &buf))
	assert.True(t, strings.Contains(buf.String(), "\n"), "pretty output should be multi-line")
}

func TestJSONWriter_WriteToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	w := NewJSONWriter[model.GhostFrame]()

	require.NoError(t, w.WriteToFile(model.GhostFrame{Distance: 2, Frame: "##"}, path))

	var decoded model.GhostFrame
	data := readFile(t, path)
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 2, decoded.Distance)
}

func TestGzipJSONWriter_RoundTrip(t *testing.T) {
	w := NewGzipJSONWriter[*model.SolveReport]()
	var buf bytes.Buffer

	require.NoError(t, w.Write(&model.SolveReport{RunUUID: "gz-1"}, &buf))

	gz, err := gzip.NewReader(&buf)
	require.NoError(t, err)
	raw, err := io.ReadAll(gz)
	require.NoError(t, err)

	var decoded model.SolveReport
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "gz-1", decoded.RunUUID)
}

func readFile(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return data
}
