package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"knn_search/pkg/graph"
)

var smallGraph = []string{
	"--width", "40", "--height", "40",
	"-n", "60", "-k", "3", "--seed", "5",
	"--log-level", "error",
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestBuildCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.geojson")
	out, err := run(t, append([]string{"build", "--geojson", path}, smallGraph...)...)
	require.NoError(t, err)

	assert.Contains(t, out, "points:           60")
	assert.Contains(t, out, "seed:             5")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var fc struct {
		Features []json.RawMessage `json:"features"`
	}
	require.NoError(t, json.Unmarshal(data, &fc))
	assert.GreaterOrEqual(t, len(fc.Features), 60)
}

func TestSearchCommand(t *testing.T) {
	for _, strategy := range []string{"best_first", "astar"} {
		t.Run(strategy, func(t *testing.T) {
			args := append([]string{"search", "--strategy", strategy, "--dest-index", "7"}, smallGraph...)
			out, err := run(t, args...)
			require.NoError(t, err)

			assert.Contains(t, out, "strategy:    "+strategy)
			assert.Contains(t, out, "found:")
		})
	}
}

func TestSearchCommandIsDeterministic(t *testing.T) {
	args := append([]string{"search", "--dest-index", "10"}, smallGraph...)
	first, err := run(t, args...)
	require.NoError(t, err)
	second, err := run(t, args...)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSearchCommandErrors(t *testing.T) {
	_, err := run(t, append([]string{"search", "--dest-index", "60"}, smallGraph...)...)
	assert.ErrorContains(t, err, "dest-index 60 out of range")

	_, err = run(t, append([]string{"search", "--strategy", "dfs"}, smallGraph...)...)
	assert.Error(t, err)

	// 5 points cannot each have 5 distinct neighbours.
	_, err = run(t, "build", "-n", "5", "-k", "5", "--seed", "1")
	assert.ErrorIs(t, err, graph.ErrTooFewPoints)
}

func TestConfigFileWithFlagOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "knnsearch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
space:
  width: 30
  height: 30
graph:
  points: 25
  neighbours: 2
  seed: 3
log:
  level: error
`), 0o644))

	out, err := run(t, "build", "--config", path, "-n", "12")
	require.NoError(t, err)
	assert.Contains(t, out, "space:            30x30")
	assert.Contains(t, out, "points:           12")
}
