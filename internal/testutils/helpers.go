package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// Cycle is the canonical four-state automaton over {a, b}: it accepts words where the number
// of a's and the number of b's are both even, or both odd.
const Cycle = `a b
q0 q1 q2 q3
q0 q3
q0
q0 a q1
q0 b q2
q1 a q0
q1 b q3
q2 a q3
q2 b q0
q3 a q1
q3 b q2
`

// WriteDefinition writes content to <dir>/<name> and returns the absolute path.
// An empty dir selects a fresh temporary directory.
// It fails the test immediately on error.
func WriteDefinition(t testing.TB, dir, name, content string) string {
	t.Helper()

	if dir == "" {
		dir = t.TempDir()
	}
	absPath, err := filepath.Abs(filepath.Join(dir, name))
	require.NoError(t, err, "Failed to get absolute path for definition")

	require.NoError(t, os.WriteFile(absPath, []byte(content), 0644), "Failed to write definition")
	return absPath
}
