package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/automata/internal/presentation/report"
	"github.com/aretw0/automata/internal/testutils"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the command tree with an isolated config file and returns stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.yaml"), "--log-level", "error"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func writeDefinition(t *testing.T, content string) string {
	t.Helper()
	return testutils.WriteDefinition(t, "", "cycle.dfa", content)
}

func TestRun_WordsFromStdin(t *testing.T) {
	path := writeDefinition(t, testutils.Cycle)

	out, err := execute(t, "ab\naa\nc\n\na\nabb\n", "run", path)
	require.NoError(t, err)
	assert.Equal(t, "ab\tACCEPTED\naa\tACCEPTED\nc\tINVALID\nε\tACCEPTED\na\tREJECTED\nabb\tREJECTED\n", out)
}

func TestRun_WordFlagsJSON(t *testing.T) {
	path := writeDefinition(t, testutils.Cycle)

	out, err := execute(t, "", "run", path, "-w", "ab", "-w", "b", "--format", "json", "--trace")
	require.NoError(t, err)

	var doc report.Document
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, domain.Verdicts{"ab": domain.Accepted, "b": domain.Rejected}, doc.Verdicts)
	assert.Equal(t, []string{"q0", "q2"}, doc.Results[1].Path)
}

func TestRun_WordsFile(t *testing.T) {
	path := writeDefinition(t, testutils.Cycle)
	words := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(words, []byte("ab\r\nba\r\n"), 0644))

	out, err := execute(t, "", "run", path, words)
	require.NoError(t, err)
	assert.Equal(t, "ab\tACCEPTED\nba\tACCEPTED\n", out)
}

func TestRun_ByNameInDir(t *testing.T) {
	path := writeDefinition(t, testutils.Cycle)

	out, err := execute(t, "", "--dir", filepath.Dir(path), "run", "cycle", "-w", "ab")
	require.NoError(t, err)
	assert.Equal(t, "ab\tACCEPTED\n", out)
}

func TestRun_Errors(t *testing.T) {
	_, err := execute(t, "", "run", "does-not-exist", "-w", "a")
	assert.ErrorIs(t, err, domain.ErrDefinitionNotFound)

	broken := writeDefinition(t, "a\nq0\nq0\nq0\nq0 b q0\n")
	_, err = execute(t, "", "run", broken, "-w", "a")
	assert.ErrorIs(t, err, domain.ErrUnknownSymbol)
	assert.ErrorContains(t, err, "line 5")

	path := writeDefinition(t, testutils.Cycle)
	_, err = execute(t, "", "run", path, "-w", "a", "--save")
	assert.ErrorContains(t, err, "persistent report store")

	_, err = execute(t, "", "run", path, "-w", "a", "--format", "xml")
	assert.Error(t, err)
}

func TestRunSaveAndReport(t *testing.T) {
	path := writeDefinition(t, testutils.Cycle)
	t.Setenv("AUTOMATA_STORE_KIND", "file")
	t.Setenv("AUTOMATA_STORE_PATH", filepath.Join(t.TempDir(), "reports"))

	_, err := execute(t, "", "run", path, "-w", "ab", "--save")
	require.NoError(t, err)

	out, err := execute(t, "", "report", "list")
	require.NoError(t, err)
	ids := strings.Fields(out)
	require.Len(t, ids, 1)

	out, err = execute(t, "", "report", "show", ids[0])
	require.NoError(t, err)
	assert.Equal(t, "ab\tACCEPTED\n", out)

	_, err = execute(t, "", "report", "delete", ids[0])
	require.NoError(t, err)

	out, err = execute(t, "", "report", "list")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestValidate(t *testing.T) {
	out, err := execute(t, "", "validate", writeDefinition(t, testutils.Cycle), "--strict")
	require.NoError(t, err)
	assert.Contains(t, out, "Automaton is valid!")

	partial := writeDefinition(t, "a b\np q r\nq\np\np a q\n")
	out, err = execute(t, "", "validate", partial)
	require.NoError(t, err)
	assert.Contains(t, out, "unreachable state 'r'")
	assert.Contains(t, out, "no transition for ('p', 'b')")

	_, err = execute(t, "", "validate", partial, "--strict")
	assert.Error(t, err)
}

func TestGraph(t *testing.T) {
	out, err := execute(t, "", "graph", writeDefinition(t, testutils.Cycle), "--word", "ab")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "graph LR"))
	assert.Contains(t, out, "class s_q3 current;")
}

func TestDefinitionsList(t *testing.T) {
	path := writeDefinition(t, testutils.Cycle)
	out, err := execute(t, "", "--dir", filepath.Dir(path), "definitions", "list")
	require.NoError(t, err)
	assert.Equal(t, "cycle\n", out)
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "automata version "))
}
