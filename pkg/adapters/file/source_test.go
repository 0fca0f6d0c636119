package file_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/automata/pkg/adapters/file"
	"github.com/aretw0/automata/pkg/domain"
	contract "github.com/aretw0/automata/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestFileSource_Contract(t *testing.T) {
	dir := t.TempDir()
	data := map[string][]byte{
		"cycle": []byte("a b\nq0 q1\nq0\nq0\nq0 a q1\n"),
		"loop":  []byte("x\ns\ns\ns\ns x s\n"),
	}
	for name, content := range data {
		writeFile(t, filepath.Join(dir, name+file.DefaultExtension), string(content))
	}
	// Not listed: wrong extension and directories.
	writeFile(t, filepath.Join(dir, "notes.txt"), "ignore me")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.dfa"), 0755))

	contract.DefinitionSourceContractTest(t, file.NewSource(dir), data)
}

func TestFileSource_ReadExactName(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "automaton.txt"), "a\nq\nq\nq\n")

	data, err := file.NewSource(dir).Read(context.Background(), "automaton.txt")
	require.NoError(t, err)
	assert.Equal(t, "a\nq\nq\nq\n", string(data))
}

func TestFileSource_NotFoundIsDistinguishable(t *testing.T) {
	src := file.NewSource(t.TempDir())

	for _, name := range []string{"missing", "../escape", "", "/etc/passwd"} {
		_, err := src.Read(context.Background(), name)
		require.Error(t, err, name)

		var nf *domain.NotFoundError
		assert.True(t, errors.As(err, &nf), name)
		assert.ErrorIs(t, err, domain.ErrDefinitionNotFound)
		assert.NotErrorIs(t, err, domain.ErrFormat)
	}
}

func TestFileSource_ListMissingDir(t *testing.T) {
	names, err := file.NewSource(filepath.Join(t.TempDir(), "nope")).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names)
}
