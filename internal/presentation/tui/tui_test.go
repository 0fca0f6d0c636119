package tui_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/automata/internal/presentation/tui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	tui.PrintBanner(&buf, "1.2.3")
	assert.Contains(t, buf.String(), "v1.2.3")
	assert.Contains(t, buf.String(), "|_| |_| |_|")
}

func TestRenderer(t *testing.T) {
	render := tui.NewRenderer()
	out, err := render("| Word | Verdict |\n|---|---|\n| `ab` | ACCEPTED |\n")
	require.NoError(t, err)
	assert.Contains(t, out, "ACCEPTED")
}

func TestIsTerminal_RegularFile(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	require.NoError(t, err)
	defer f.Close()

	assert.False(t, tui.IsTerminal(f))
	assert.False(t, tui.IsTerminal(nil))
}
