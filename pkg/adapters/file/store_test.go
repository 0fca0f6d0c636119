package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/automata/pkg/adapters/file"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Store implements ReportStore
var _ ports.ReportStore = (*file.Store)(nil)

func TestFileStore_Contract(t *testing.T) {
	ports.RunReportStoreContract(t, file.NewStore(t.TempDir()))
}

func TestFileStore_WritesJSON(t *testing.T) {
	dir := t.TempDir()
	store := file.NewStore(dir)
	ctx := context.Background()

	report := domain.NewReport("r1", "cycle", []domain.Result{{Word: "", Verdict: domain.Accepted}})
	require.NoError(t, store.Save(ctx, report))

	raw, err := os.ReadFile(filepath.Join(dir, "r1.json"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"verdict": "ACCEPTED"`)

	// No temp files are left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileStore_RejectsUnsafeIDs(t *testing.T) {
	store := file.NewStore(t.TempDir())
	ctx := context.Background()

	for _, id := range []string{"", "..", "../x", "a/b"} {
		assert.ErrorIs(t, store.Save(ctx, domain.NewReport(id, "d", nil)), domain.ErrInvalidReportID, id)
		_, err := store.Load(ctx, id)
		assert.ErrorIs(t, err, domain.ErrReportNotFound, id)
		assert.ErrorIs(t, store.Delete(ctx, id), domain.ErrReportNotFound, id)
	}
}
