package ports

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunReportStoreContract runs a suite of tests to verify that a ReportStore implementation
// adheres to the defined interface contract.
func RunReportStoreContract(t *testing.T, store ReportStore) {
	ctx := context.Background()
	reportID := "contract-test-report-" + time.Now().Format("20060102150405")

	sample := func(id string) *domain.Report {
		return domain.NewReport(id, "cycle", []domain.Result{
			{Word: "ab", Verdict: domain.Accepted, Reason: domain.ReasonFinalState, Path: []string{"q0", "q1", "q3"}},
			{Word: "c", Verdict: domain.Invalid, Reason: domain.ReasonUnknownSymbol, Symbol: "c"},
		})
	}

	t.Run("Save and Load", func(t *testing.T) {
		report := sample(reportID)

		err := store.Save(ctx, report)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, reportID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, report.ID, loaded.ID)
		assert.Equal(t, report.Definition, loaded.Definition)
		assert.True(t, report.CreatedAt.Equal(loaded.CreatedAt), "CreatedAt should survive persistence")
		assert.Equal(t, report.Results, loaded.Results)
		assert.Equal(t, domain.Accepted, loaded.Verdicts()["ab"])
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+reportID)
		assert.ErrorIs(t, err, domain.ErrReportNotFound)
	})

	t.Run("Overwrite", func(t *testing.T) {
		report := sample(reportID)
		report.Results = report.Results[:1]
		require.NoError(t, store.Save(ctx, report))

		loaded, err := store.Load(ctx, reportID)
		require.NoError(t, err)
		assert.Len(t, loaded.Results, 1)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, sample(reportID)))

		err := store.Delete(ctx, reportID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, reportID)
		assert.ErrorIs(t, err, domain.ErrReportNotFound, "Load after Delete should return ErrReportNotFound")

		assert.NoError(t, store.Delete(ctx, reportID), "Deleting twice is not an error")
	})

	t.Run("List", func(t *testing.T) {
		id1 := fmt.Sprintf("%s-1", reportID)
		id2 := fmt.Sprintf("%s-2", reportID)
		_ = store.Save(ctx, sample(id1))
		_ = store.Save(ctx, sample(id2))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
	})
}
