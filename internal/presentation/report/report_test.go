package report_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/aretw0/automata/internal/presentation/report"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var results = []domain.Result{
	{Word: "ab", Verdict: domain.Accepted, Reason: domain.ReasonFinalState, Path: []string{"q0", "q1", "q3"}},
	{Word: "", Verdict: domain.Accepted, Reason: domain.ReasonFinalState, Path: []string{"q0"}},
	{Word: "c", Verdict: domain.Invalid, Reason: domain.ReasonUnknownSymbol, Symbol: "c"},
	{Word: "b", Verdict: domain.Rejected, Reason: domain.ReasonNoTransition, Symbol: "b", Path: []string{"s0"}},
}

func TestWrite_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, report.FormatText, "cycle", results, report.Options{Profile: termenv.Ascii}))

	assert.Equal(t, "ab\tACCEPTED\nε\tACCEPTED\nc\tINVALID\nb\tREJECTED\n", buf.String())
}

func TestWrite_TextTrace(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, report.FormatText, "", results, report.Options{Trace: true, Profile: termenv.Ascii}))

	out := buf.String()
	assert.Contains(t, out, "ab\tACCEPTED\tq0 → q1 → q3\n")
	assert.Contains(t, out, "c\tINVALID\tunknown symbol 'c'\n")
	assert.Contains(t, out, "b\tREJECTED\ts0 ✗ no transition on 'b'\n")
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, report.FormatJSON, "cycle", results, report.Options{}))

	var doc report.Document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "cycle", doc.Definition)
	assert.Len(t, doc.Results, 4)
	assert.Nil(t, doc.Results[0].Path, "paths are only included when tracing")
	assert.Equal(t, domain.Accepted, doc.Verdicts[""])
	assert.Equal(t, 2, doc.Summary[domain.Accepted])

	// The caller's slice is not modified.
	assert.NotNil(t, results[0].Path)
}

func TestMarkdown(t *testing.T) {
	md := report.Markdown("cycle", results, report.Options{})
	assert.Contains(t, md, "# cycle")
	assert.Contains(t, md, "**2** accepted, **1** rejected, **1** invalid")
	assert.Contains(t, md, "| `ε` | ACCEPTED |")
}

func TestParseFormat(t *testing.T) {
	f, err := report.ParseFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, report.FormatJSON, f)

	_, err = report.ParseFormat("xml")
	assert.Error(t, err)
}
