package mcp

import (
	"context"
	"testing"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/pkg/adapters/memory"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cycle = "a b\nq0 q1 q2 q3\nq0 q3\nq0\nq0 a q1\nq0 b q2\nq1 a q0\nq1 b q3\nq2 a q3\nq2 b q0\nq3 a q1\nq3 b q2\n"

func newTestServer(t *testing.T) *Server {
	t.Helper()
	eng, err := automata.New("", automata.WithSource(memory.NewSource(map[string]string{
		"cycle": cycle,
	})))
	require.NoError(t, err)
	return NewServer(eng, 8)
}

func callRequest(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func TestHandleEvaluate(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	res, err := s.handleEvaluate(ctx, mcp.CallToolRequest{}, EvaluateArgs{
		Name:  "cycle",
		Words: []string{"ab", "c", ""},
	})
	require.NoError(t, err)
	assert.Equal(t, "cycle", res.Definition)
	assert.Equal(t, domain.Verdicts{"ab": domain.Accepted, "c": domain.Invalid, "": domain.Accepted}, res.Verdicts)
	assert.Nil(t, res.Results[0].Path)

	res, err = s.handleEvaluate(ctx, mcp.CallToolRequest{}, EvaluateArgs{
		Definition: cycle,
		Words:      []string{"ab"},
		Trace:      true,
	})
	require.NoError(t, err)
	assert.Equal(t, "inline", res.Definition)
	assert.Equal(t, []string{"q0", "q1", "q3"}, res.Results[0].Path)
}

func TestHandleEvaluate_Errors(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	_, err := s.handleEvaluate(ctx, mcp.CallToolRequest{}, EvaluateArgs{Name: "missing"})
	assert.ErrorIs(t, err, domain.ErrDefinitionNotFound)

	_, err = s.handleEvaluate(ctx, mcp.CallToolRequest{}, EvaluateArgs{Words: []string{"a"}})
	assert.Error(t, err)

	_, err = s.handleEvaluate(ctx, mcp.CallToolRequest{}, EvaluateArgs{Name: "cycle", Words: []string{"abababababab"}})
	assert.ErrorContains(t, err, "input rejected")
}

func TestHandleValidate(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	res, err := s.handleValidate(ctx, mcp.CallToolRequest{}, DefinitionArgs{Name: "cycle"})
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.Equal(t, 4, res.States)
	require.NotNil(t, res.Analysis)
	assert.True(t, res.Analysis.Complete())

	res, err = s.handleValidate(ctx, mcp.CallToolRequest{}, DefinitionArgs{Definition: "a\nq0\nq0\nq9\n"})
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Equal(t, 4, res.Line)
	assert.Equal(t, string(domain.SectionInitial), res.Section)
}

func TestHandleGraph(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	res, err := s.handleGraph(ctx, callRequest(map[string]any{"name": "cycle", "word": "ab"}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, "graph LR")
	assert.Contains(t, text.Text, "class s_q3 current;")

	res, err = s.handleGraph(ctx, callRequest(map[string]any{"name": "missing"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}
