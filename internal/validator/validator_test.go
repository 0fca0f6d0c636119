package validator_test

import (
	"testing"

	"github.com/aretw0/automata/internal/compiler"
	"github.com/aretw0/automata/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze_CompleteCycle(t *testing.T) {
	a, err := compiler.NewParser().Parse([]byte(`a b
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
`))
	require.NoError(t, err)

	res := validator.Analyze(a)
	assert.True(t, res.Complete())
	assert.True(t, res.Clean())
	assert.NoError(t, res.Err())
}

func TestAnalyze_Findings(t *testing.T) {
	// orphan is unreachable, trap is dead, and several pairs are missing.
	a, err := compiler.NewParser().Parse([]byte(`a b
start ok trap orphan
ok
start
start a ok
start b trap
trap a trap
orphan a ok
`))
	require.NoError(t, err)

	res := validator.Analyze(a)
	assert.Equal(t, []string{"orphan"}, res.Unreachable)
	assert.Equal(t, []string{"trap"}, res.Dead)
	assert.Equal(t, []validator.Gap{
		{State: "ok", Symbol: "a"},
		{State: "ok", Symbol: "b"},
		{State: "trap", Symbol: "b"},
		{State: "orphan", Symbol: "b"},
	}, res.Gaps)
	assert.False(t, res.Complete())

	err = res.Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unreachable state: 'orphan'")
	assert.Contains(t, err.Error(), "Dead state (no path to a final state): 'trap'")
}

func TestAnalyze_NoFinalStates(t *testing.T) {
	a, err := compiler.NewParser().Parse([]byte("a\nq0\n\nq0\nq0 a q0\n"))
	require.NoError(t, err)

	res := validator.Analyze(a)
	assert.Equal(t, []string{"q0"}, res.Dead)
	assert.Empty(t, res.Unreachable)
}
