package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/automata/internal/compiler"
	"github.com/aretw0/automata/pkg/adapters/memory"
	"github.com/aretw0/automata/pkg/domain"
	contract "github.com/aretw0/automata/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySource_Contract(t *testing.T) {
	data := map[string]string{
		"binary": "0 1\ne o\ne\ne\ne 1 o\no 1 e\ne 0 e\no 0 o\n",
		"empty":  "\nq0\n\nq0\n",
	}

	bytesData := make(map[string][]byte)
	for k, v := range data {
		bytesData[k] = []byte(v)
	}

	contract.DefinitionSourceContractTest(t, memory.NewSource(data), bytesData)
}

func TestMemorySource_FromAutomata(t *testing.T) {
	a, err := domain.NewAutomaton(domain.Definition{
		Alphabet:     []string{"x"},
		States:       []string{"s"},
		FinalStates:  []string{"s"},
		InitialState: "s",
		Rules:        []domain.Rule{{From: "s", Symbol: "x", To: "s"}},
	})
	require.NoError(t, err)

	src := memory.NewFromAutomata(map[string]*domain.Automaton{"loop": a})
	raw, err := src.Read(context.Background(), "loop")
	require.NoError(t, err)

	parsed, err := compiler.NewParser().Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, a.Definition(), parsed.Definition())
}

func TestMemorySource_ReadReturnsCopy(t *testing.T) {
	src := memory.NewSource(map[string]string{"d": "a\nq\nq\nq\n"})
	raw, err := src.Read(context.Background(), "d")
	require.NoError(t, err)
	raw[0] = 'z'

	again, err := src.Read(context.Background(), "d")
	require.NoError(t, err)
	assert.Equal(t, byte('a'), again[0])
}
