package ports

import (
	"context"

	"github.com/aretw0/automata/pkg/domain"
)

// Engine is the surface exposed to driving adapters (HTTP, MCP).
type Engine interface {
	// Parse validates a definition given inline.
	Parse(ctx context.Context, data []byte) (*domain.Automaton, error)

	// Load reads and validates a named definition from the configured source.
	Load(ctx context.Context, name string) (*domain.Automaton, error)

	// Definitions lists the names known to the configured source.
	Definitions(ctx context.Context) ([]string, error)

	// EvaluateEach classifies every word occurrence, in input order.
	EvaluateEach(ctx context.Context, a *domain.Automaton, words []string) []domain.Result
}
