package ports

import "context"

// DefinitionSource defines how the engine retrieves raw automaton definitions.
// This allows the storage layer (FS, Memory) to be decoupled from parsing.
type DefinitionSource interface {
	// Read returns the raw text of the named definition.
	// It returns a *domain.NotFoundError when the definition does not exist or cannot be opened.
	Read(ctx context.Context, name string) ([]byte, error)

	// List returns the names of all available definitions in a deterministic order.
	List(ctx context.Context) ([]string, error)
}
