package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/automata/internal/compiler"
	"github.com/aretw0/automata/pkg/domain"
)

// Source implements ports.DefinitionSource using an in-memory map.
// Safe for concurrent use.
type Source struct {
	mu   sync.RWMutex
	defs map[string][]byte
}

// NewSource creates a new in-memory source with the provided raw definitions.
func NewSource(data map[string]string) *Source {
	defs := make(map[string][]byte, len(data))
	for k, v := range data {
		defs[k] = []byte(v)
	}
	return &Source{defs: defs}
}

// NewFromAutomata creates a source from already built automata.
// This handles serialization automatically, improving DX for tests.
func NewFromAutomata(automata map[string]*domain.Automaton) *Source {
	defs := make(map[string][]byte, len(automata))
	for name, a := range automata {
		defs[name] = compiler.Format(a)
	}
	return &Source{defs: defs}
}

// Put adds or replaces a definition.
func (s *Source) Put(name string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.defs[name] = append([]byte(nil), data...)
}

// Read returns the raw definition registered under name.
func (s *Source) Read(ctx context.Context, name string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	content, ok := s.defs[name]
	if !ok {
		return nil, &domain.NotFoundError{Name: name}
	}
	return append([]byte(nil), content...), nil
}

// List returns all available definition names.
func (s *Source) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.defs))
	for k := range s.defs {
		names = append(names, k)
	}
	sort.Strings(names) // Deterministic order
	return names, nil
}
