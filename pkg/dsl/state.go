package dsl

import "github.com/aretw0/automata/pkg/domain"

type edge struct {
	symbol string
	to     string
}

// StateBuilder provides a fluent API for configuring a state.
type StateBuilder struct {
	name    string
	final   bool
	edges   []edge
	builder *Builder
}

// Initial marks the state as the start state. The last call wins.
func (s *StateBuilder) Initial() *StateBuilder {
	s.builder.initial = s.name
	return s
}

// Final marks the state as accepting.
func (s *StateBuilder) Final() *StateBuilder {
	s.final = true
	return s
}

// On adds the transition (state, symbol) -> target.
func (s *StateBuilder) On(symbol, target string) *StateBuilder {
	s.edges = append(s.edges, edge{symbol: symbol, to: target})
	return s
}

// Loop adds a transition back to the state itself for every given symbol.
func (s *StateBuilder) Loop(symbols ...string) *StateBuilder {
	for _, sym := range symbols {
		s.On(sym, s.name)
	}
	return s
}

// State switches to another state of the same builder.
func (s *StateBuilder) State(name string) *StateBuilder {
	return s.builder.State(name)
}

// Build finishes the chain and builds the whole automaton.
func (s *StateBuilder) Build() (*domain.Automaton, error) {
	return s.builder.Build()
}
