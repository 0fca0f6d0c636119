package dsl

import (
	"github.com/aretw0/automata/pkg/adapters/memory"
	"github.com/aretw0/automata/pkg/domain"
)

// Builder manages the automaton construction.
type Builder struct {
	alphabet []string
	order    []string
	states   map[string]*StateBuilder
	initial  string
}

// New creates a new automaton builder.
func New() *Builder {
	return &Builder{
		states: make(map[string]*StateBuilder),
	}
}

// Alphabet appends symbols to the input alphabet.
func (b *Builder) Alphabet(symbols ...string) *Builder {
	b.alphabet = append(b.alphabet, symbols...)
	return b
}

// State declares a state, in order of first use.
// If the state already exists, it returns the existing builder.
func (b *Builder) State(name string) *StateBuilder {
	if sb, ok := b.states[name]; ok {
		return sb
	}
	sb := &StateBuilder{name: name, builder: b}
	b.states[name] = sb
	b.order = append(b.order, name)
	return sb
}

// Definition returns the raw definition assembled so far, without validating it.
func (b *Builder) Definition() domain.Definition {
	def := domain.Definition{
		Alphabet:     append([]string(nil), b.alphabet...),
		States:       append([]string(nil), b.order...),
		InitialState: b.initial,
	}
	for _, name := range b.order {
		sb := b.states[name]
		if sb.final {
			def.FinalStates = append(def.FinalStates, name)
		}
		for _, e := range sb.edges {
			def.Rules = append(def.Rules, domain.Rule{From: name, Symbol: e.symbol, To: e.to})
		}
	}
	return def
}

// Build validates the definition and returns the automaton.
// Targets of On are not declared implicitly: an undeclared target is a *domain.FormatError.
func (b *Builder) Build() (*domain.Automaton, error) {
	return domain.NewAutomaton(b.Definition())
}

// Source builds the automaton and exposes it under name through an in-memory DefinitionSource.
func (b *Builder) Source(name string) (*memory.Source, error) {
	a, err := b.Build()
	if err != nil {
		return nil, err
	}
	return memory.NewFromAutomata(map[string]*domain.Automaton{name: a}), nil
}
