package domain

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Rule is a single transition rule: reading Symbol in state From moves to state To.
type Rule struct {
	From   string `json:"from" yaml:"from"`
	Symbol string `json:"symbol" yaml:"symbol"`
	To     string `json:"to" yaml:"to"`

	// Line is the source line the rule was declared on (0 when built programmatically).
	Line int `json:"-" yaml:"-"`
}

// Definition is the raw, unvalidated description of an automaton.
// It is only a carrier: use NewAutomaton to obtain a usable value.
type Definition struct {
	Alphabet     []string `json:"alphabet" yaml:"alphabet"`
	States       []string `json:"states" yaml:"states"`
	FinalStates  []string `json:"final_states" yaml:"final_states"`
	InitialState string   `json:"initial_state" yaml:"initial_state"`
	Rules        []Rule   `json:"rules" yaml:"rules"`
}

// Automaton is an immutable deterministic finite automaton.
// The zero value is not usable; instances are only produced by NewAutomaton.
type Automaton struct {
	symbols    []string
	alphabet   map[string]struct{}
	states     []string
	stateIndex map[string]int
	finals     []string
	finalSet   map[string]struct{}
	initial    string
	delta      map[string]map[string]string
	rules      []Rule
	singleRune bool
}

// NewAutomaton validates def and builds an Automaton from it.
// It returns a *FormatError when a symbol or state name is empty or contains whitespace,
// any state or symbol reference is unknown, a state is declared twice, or two rules map
// the same (state, symbol) pair to different states.
// Repeating an identical rule is accepted.
func NewAutomaton(def Definition) (*Automaton, error) {
	a := &Automaton{
		alphabet:   make(map[string]struct{}, len(def.Alphabet)),
		stateIndex: make(map[string]int, len(def.States)),
		finalSet:   make(map[string]struct{}, len(def.FinalStates)),
		delta:      make(map[string]map[string]string),
		singleRune: true,
	}

	for _, sym := range def.Alphabet {
		if sym == "" {
			return nil, NewFormatError(SectionAlphabet, 0, ErrMalformedLine, "empty symbol")
		}
		if hasSpace(sym) {
			return nil, NewFormatError(SectionAlphabet, 0, ErrMalformedLine, "symbol %q contains whitespace", sym)
		}
		if _, ok := a.alphabet[sym]; ok {
			continue
		}
		a.alphabet[sym] = struct{}{}
		a.symbols = append(a.symbols, sym)
		if utf8.RuneCountInString(sym) != 1 {
			a.singleRune = false
		}
	}
	sort.Strings(a.symbols)

	for _, st := range def.States {
		if st == "" {
			return nil, NewFormatError(SectionStates, 0, ErrMalformedLine, "empty state name")
		}
		if hasSpace(st) {
			return nil, NewFormatError(SectionStates, 0, ErrMalformedLine, "state %q contains whitespace", st)
		}
		if _, ok := a.stateIndex[st]; ok {
			return nil, NewFormatError(SectionStates, 0, ErrDuplicateState, "state %q declared twice", st)
		}
		a.stateIndex[st] = len(a.states)
		a.states = append(a.states, st)
	}

	for _, st := range def.FinalStates {
		if !a.HasState(st) {
			return nil, NewFormatError(SectionFinalStates, 0, ErrUnknownState, "final state %q is not a declared state", st)
		}
		if _, ok := a.finalSet[st]; ok {
			continue
		}
		a.finalSet[st] = struct{}{}
		a.finals = append(a.finals, st)
	}

	if !a.HasState(def.InitialState) {
		return nil, NewFormatError(SectionInitial, 0, ErrUnknownState, "initial state %q is not a declared state", def.InitialState)
	}
	a.initial = def.InitialState

	for _, r := range def.Rules {
		if !a.HasState(r.From) {
			return nil, NewFormatError(SectionTransitions, r.Line, ErrUnknownState, "origin %q is not a declared state", r.From)
		}
		if !a.HasSymbol(r.Symbol) {
			return nil, NewFormatError(SectionTransitions, r.Line, ErrUnknownSymbol, "symbol %q is not in the alphabet", r.Symbol)
		}
		if !a.HasState(r.To) {
			return nil, NewFormatError(SectionTransitions, r.Line, ErrUnknownState, "destination %q is not a declared state", r.To)
		}

		row, ok := a.delta[r.From]
		if !ok {
			row = make(map[string]string)
			a.delta[r.From] = row
		}
		if existing, ok := row[r.Symbol]; ok {
			if existing != r.To {
				return nil, NewFormatError(SectionTransitions, r.Line, ErrNondeterministic,
					"(%s, %s) already goes to %q, cannot also go to %q", r.From, r.Symbol, existing, r.To)
			}
			continue
		}
		row[r.Symbol] = r.To
		a.rules = append(a.rules, Rule{From: r.From, Symbol: r.Symbol, To: r.To})
	}

	return a, nil
}

// hasSpace reports whether name could not be written as a single token of the text format.
func hasSpace(name string) bool {
	return strings.ContainsFunc(name, unicode.IsSpace)
}

// Alphabet returns the symbols in lexical order.
func (a *Automaton) Alphabet() []string {
	return append([]string(nil), a.symbols...)
}

// States returns the states in declaration order.
func (a *Automaton) States() []string {
	return append([]string(nil), a.states...)
}

// FinalStates returns the accepting states in declaration order.
func (a *Automaton) FinalStates() []string {
	return append([]string(nil), a.finals...)
}

// InitialState returns the start state.
func (a *Automaton) InitialState() string {
	return a.initial
}

// Rules returns the transition table in declaration order, without repeats.
func (a *Automaton) Rules() []Rule {
	return append([]Rule(nil), a.rules...)
}

// Next returns the destination of (state, symbol). ok is false when no transition exists.
func (a *Automaton) Next(state, symbol string) (string, bool) {
	to, ok := a.delta[state][symbol]
	return to, ok
}

func (a *Automaton) HasSymbol(symbol string) bool {
	_, ok := a.alphabet[symbol]
	return ok
}

func (a *Automaton) HasState(state string) bool {
	_, ok := a.stateIndex[state]
	return ok
}

func (a *Automaton) IsFinal(state string) bool {
	_, ok := a.finalSet[state]
	return ok
}

// SingleRune reports whether every alphabet symbol is exactly one rune long.
// Words for such automata are read rune by rune.
func (a *Automaton) SingleRune() bool {
	return a.singleRune
}

// Definition returns a copy of the definition the automaton was built from,
// normalized (repeated symbols, final states and rules removed).
func (a *Automaton) Definition() Definition {
	return Definition{
		Alphabet:     a.Alphabet(),
		States:       a.States(),
		FinalStates:  a.FinalStates(),
		InitialState: a.initial,
		Rules:        a.Rules(),
	}
}
