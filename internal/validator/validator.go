package validator

import (
	"fmt"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
)

// Gap is a (state, symbol) pair without a transition.
type Gap struct {
	State  string `json:"state"`
	Symbol string `json:"symbol"`
}

// Analysis holds structural findings about a valid automaton.
// None of them make the automaton unusable; they usually point at definition mistakes.
type Analysis struct {
	// Unreachable states cannot be reached from the initial state.
	Unreachable []string `json:"unreachable,omitempty"`
	// Dead states cannot reach any final state. Words passing through them are always rejected.
	Dead []string `json:"dead,omitempty"`
	// Gaps are the missing (state, symbol) pairs; empty when the transition function is total.
	Gaps []Gap `json:"gaps,omitempty"`
}

// Complete reports whether every state has a transition for every symbol.
func (a Analysis) Complete() bool {
	return len(a.Gaps) == 0
}

// Clean reports whether there are no unreachable or dead states.
func (a Analysis) Clean() bool {
	return len(a.Unreachable) == 0 && len(a.Dead) == 0
}

// Err summarizes unreachable and dead states as an error, or nil when Clean.
func (a Analysis) Err() error {
	if a.Clean() {
		return nil
	}
	var problems []string
	for _, s := range a.Unreachable {
		problems = append(problems, fmt.Sprintf("Unreachable state: '%s'", s))
	}
	for _, s := range a.Dead {
		problems = append(problems, fmt.Sprintf("Dead state (no path to a final state): '%s'", s))
	}
	return fmt.Errorf("found %d problems:\n- %s", len(problems), strings.Join(problems, "\n- "))
}

// Analyze crawls the automaton from its initial state (forward) and from its final
// states (backward) and reports unreachable states, dead states and missing transitions.
// Results follow state declaration order.
func Analyze(a *domain.Automaton) Analysis {
	forward := make(map[string][]string)
	backward := make(map[string][]string)
	for _, r := range a.Rules() {
		forward[r.From] = append(forward[r.From], r.To)
		backward[r.To] = append(backward[r.To], r.From)
	}

	reachable := crawl([]string{a.InitialState()}, forward)
	productive := crawl(a.FinalStates(), backward)

	var out Analysis
	symbols := a.Alphabet()
	for _, s := range a.States() {
		if !reachable[s] {
			out.Unreachable = append(out.Unreachable, s)
		}
		if !productive[s] {
			out.Dead = append(out.Dead, s)
		}
		for _, sym := range symbols {
			if _, ok := a.Next(s, sym); !ok {
				out.Gaps = append(out.Gaps, Gap{State: s, Symbol: sym})
			}
		}
	}
	return out
}

// crawl runs a breadth-first search over edges from the given roots.
func crawl(roots []string, edges map[string][]string) map[string]bool {
	visited := make(map[string]bool)
	queue := append([]string(nil), roots...)

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if visited[current] {
			continue
		}
		visited[current] = true

		for _, next := range edges[current] {
			if !visited[next] {
				queue = append(queue, next)
			}
		}
	}
	return visited
}
