package runtime

import (
	"strings"

	"github.com/aretw0/automata/pkg/domain"
)

// Tokenize splits word into the symbols the automaton reads.
// Automata whose symbols are all single runes read words rune by rune; otherwise the
// word is taken to be a whitespace-separated sequence of symbols, so a word made only of
// whitespace has no symbols and is classified like the empty word. With single-rune
// alphabets whitespace is an ordinary rune and makes the word INVALID.
func Tokenize(a *domain.Automaton, word string) []string {
	if a.SingleRune() {
		tokens := make([]string, 0, len(word))
		for _, r := range word {
			tokens = append(tokens, string(r))
		}
		return tokens
	}
	return strings.Fields(word)
}

// Classify runs a pre-tokenized word through a and returns the full result.
// The whole word is checked against the alphabet before any transition is taken, so an
// unknown symbol always yields INVALID, even after a prefix that would have been rejected.
func Classify(a *domain.Automaton, word string, tokens []string) domain.Result {
	res := domain.Result{Word: word}

	for _, sym := range tokens {
		if !a.HasSymbol(sym) {
			res.Verdict = domain.Invalid
			res.Reason = domain.ReasonUnknownSymbol
			res.Symbol = sym
			return res
		}
	}

	current := a.InitialState()
	res.Path = make([]string, 1, len(tokens)+1)
	res.Path[0] = current

	for _, sym := range tokens {
		next, ok := a.Next(current, sym)
		if !ok {
			res.Verdict = domain.Rejected
			res.Reason = domain.ReasonNoTransition
			res.Symbol = sym
			return res
		}
		current = next
		res.Path = append(res.Path, current)
	}

	if a.IsFinal(current) {
		res.Verdict = domain.Accepted
		res.Reason = domain.ReasonFinalState
	} else {
		res.Verdict = domain.Rejected
		res.Reason = domain.ReasonNonFinalState
	}
	return res
}

// Run tokenizes and classifies a single word.
func Run(a *domain.Automaton, word string) domain.Result {
	return Classify(a, word, Tokenize(a, word))
}
