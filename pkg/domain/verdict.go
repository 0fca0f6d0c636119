package domain

// Verdict is the classification of a single word.
type Verdict string

const (
	// Accepted means the word was fully consumed and the run stopped in a final state.
	Accepted Verdict = "ACCEPTED"
	// Rejected means the run died on a missing transition or stopped in a non-final state.
	Rejected Verdict = "REJECTED"
	// Invalid means the word contains a symbol outside the alphabet.
	Invalid Verdict = "INVALID"
)

// Reason explains how a verdict was reached.
type Reason string

const (
	ReasonFinalState    Reason = "final_state"
	ReasonNonFinalState Reason = "non_final_state"
	ReasonNoTransition  Reason = "no_transition"
	ReasonUnknownSymbol Reason = "unknown_symbol"
)

// Verdicts maps each distinct word to its verdict.
// When a batch contains the same word twice, the last evaluation wins.
type Verdicts map[string]Verdict

// Result is the outcome of evaluating one occurrence of a word.
type Result struct {
	Word    string  `json:"word" yaml:"word"`
	Verdict Verdict `json:"verdict" yaml:"verdict"`
	Reason  Reason  `json:"reason" yaml:"reason"`

	// Path lists the states visited, starting with the initial state.
	Path []string `json:"path,omitempty" yaml:"path,omitempty"`

	// Symbol is the offending symbol for INVALID words and dead-end runs.
	Symbol string `json:"symbol,omitempty" yaml:"symbol,omitempty"`
}

// Collapse folds per-occurrence results into a word → verdict mapping (last write wins).
func Collapse(results []Result) Verdicts {
	out := make(Verdicts, len(results))
	for _, r := range results {
		out[r.Word] = r.Verdict
	}
	return out
}

// Count returns how many results carry each verdict.
func Count(results []Result) map[Verdict]int {
	counts := map[Verdict]int{Accepted: 0, Rejected: 0, Invalid: 0}
	for _, r := range results {
		counts[r.Verdict]++
	}
	return counts
}
