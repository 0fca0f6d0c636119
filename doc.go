/*
Package automata loads and runs deterministic finite automata (DFA).

A definition is a small line-oriented text document:

	a b
	q0 q1 q2 q3
	q0 q3
	q0
	q0 a q1
	q0 b q2
	q1 a q0
	q1 b q3
	q2 a q3
	q2 b q0
	q3 a q1
	q3 b q2

The lines are, in order: the alphabet, the states, the final states, the initial state and
then one "origin symbol destination" rule per line. Loading validates the whole document
(every reference resolves, no (state, symbol) pair is mapped twice) and either returns an
immutable automaton or a *domain.FormatError.

Each word is then classified as ACCEPTED, REJECTED or INVALID. Evaluation never fails:
unknown symbols make a word INVALID and missing transitions make it REJECTED.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/automata"
	)

	func main() {
		eng, err := automata.New("./definitions")
		if err != nil {
			log.Fatal(err)
		}

		ctx := context.Background()
		report, err := eng.Run(ctx, "cycle", []string{"ab", "aa", "c", ""})
		if err != nil {
			log.Fatal(err)
		}
		for _, r := range report.Results {
			fmt.Println(r.Word, r.Verdict)
		}
	}
*/
package automata
