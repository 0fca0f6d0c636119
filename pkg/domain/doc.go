/*
Package domain contains the core domain models of the automata engine.

It defines the deterministic finite automaton itself, the verdicts produced when words are
run through it, and the error taxonomy shared by loaders and adapters. This package is kept
pure and free of external dependencies like I/O or persistence, following Hexagonal
Architecture principles.

# Key Entities

  - Automaton: An immutable, validated DFA (alphabet, states, final states, initial state, transitions).
  - Definition: The raw, unvalidated description an Automaton is built from.
  - Verdict: The classification of a single word (ACCEPTED, REJECTED or INVALID).
  - Result / Report: Per-occurrence evaluation records and their persisted batch form.
*/
package domain
