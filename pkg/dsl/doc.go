/*
Package dsl provides a fluent Go builder for deterministic finite automata.

It is an alternative to the text definition format when automata are generated by code
or assembled in tests. Everything goes through the same validation as parsed definitions.

Example usage:

	b := dsl.New().Alphabet("a", "b")

	b.State("q0").Initial().Final().
		On("a", "q1").
		On("b", "q2")

	b.State("q1").On("a", "q0").On("b", "q3")
	b.State("q2").On("a", "q3").On("b", "q0")
	b.State("q3").Final().On("a", "q1").On("b", "q2")

	a, err := b.Build()
	if err != nil {
		// err is a *domain.FormatError
	}
	verdicts := automata.Evaluate(a, []string{"ab", "aa", "c"})
*/
package dsl
