package automata_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/pkg/adapters/memory"
	"github.com/aretw0/automata/pkg/dsl"
)

// ExampleNew_memory evaluates words against a definition served from memory,
// without touching the file system.
func ExampleNew_memory() {
	source := memory.NewSource(map[string]string{
		"even-a": "a b\np q\np\np\np a q\np b p\nq a p\nq b q\n",
	})

	// dir is left empty because a source is provided.
	engine, err := automata.New("", automata.WithSource(source))
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	report, err := engine.Run(ctx, "even-a", []string{"aa", "ab", "abc", ""})
	if err != nil {
		log.Fatal(err)
	}

	for _, r := range report.Results {
		fmt.Printf("%q %s\n", r.Word, r.Verdict)
	}
	// Output:
	// "aa" ACCEPTED
	// "ab" REJECTED
	// "abc" INVALID
	// "" ACCEPTED
}

// ExampleEvaluate builds an automaton in code and classifies words with it.
func ExampleEvaluate() {
	a, err := dsl.New().
		Alphabet("0", "1").
		State("even").Initial().Final().On("1", "odd").Loop("0").
		State("odd").On("1", "even").Loop("0").
		Build()
	if err != nil {
		log.Fatal(err)
	}

	verdicts := automata.Evaluate(a, []string{"1001", "100", "12"})
	fmt.Println(verdicts["1001"], verdicts["100"], verdicts["12"])
	// Output: ACCEPTED REJECTED INVALID
}
