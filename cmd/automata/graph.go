package main

import (
	"fmt"

	"github.com/aretw0/automata/internal/cli"
	"github.com/aretw0/automata/internal/presentation/graph"
	"github.com/aretw0/automata/internal/runtime"
	"github.com/spf13/cobra"
)

func newGraphCmd(a *app) *cobra.Command {
	var word string

	cmd := &cobra.Command{
		Use:   "graph <definition>",
		Short: "Export the automaton as a Mermaid diagram",
		Long: `Outputs a Mermaid flowchart (graph LR) of the automaton. Final states are drawn as
double circles. With --word, the states visited by that word are highlighted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, name := cli.Locate(args[0], "")
			rt, err := a.runtime(dir)
			if err != nil {
				return err
			}
			defer rt.Close()

			dfa, err := rt.Engine.Load(cmd.Context(), name)
			if err != nil {
				return err
			}

			var overlay *graph.Overlay
			if cmd.Flags().Changed("word") {
				overlay = graph.OverlayFromResult(runtime.Run(dfa, word))
			}
			fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(dfa, overlay))
			return nil
		},
	}

	cmd.Flags().StringVar(&word, "word", "", "Highlight the run of this word")
	return cmd
}
