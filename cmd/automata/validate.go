package main

import (
	"fmt"

	"github.com/aretw0/automata/internal/cli"
	"github.com/aretw0/automata/internal/validator"
	"github.com/spf13/cobra"
)

func newValidateCmd(a *app) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "validate <definition>",
		Short: "Check a definition for errors and suspicious structure",
		Long: `Parses the definition and reports format errors with their line number. A valid
automaton is then crawled from its initial state and reports unreachable states, dead
states (no path to a final state) and missing transitions. These are warnings unless
--strict is set.`,
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
				return fmt.Errorf("validation failed: %w", err)
			}

			out := cmd.OutOrStdout()
			analysis := validator.Analyze(dfa)
			for _, s := range analysis.Unreachable {
				fmt.Fprintf(out, "⚠ unreachable state '%s'\n", s)
			}
			for _, s := range analysis.Dead {
				fmt.Fprintf(out, "⚠ dead state '%s' (no path to a final state)\n", s)
			}
			for _, g := range analysis.Gaps {
				fmt.Fprintf(out, "⚠ no transition for ('%s', '%s')\n", g.State, g.Symbol)
			}

			if strict {
				if err := strictErr(analysis); err != nil {
					return err
				}
			}
			fmt.Fprintf(out, "Automaton is valid! ✅ (%d states, %d rules)\n", len(dfa.States()), len(dfa.Rules()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Fail on unreachable states, dead states or missing transitions")
	return cmd
}

func strictErr(a validator.Analysis) error {
	if err := a.Err(); err != nil {
		return err
	}
	if !a.Complete() {
		return fmt.Errorf("transition function is partial: %d missing transitions", len(a.Gaps))
	}
	return nil
}
