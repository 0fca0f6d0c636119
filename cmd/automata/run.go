package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/cli"
	"github.com/aretw0/automata/internal/presentation/report"
	"github.com/aretw0/automata/internal/presentation/tui"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

func newRunCmd(a *app) *cobra.Command {
	var (
		words  []string
		format string
		trace  bool
		save   bool
	)

	cmd := &cobra.Command{
		Use:   "run <definition> [words-file]",
		Short: "Classify words against an automaton",
		Long: `Loads the definition (a file path, or a name inside the definitions directory) and
classifies every word. Words come from --word flags, from words-file (one per line, a blank
line is the empty word) or, when neither is given or words-file is "-", from standard input.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}

			dir, name := cli.Locate(args[0], "")
			rt, err := a.runtime(dir)
			if err != nil {
				return err
			}
			defer rt.Close()

			if len(words) == 0 {
				words, err = readWords(cmd, args[1:])
				if err != nil {
					return err
				}
			}

			ctx := cmd.Context()
			dfa, err := rt.Engine.Load(ctx, name)
			if err != nil {
				return err
			}

			var results []domain.Result
			if save {
				if !rt.PersistentStore() {
					return errors.New("--save needs a persistent report store (set store.kind to file or redis)")
				}
				rep, err := rt.Engine.Record(ctx, name, dfa, words)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "report %s saved\n", rep.ID)
				results = rep.Results
			} else {
				results = rt.Engine.EvaluateEach(ctx, dfa, words)
			}

			return writeResults(cmd.OutOrStdout(), f, name, results, trace)
		},
	}

	cmd.Flags().StringArrayVarP(&words, "word", "w", nil, "Word to classify (repeatable)")
	cmd.Flags().StringVarP(&format, "format", "f", string(report.FormatText), "Output format: text, json or markdown")
	cmd.Flags().BoolVar(&trace, "trace", false, "Show the visited states of every word")
	cmd.Flags().BoolVar(&save, "save", false, "Persist the results as a report")
	return cmd
}

func readWords(cmd *cobra.Command, args []string) ([]string, error) {
	if len(args) == 0 || args[0] == "-" {
		return automata.ReadWords(cmd.InOrStdin())
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, fmt.Errorf("failed to open words file: %w", err)
	}
	defer f.Close()
	return automata.ReadWords(f)
}

// writeResults colors text and renders markdown only when out is an interactive terminal.
func writeResults(out io.Writer, f report.Format, name string, results []domain.Result, trace bool) error {
	opts := report.Options{Trace: trace, Profile: termenv.Ascii}

	file, ok := out.(*os.File)
	if !ok || !tui.IsTerminal(file) {
		return report.Write(out, f, name, results, opts)
	}

	opts.Profile = termenv.NewOutput(file).ColorProfile()
	if f != report.FormatMarkdown {
		return report.Write(out, f, name, results, opts)
	}
	rendered, err := tui.NewRenderer()(report.Markdown(name, results, opts))
	if err != nil {
		return err
	}
	_, err = io.WriteString(out, rendered)
	return err
}
