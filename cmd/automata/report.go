package main

import (
	"errors"
	"fmt"

	"github.com/aretw0/automata/internal/cli"
	"github.com/aretw0/automata/internal/presentation/report"
	"github.com/spf13/cobra"
)

func newReportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Inspect saved reports",
		Long:  `Lists, shows and deletes reports saved with "run --save". Needs a file or redis store.`,
	}

	var format string
	var trace bool
	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Print a saved report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}
			return a.withStore(func(rt *cli.Runtime) error {
				rep, err := rt.Engine.Reports().Load(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return writeResults(cmd.OutOrStdout(), f, rep.Definition, rep.Results, trace)
			})
		},
	}
	show.Flags().StringVarP(&format, "format", "f", string(report.FormatText), "Output format: text, json or markdown")
	show.Flags().BoolVar(&trace, "trace", false, "Show the visited states of every word")

	list := &cobra.Command{
		Use:   "list",
		Short: "List saved report IDs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(rt *cli.Runtime) error {
				ids, err := rt.Engine.Reports().List(cmd.Context())
				if err != nil {
					return err
				}
				for _, id := range ids {
					fmt.Fprintln(cmd.OutOrStdout(), id)
				}
				return nil
			})
		},
	}

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(rt *cli.Runtime) error {
				return rt.Engine.Reports().Delete(cmd.Context(), args[0])
			})
		},
	}

	cmd.AddCommand(show, list, del)
	return cmd
}

func (a *app) withStore(fn func(rt *cli.Runtime) error) error {
	rt, err := a.runtime("")
	if err != nil {
		return err
	}
	defer rt.Close()

	if !rt.PersistentStore() {
		return errors.New("reports are not persisted with the memory store (set store.kind to file or redis)")
	}
	return fn(rt)
}
