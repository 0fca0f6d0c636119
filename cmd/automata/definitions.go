package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/automata/internal/compiler"
	"github.com/aretw0/automata/pkg/adapters/file"
	"github.com/spf13/cobra"
)

func newDefinitionsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "definitions",
		Aliases: []string{"defs"},
		Short:   "List or publish definitions",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List the definitions available in the definitions directory or Redis",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := a.runtime("")
			if err != nil {
				return err
			}
			defer rt.Close()

			names, err := rt.Engine.Definitions(cmd.Context())
			if err != nil {
				return err
			}
			for _, n := range names {
				fmt.Fprintln(cmd.OutOrStdout(), n)
			}
			return nil
		},
	}

	var name string
	push := &cobra.Command{
		Use:   "push <file>",
		Short: "Validate a definition file and publish it to Redis",
		Long:  `Needs definitions to point at Redis (--dir redis://host:port/db or AUTOMATA_DEFINITIONS).`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			if _, err := compiler.NewParser().Parse(data); err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			rt, err := a.runtime("")
			if err != nil {
				return err
			}
			defer rt.Close()
			if rt.Definitions == nil {
				return errors.New("definitions are not stored in Redis")
			}

			if name == "" {
				name = strings.TrimSuffix(filepath.Base(args[0]), file.DefaultExtension)
			}
			if err := rt.Definitions.Put(cmd.Context(), name, data); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "published %s\n", name)
			return nil
		},
	}
	push.Flags().StringVar(&name, "name", "", "Name to publish under (defaults to the file name without .dfa)")

	cmd.AddCommand(list, push)
	return cmd
}
