package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/automata"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of automata",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "automata version %s\n", strings.TrimSpace(automata.Version))
			return nil
		},
	}
}
