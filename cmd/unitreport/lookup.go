package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

func newLookupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup [name...]",
		Short: "Resolve unit names to their platform",
		Long:  "Resolve unit names through the lookup table. Without names, list all units and platforms.",
		RunE: func(cmd *cobra.Command, args []string) error {
			lookup, err := profile.Lookup()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				entries := lookup.Entries()
				sort.SliceStable(entries, func(i, j int) bool {
					return strings.ToLower(entries[i].Name) < strings.ToLower(entries[j].Name)
				})
				for _, e := range entries {
					fmt.Fprintln(out, e.Name)
				}
				fmt.Fprintln(out)
				for _, c := range lookup.Categories() {
					fmt.Fprintln(out, c)
				}
				return nil
			}

			for _, name := range args {
				e, err := lookup.Resolve(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s\t%s\n", e.Name, e.Category)
			}
			return nil
		},
	}
}
