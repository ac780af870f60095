package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newProfilesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List the available variant profiles",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			registry, err := a.profiles()
			if err != nil {
				return err
			}
			for _, name := range registry.List() {
				p := registry.MustGet(name)
				source := p.Source
				if source == "" {
					source = "built-in"
				}
				fmt.Fprintf(a.stdout, "%-10s %d page(s), %-8s %2d groups  %s\n",
					p.Name, p.Budget.Pages, p.Overflow.Policy, len(p.Groups), source)
			}
			return nil
		},
	}
}
