package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	charsheet "github.com/goliatone/go-charsheet"
	"github.com/goliatone/go-charsheet/internal/loader"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <record>...",
		Short: "Check character records without rendering them",
		Long: `Validate decodes and validates each record, printing every issue found and
any derivation warnings (clamped values, ignored derived values). Directories
are searched for .json, .yaml and .yml files.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			files := loader.New(nil)
			failed := 0
			for _, arg := range args {
				origins, err := loader.Discover(ctx, arg)
				if err != nil {
					return err
				}
				inputs, err := files.LoadAll(ctx, origins)
				if err != nil {
					return err
				}
				for _, in := range inputs {
					_, warnings, err := charsheet.Validate(in.Raw())
					if err != nil {
						failed++
						printIssues(a, in.Location(), err)
						continue
					}
					a.warn(in.Location(), warnings)
					fmt.Fprintf(a.stdout, "ok %s\n", in.Location())
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d record(s) failed validation", failed)
			}
			return nil
		},
	}
}

func printIssues(a *app, location string, err error) {
	var verr *charsheet.ValidationError
	if !errors.As(err, &verr) {
		fmt.Fprintf(a.stdout, "FAIL %s: %v\n", location, err)
		return
	}
	fmt.Fprintf(a.stdout, "FAIL %s\n", location)
	for _, issue := range verr.Issues {
		fmt.Fprintf(a.stdout, "  %s\n", issue)
	}
}
