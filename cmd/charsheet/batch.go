package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-charsheet/internal/loader"
	"github.com/goliatone/go-charsheet/pkg/batch"
	"github.com/goliatone/go-charsheet/pkg/profile"
)

func newBatchCmd(a *app) *cobra.Command {
	var (
		out      string
		variants []string
		workers  int
		force    bool
	)

	cmd := &cobra.Command{
		Use:   "batch <dir>",
		Short: "Render every record under a directory",
		Long: `Batch renders every .json, .yaml and .yml record under dir in parallel.
Outputs mirror the input tree under --out as <record>.<variant>.tex. A failing
record does not stop the others; the command fails if any record failed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			root := args[0]

			asm, err := a.assembler()
			if err != nil {
				return err
			}
			for _, variant := range variants {
				if !asm.Profiles().Has(variant) {
					return fmt.Errorf("%w: %q", profile.ErrNotFound, variant)
				}
			}

			origins, err := loader.Discover(ctx, root)
			if err != nil {
				return err
			}
			inputs, err := loader.New(nil).LoadAll(ctx, origins)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("workers") {
				workers = a.cfg.Workers
			}
			runner := batch.New(asm, batch.WithWorkers(workers), batch.WithLogger(a.logger.Named("batch")))
			results := runner.Run(ctx, batch.Jobs(inputs, variants...))

			base := root
			if info, err := os.Stat(root); err == nil && !info.IsDir() {
				base = filepath.Dir(root)
			}
			written := 0
			for _, result := range results {
				location := result.Job.Input.Location()
				if result.Err != nil {
					fmt.Fprintf(a.stderr, "FAIL %s (%s): %v\n", location, result.Job.Variant, result.Err)
					continue
				}
				a.warn(location, result.Document.Warnings)
				target, err := mirror(base, out, location, result.Job.Variant)
				if err != nil {
					return err
				}
				if err := a.writeFile(target, result.Document.Markup, force); err != nil {
					return err
				}
				written++
			}

			failed := batch.Failed(results)
			a.logger.Info("batch finished",
				zap.Int("records", len(inputs)),
				zap.Int("written", written),
				zap.Int("failed", len(failed)),
			)
			fmt.Fprintf(a.stdout, "%d document(s) written to %s, %d failed\n", written, out, len(failed))
			if len(failed) > 0 {
				return fmt.Errorf("%d of %d job(s) failed", len(failed), len(results))
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&out, "out", "o", "build", "output directory")
	flags.StringSliceVar(&variants, "variant", []string{profile.Long, profile.Short}, "variants to render")
	flags.IntVarP(&workers, "workers", "w", 0, "concurrent renders (overrides CHARSHEET_WORKERS; 0 means GOMAXPROCS)")
	flags.BoolVarP(&force, "force", "f", false, "overwrite existing files without asking")
	return cmd
}

// mirror maps an input file under base to its output path under out.
func mirror(base, out, location, variant string) (string, error) {
	rel, err := filepath.Rel(base, location)
	if err != nil {
		return "", fmt.Errorf("output path for %s: %w", location, err)
	}
	return filepath.Join(out, filepath.Dir(rel), outputName(location, variant)), nil
}
