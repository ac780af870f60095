package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-charsheet/internal/loader"
	"github.com/goliatone/go-charsheet/pkg/assemble"
	"github.com/goliatone/go-charsheet/pkg/profile"
	"github.com/goliatone/go-charsheet/pkg/schema"
)

// both renders the long and short variants.
const both = "both"

func newRenderCmd(a *app) *cobra.Command {
	var (
		variant string
		out     string
		force   bool
	)

	cmd := &cobra.Command{
		Use:   "render <record>",
		Short: "Render one character record",
		Long: `Render a JSON or YAML character record. Use "-" to read the record from
stdin. A single variant is written to stdout unless --out names a file; with
--variant both, --out names a directory (default ".") that receives
<record>.long.tex and <record>.short.tex.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asm, err := a.assembler()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("variant") && a.canPrompt() {
				options := append(asm.Profiles().List(), both)
				variant, err = a.prompter.Select("Variant to render", options, variant)
				if err != nil {
					return err
				}
			}

			in, err := readInput(cmd.Context(), a.stdin, args[0])
			if err != nil {
				return err
			}

			variants := []string{variant}
			if variant == both {
				variants = []string{profile.Long, profile.Short}
				if out == "" {
					out = "."
				}
			}
			for _, name := range variants {
				doc, err := asm.RenderInput(cmd.Context(), in, name)
				if err != nil {
					return err
				}
				a.warn(in.Location(), doc.Warnings)

				switch {
				case variant == both:
					err = a.writeFile(filepath.Join(out, outputName(in.Location(), name)), doc.Markup, force)
				case out != "":
					err = a.writeFile(out, doc.Markup, force)
				default:
					_, err = io.WriteString(a.stdout, doc.Markup)
				}
				if err != nil {
					return err
				}
				report(a, in, doc)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&variant, "variant", "v", "long", `variant to render ("long", "short", a custom profile, or "both")`)
	flags.StringVarP(&out, "out", "o", "", "output file, or directory with --variant both")
	flags.BoolVarP(&force, "force", "f", false, "overwrite existing files without asking")
	return cmd
}

func readInput(ctx context.Context, stdin io.Reader, arg string) (schema.Input, error) {
	if arg != "-" {
		return loader.New(nil).LoadFile(ctx, arg)
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return schema.Input{}, fmt.Errorf("read stdin: %w", err)
	}
	return schema.NewInput(schema.OriginInline("stdin"), data)
}

func report(a *app, in schema.Input, doc assemble.Document) {
	a.logger.Info("rendered",
		zap.String("input", in.Location()),
		zap.String("variant", doc.Variant),
		zap.Int("pages", doc.Pages),
		zap.Int("warnings", len(doc.Warnings)),
	)
}
