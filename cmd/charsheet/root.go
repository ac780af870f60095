package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-charsheet/internal/config"
)

var (
	// Version is set at build time.
	Version = "dev"
)

func newRootCmd(a *app) *cobra.Command {
	var (
		profileDir  string
		templateDir string
		macroDir    string
		logLevel    string
	)

	cmd := &cobra.Command{
		Use:   "charsheet",
		Short: "Render character records as LaTeX character sheets",
		Long: `charsheet turns a JSON or YAML character record into LaTeX documents.
The long variant is a complete multi-page record; the short variant is a
single page play reference. Profiles, templates and macro packages can be
overridden from the command line or the CHARSHEET_* environment.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("profile-dir") {
				cfg.ProfileDir = profileDir
			}
			if flags.Changed("template-dir") {
				cfg.TemplateDir = templateDir
			}
			if flags.Changed("macro-dir") {
				cfg.MacroDir = macroDir
			}
			if flags.Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			logger, err := cfg.Logger()
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.logger.Sync()
		},
	}
	cmd.SetIn(a.stdin)
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)

	flags := cmd.PersistentFlags()
	flags.StringVar(&profileDir, "profile-dir", "", "directory of extra profile files (overrides CHARSHEET_PROFILE_DIR)")
	flags.StringVar(&templateDir, "template-dir", "", "directory overlaying the embedded templates")
	flags.StringVar(&macroDir, "macro-dir", "", "directory replacing the embedded macro packages")
	flags.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.BoolVar(&a.noInput, "no-input", false, "never prompt")

	cmd.AddCommand(
		newRenderCmd(a),
		newValidateCmd(a),
		newBatchCmd(a),
		newProfilesCmd(a),
	)
	return cmd
}
