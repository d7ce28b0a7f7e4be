package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/plumedev/plume/pkg/analysis"
	"github.com/plumedev/plume/pkg/assembler"
	"github.com/plumedev/plume/pkg/config"
	"github.com/plumedev/plume/pkg/logger"
	"github.com/plumedev/plume/pkg/output"
)

// ContextCmd creates the 'context' command: run the full analysis
// pipeline and emit the context document as JSON.
func ContextCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "context [path]",
		Short: "Analyze a project and emit its context document",
		Long: `Analyzes the project at the given path (default: current directory) and
writes the context document as JSON to stdout, or to a file with --out.

Sections are selected by flags, environment (PLUME_*), or plume.yaml in
the project root, in that order of precedence.

Examples:
  plume context
  plume context ~/apps/shop --deps --code
  plume context --out context.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: runContext,
	}

	cmd.Flags().Bool("deps", false, "Include dependency classification")
	cmd.Flags().Bool("code", false, "Include per-file code quality analysis")
	cmd.Flags().Bool("no-architecture", false, "Skip architecture pattern detection")
	cmd.Flags().Bool("no-suggestions", false, "Skip improvement suggestions")
	cmd.Flags().Int("max-files", 0, "Max source files analyzed for quality (0 = configured default)")
	cmd.Flags().Int64("max-file-size", 0, "Max source file size in bytes for quality analysis (0 = configured default)")
	cmd.Flags().StringP("out", "o", "", "Write the document to a file instead of stdout")

	return cmd
}

func runContext(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	cfg, err := config.LoadFromDir(root)
	if err != nil {
		output.Error(err.Error())
		return err
	}

	opts, err := resolveOptions(cmd, cfg)
	if err != nil {
		return err
	}

	output.Verbose(fmt.Sprintf("Analyzing project: %s", root))

	log := logger.New(logger.ParseLevel(cfg.Logging.Level), os.Stderr)
	doc, err := assembler.New().WithLogger(log).Assemble(cmd.Context(), root, opts)
	if err != nil {
		output.Error(err.Error())
		return err
	}

	for _, msg := range analysis.Messages(doc.Warnings) {
		output.Verbose(msg)
	}

	data, err := doc.JSON()
	if err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}

	outPath, _ := cmd.Flags().GetString("out")
	if outPath != "" {
		if err := os.WriteFile(outPath, append(data, '\n'), 0o644); err != nil {
			output.Error(err.Error())
			return err
		}
		output.Success(fmt.Sprintf("Context written to %s", outPath))
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

// resolveOptions merges plume.yaml defaults, PLUME_* environment
// variables, and command flags, flags winning.
func resolveOptions(cmd *cobra.Command, cfg *config.Config) (assembler.Options, error) {
	v := viper.New()
	v.SetEnvPrefix("PLUME")
	v.AutomaticEnv()

	v.SetDefault("deps", cfg.Analysis.IncludeDependencies)
	v.SetDefault("code", cfg.Analysis.IncludeCode)
	v.SetDefault("max-files", cfg.Analysis.MaxFiles)
	v.SetDefault("max-file-size", cfg.Analysis.MaxFileSize)

	for _, key := range []string{"deps", "code", "max-files", "max-file-size"} {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(key)); err != nil {
			return assembler.Options{}, fmt.Errorf("binding flag %s: %w", key, err)
		}
	}

	opts := cfg.Options()
	opts.IncludeDependencies = v.GetBool("deps")
	opts.IncludeCode = v.GetBool("code")
	if n := v.GetInt("max-files"); n > 0 {
		opts.MaxFiles = n
	}
	if n := v.GetInt64("max-file-size"); n > 0 {
		opts.MaxFileSize = n
	}

	if noArch, _ := cmd.Flags().GetBool("no-architecture"); noArch {
		opts.IncludeArchitecture = false
	}
	if noSug, _ := cmd.Flags().GetBool("no-suggestions"); noSug {
		opts.IncludeSuggestions = false
	}

	return opts, nil
}
